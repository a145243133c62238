package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/sangkips/gusto-pos/internal/domain/entity"
	"github.com/sangkips/gusto-pos/pkg/apperror"
	"github.com/sangkips/gusto-pos/pkg/money"
	"github.com/xuri/excelize/v2"
)

const topItemsLimit = 10

// SalesReportService summarizes paid orders
type SalesReportService struct {
	orders *OrderService
	now    Clock
}

// NewSalesReportService creates a new sales report service
func NewSalesReportService(orders *OrderService, clock Clock) *SalesReportService {
	if clock == nil {
		clock = time.Now
	}
	return &SalesReportService{orders: orders, now: clock}
}

// Summarize aggregates orders paid in [from, to). A zero from means the start of
// today and a zero to means one day after from.
func (s *SalesReportService) Summarize(ctx context.Context, from, to time.Time) (*entity.SalesReport, error) {
	if from.IsZero() {
		now := s.now()
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	if to.IsZero() {
		to = from.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		return nil, apperror.NewFieldError("to", "The end of the range must be after its start")
	}

	orders := s.orders.PaidBetween(ctx, from, to)
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Payment.PaidAt.After(orders[j].Payment.PaidAt)
	})

	report := &entity.SalesReport{
		From:            from,
		To:              to,
		ByPaymentMethod: map[string]float64{},
		TopItems:        []entity.TopItem{},
		Rows:            make([]entity.SalesRow, 0, len(orders)),
	}

	items := map[string]*entity.TopItem{}
	for _, o := range orders {
		p := o.Payment
		report.TotalOrders++
		report.TotalRevenue = money.Round2(report.TotalRevenue + p.Total)
		report.TotalDiscount = money.Round2(report.TotalDiscount + p.DiscountAmount)
		method := p.Method.String()
		report.ByPaymentMethod[method] = money.Round2(report.ByPaymentMethod[method] + p.Total)

		count := 0
		for _, it := range o.Items {
			count += it.Quantity
			top, ok := items[it.Name]
			if !ok {
				top = &entity.TopItem{Name: it.Name}
				items[it.Name] = top
			}
			top.Quantity += it.Quantity
			top.Revenue = money.Round2(top.Revenue + it.LineTotal())
		}

		report.Rows = append(report.Rows, entity.SalesRow{
			OrderID:        o.ID,
			InvoiceNumber:  p.InvoiceNumber,
			TableNumber:    o.TableNumber,
			EmployeeName:   o.EmployeeName,
			PaidAt:         p.PaidAt,
			PaymentMethod:  method,
			ItemCount:      count,
			Subtotal:       p.Subtotal,
			DiscountAmount: p.DiscountAmount,
			Total:          p.Total,
		})
	}

	if report.TotalOrders > 0 {
		report.AverageTicket = money.Round2(report.TotalRevenue / float64(report.TotalOrders))
	}

	for _, top := range items {
		report.TopItems = append(report.TopItems, *top)
	}
	sort.Slice(report.TopItems, func(i, j int) bool {
		a, b := report.TopItems[i], report.TopItems[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return a.Name < b.Name
	})
	if len(report.TopItems) > topItemsLimit {
		report.TopItems = report.TopItems[:topItemsLimit]
	}

	return report, nil
}

var salesSheetColumns = []string{"Invoice", "Paid at", "Table", "Server", "Payment", "Items", "Subtotal", "Discount", "Total"}

// ExportXLSX writes the report as a workbook with a Sales sheet and a Summary sheet
func (s *SalesReportService) ExportXLSX(report *entity.SalesReport, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sales = "Sales"
	if err := f.SetSheetName("Sheet1", sales); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	if err := f.SetSheetRow(sales, "A1", &salesSheetColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(salesSheetColumns))
	_ = f.SetCellStyle(sales, "A1", lastCol+"1", bold)
	_ = f.SetColWidth(sales, "A", lastCol, 16)

	for i, row := range report.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			row.InvoiceNumber,
			row.PaidAt.Format("2006-01-02 15:04"),
			row.TableNumber,
			row.EmployeeName,
			row.PaymentMethod,
			row.ItemCount,
			row.Subtotal,
			row.DiscountAmount,
			row.Total,
		}
		if err := f.SetSheetRow(sales, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if n := len(report.Rows); n > 0 {
		_ = f.SetCellStyle(sales, "G2", fmt.Sprintf("%s%d", lastCol, n+1), amount)
	}

	const summary = "Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	rows := [][]interface{}{
		{"From", report.From.Format("2006-01-02 15:04")},
		{"To", report.To.Format("2006-01-02 15:04")},
		{"Orders", report.TotalOrders},
		{"Revenue", report.TotalRevenue},
		{"Discounts", report.TotalDiscount},
		{"Average ticket", report.AverageTicket},
	}
	for i, values := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summary, cell, &values); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	_ = f.SetCellStyle(summary, "A1", fmt.Sprintf("A%d", len(rows)), bold)
	_ = f.SetColWidth(summary, "A", "B", 18)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
