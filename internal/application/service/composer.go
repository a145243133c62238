package service

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/sangkips/gusto-pos/internal/domain/entity"
	"github.com/sangkips/gusto-pos/internal/domain/enum"
	"github.com/sangkips/gusto-pos/pkg/apperror"
	"github.com/sangkips/gusto-pos/pkg/money"
	"github.com/sangkips/gusto-pos/pkg/utils"
)

const (
	// DefaultQRTemplate takes the image size and the URL-encoded website
	DefaultQRTemplate = "https://api.qrserver.com/v1/create-qr-code/?size=%s&data=%s"
	DefaultQRSize     = "120x120"

	dateLayout = "02/01/2006 15:04"
	timeLayout = "15:04"
)

// DocumentSource is everything a ticket needs from an order or an unsaved cart
type DocumentSource struct {
	Reference     string
	TableNumber   string
	EmployeeName  string
	Items         []entity.OrderItem
	Breakdown     money.Breakdown
	PaymentMethod enum.PaymentMethod
	AmountPaid    float64
	Change        float64
	IssuedAt      time.Time
	PrintedAt     time.Time
}

// SourceFromOrder builds a document source from a saved order.
// Unpaid orders get a preview reference and live totals.
func SourceFromOrder(order *entity.Order, now time.Time) DocumentSource {
	src := DocumentSource{
		Reference:    utils.PreviewReference(now),
		TableNumber:  order.TableNumber,
		EmployeeName: order.EmployeeName,
		Items:        order.Items,
		Breakdown:    order.Breakdown(),
		IssuedAt:     order.CreatedAt,
		PrintedAt:    now,
	}
	if p := order.Payment; p != nil {
		src.Reference = p.InvoiceNumber
		src.PaymentMethod = p.Method
		src.AmountPaid = p.AmountPaid
		src.Change = p.Change
		src.IssuedAt = p.PaidAt
	}
	return src
}

// SourceFromCart builds a draft document source for a cart that has not been saved
func SourceFromCart(items []entity.OrderItem, tableNumber, employeeName string, now time.Time) DocumentSource {
	return DocumentSource{
		Reference:    utils.PreviewReference(now),
		TableNumber:  tableNumber,
		EmployeeName: employeeName,
		Items:        items,
		Breakdown:    money.Compute(items, money.Discount{Kind: money.DiscountNone}),
		IssuedAt:     now,
		PrintedAt:    now,
	}
}

// componentEscaper turns query escaping into URI component escaping, which keeps !'()* literal
var componentEscaper = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// QRCodeURL builds the scannable code image URL for a website. It is empty when there is no website.
func QRCodeURL(website, template, size string) string {
	website = strings.TrimSpace(website)
	if website == "" {
		return ""
	}
	if template == "" {
		template = DefaultQRTemplate
	}
	if size == "" {
		size = DefaultQRSize
	}
	return fmt.Sprintf(template, size, componentEscaper.Replace(url.QueryEscape(website)))
}

// Composer turns sources into documents. It performs no I/O.
type Composer struct {
	qrTemplate string
	qrSize     string
}

// NewComposer creates a composer using the given scannable code endpoint
func NewComposer(qrTemplate, qrSize string) *Composer {
	if qrTemplate == "" {
		qrTemplate = DefaultQRTemplate
	}
	if qrSize == "" {
		qrSize = DefaultQRSize
	}
	return &Composer{qrTemplate: qrTemplate, qrSize: qrSize}
}

var defaultComposer = NewComposer(DefaultQRTemplate, DefaultQRSize)

// ComposeDocument composes a document with the default scannable code endpoint
func ComposeDocument(src DocumentSource, venue entity.VenueConfig, docType enum.DocumentType, format enum.PaperFormat) (*entity.Document, error) {
	return defaultComposer.Compose(src, venue, docType, format)
}

// Compose maps a source and venue configuration to a document for one audience.
// The paper format only changes layout hints.
func (c *Composer) Compose(src DocumentSource, venue entity.VenueConfig, docType enum.DocumentType, format enum.PaperFormat) (*entity.Document, error) {
	if !format.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown paper format '" + format.String() + "'")
	}

	doc := &entity.Document{
		Type:      docType,
		Format:    format,
		Layout:    layoutFor(format, venue),
		Reference: src.Reference,
	}

	switch docType {
	case enum.DocumentTypeCustomer:
		doc.Title = "Receipt"
		c.composeCustomer(doc, src, venue)
	case enum.DocumentTypeKitchen:
		doc.Title = "Kitchen Order"
		composeKitchen(doc, src)
	case enum.DocumentTypeCashier:
		doc.Title = "Cashier Copy"
		composeCashier(doc, src)
	default:
		return nil, apperror.NewBadRequestError("Unknown document type '" + docType.String() + "'. Use customer, kitchen or cashier")
	}
	return doc, nil
}

func layoutFor(format enum.PaperFormat, venue entity.VenueConfig) entity.Layout {
	layout := entity.Layout{
		CharsPerLine: format.CharsPerLine(),
		PaperWidth:   format.PaperWidth(),
	}
	if format.IsThermal() {
		layout.FontSize = venue.ThermalFontSize
		layout.FontWeight = venue.ThermalFontWeight
		layout.LineHeight = venue.ThermalLineHeight
	}
	return layout
}

func (c *Composer) composeCustomer(doc *entity.Document, src DocumentSource, venue entity.VenueConfig) {
	if header := venueHeader(venue); len(header.Lines) > 0 {
		doc.Sections = append(doc.Sections, header)
	}

	info := entity.Section{Kind: entity.SectionInfo}
	if venue.ShowInvoiceType && venue.InvoiceType != "" {
		info.Lines = append(info.Lines, entity.Line{Label: "Invoice type", Value: venue.InvoiceType, Emphasis: true})
	}
	if venue.ShowPosNumber && venue.PosNumber != "" {
		info.Lines = append(info.Lines, entity.Line{Label: "POS", Value: venue.PosNumber})
	}
	info.Lines = append(info.Lines, orderInfoLines(src)...)
	doc.Sections = append(doc.Sections, info)

	doc.Sections = append(doc.Sections, itemsSection(src), totalsSection(src))

	if venue.ShowQRCode && strings.TrimSpace(venue.Website) != "" {
		size := venue.QRCodeSize
		if size == "" {
			size = c.qrSize
		}
		doc.Sections = append(doc.Sections, entity.Section{
			Kind: entity.SectionCode,
			Code: &entity.ScannableCode{
				Data: venue.Website,
				URL:  QRCodeURL(venue.Website, c.qrTemplate, size),
				Size: size,
			},
		})
	}

	footer := entity.Section{Kind: entity.SectionFooter}
	if venue.ShowThankYouMessage && venue.ThankYouMessage != "" {
		for _, line := range strings.Split(venue.ThankYouMessage, "\n") {
			footer.Lines = append(footer.Lines, entity.Line{Text: line, Align: entity.AlignCenter, Emphasis: true})
		}
	}
	if venue.ShowLegalDisclaimer && venue.LegalDisclaimer != "" {
		footer.Lines = append(footer.Lines, entity.Line{Text: venue.LegalDisclaimer, Align: entity.AlignCenter})
	}
	if len(footer.Lines) > 0 {
		doc.Sections = append(doc.Sections, footer)
	}
}

// venueHeader lists the business identity fields, each gated by its visibility flag
func venueHeader(venue entity.VenueConfig) entity.Section {
	header := entity.Section{Kind: entity.SectionHeader}
	add := func(show bool, label, value string) {
		if !show || strings.TrimSpace(value) == "" {
			return
		}
		header.Lines = append(header.Lines, entity.Line{Label: label, Value: value, Align: entity.AlignCenter})
	}

	if venue.ShowRestaurantName && venue.RestaurantName != "" {
		header.Lines = append(header.Lines, entity.Line{Text: venue.RestaurantName, Emphasis: true, Align: entity.AlignCenter})
	}
	add(venue.ShowAddress, "", venue.Address)
	add(venue.ShowPhone, "Tel", venue.Phone)
	add(venue.ShowEmail, "", venue.Email)
	add(venue.ShowWebsite, "", venue.Website)
	add(venue.ShowTaxCondition, "", venue.TaxCondition)
	add(venue.ShowTaxID, "CUIT", venue.TaxID)
	add(venue.ShowGrossIncome, "IIBB", venue.GrossIncome)
	add(venue.ShowActivityStartDate, "Since", venue.ActivityStartDate)
	return header
}

func orderInfoLines(src DocumentSource) []entity.Line {
	lines := []entity.Line{
		{Label: "Invoice No.", Value: src.Reference},
		{Label: "Date", Value: src.IssuedAt.Format(dateLayout)},
	}
	if src.TableNumber != "" {
		lines = append(lines, entity.Line{Label: "Table", Value: src.TableNumber})
	}
	if src.EmployeeName != "" {
		lines = append(lines, entity.Line{Label: "Server", Value: src.EmployeeName})
	}
	return lines
}

func itemsSection(src DocumentSource) entity.Section {
	table := &entity.ItemTable{
		Columns: []string{"QTY", "ITEM", "PRICE", "TOTAL"},
		Rows:    make([]entity.ItemRow, 0, len(src.Items)),
	}
	for _, item := range src.Items {
		table.Rows = append(table.Rows, entity.ItemRow{
			Quantity:  item.Quantity,
			Name:      item.Name,
			UnitPrice: money.Round2(item.SalePrice),
			LineTotal: item.LineTotal(),
			Note:      item.Notes,
		})
	}
	return entity.Section{Kind: entity.SectionItems, Heading: "Items", Table: table}
}

func totalsSection(src DocumentSource) entity.Section {
	totals := entity.Section{Kind: entity.SectionTotals}
	totals.Lines = append(totals.Lines, entity.Line{Label: "Subtotal", Value: money.FormatCurrency(src.Breakdown.Subtotal), Align: entity.AlignRight})
	if src.Breakdown.DiscountAmount > 0 {
		totals.Lines = append(totals.Lines, entity.Line{Label: "Discount", Value: "-" + money.FormatCurrency(src.Breakdown.DiscountAmount), Align: entity.AlignRight})
	}
	totals.Lines = append(totals.Lines, entity.Line{Label: "TOTAL", Value: money.FormatCurrency(src.Breakdown.Total), Emphasis: true, Align: entity.AlignRight})

	if src.PaymentMethod != "" {
		totals.Lines = append(totals.Lines, entity.Line{Label: "Payment", Value: src.PaymentMethod.Label()})
		if src.PaymentMethod.IsCash() {
			totals.Lines = append(totals.Lines,
				entity.Line{Label: "Paid", Value: money.FormatCurrency(src.AmountPaid), Align: entity.AlignRight},
				entity.Line{Label: "Change", Value: money.FormatCurrency(src.Change), Align: entity.AlignRight},
			)
		}
	}
	return totals
}

func composeKitchen(doc *entity.Document, src DocumentSource) {
	info := entity.Section{Kind: entity.SectionInfo}
	if src.TableNumber != "" {
		info.Lines = append(info.Lines, entity.Line{Label: "Table", Value: src.TableNumber, Emphasis: true})
	}
	if src.EmployeeName != "" {
		info.Lines = append(info.Lines, entity.Line{Label: "Server", Value: src.EmployeeName})
	}
	info.Lines = append(info.Lines, entity.Line{Label: "Time", Value: src.IssuedAt.Format(timeLayout)})
	doc.Sections = append(doc.Sections, info)

	kitchen := stationSection("KITCHEN", src.Items, enum.PrintingStation.ToKitchen)
	bar := stationSection("BAR", src.Items, enum.PrintingStation.ToBar)
	if len(kitchen.Lines) > 0 {
		doc.Sections = append(doc.Sections, kitchen)
	}
	if len(bar.Lines) > 0 {
		doc.Sections = append(doc.Sections, bar)
	}
	if len(kitchen.Lines) == 0 && len(bar.Lines) == 0 {
		doc.Sections = append(doc.Sections, entity.Section{
			Kind:  entity.SectionNotice,
			Lines: []entity.Line{{Text: "No items for kitchen or bar", Align: entity.AlignCenter, Emphasis: true}},
		})
	}

	doc.Sections = append(doc.Sections, entity.Section{
		Kind: entity.SectionFooter,
		Lines: []entity.Line{
			{Label: "Printed", Value: src.PrintedAt.Format(timeLayout)},
			{Label: "Order", Value: "#" + utils.LastN(src.Reference, 6)},
		},
	})
}

// stationSection lists quantity and name for items routed to one station, with notes under each item
func stationSection(heading string, items []entity.OrderItem, routed func(enum.PrintingStation) bool) entity.Section {
	section := entity.Section{Kind: entity.SectionStation, Heading: heading}
	for _, item := range items {
		if !routed(item.PrintingStation) {
			continue
		}
		section.Lines = append(section.Lines, entity.Line{Text: fmt.Sprintf("%dx %s", item.Quantity, item.Name), Emphasis: true})
		if item.Notes != "" {
			section.Lines = append(section.Lines, entity.Line{Text: "** " + item.Notes + " **", Emphasis: true})
		}
	}
	return section
}

func composeCashier(doc *entity.Document, src DocumentSource) {
	doc.Sections = append(doc.Sections,
		entity.Section{Kind: entity.SectionHeader, Lines: []entity.Line{{Text: "CASHIER COPY", Emphasis: true, Align: entity.AlignCenter}}},
		entity.Section{Kind: entity.SectionInfo, Lines: orderInfoLines(src)},
		itemsSection(src),
		totalsSection(src),
		entity.Section{Kind: entity.SectionFooter, Lines: []entity.Line{{Text: "Internal copy, not for the customer", Align: entity.AlignCenter}}},
	)
}

// ComposeSalesReport lays out a sales summary as a printable document
func (c *Composer) ComposeSalesReport(report *entity.SalesReport, venue entity.VenueConfig, format enum.PaperFormat, now time.Time) (*entity.Document, error) {
	if !format.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown paper format '" + format.String() + "'")
	}

	doc := &entity.Document{
		Type:   enum.DocumentTypeSalesReport,
		Format: format,
		Layout: layoutFor(format, venue),
		Title:  "Sales Report",
	}

	header := entity.Section{Kind: entity.SectionHeader}
	if venue.ShowRestaurantName && venue.RestaurantName != "" {
		header.Lines = append(header.Lines, entity.Line{Text: venue.RestaurantName, Emphasis: true, Align: entity.AlignCenter})
	}
	header.Lines = append(header.Lines, entity.Line{Text: "SALES REPORT", Emphasis: true, Align: entity.AlignCenter})
	doc.Sections = append(doc.Sections, header)

	doc.Sections = append(doc.Sections, entity.Section{
		Kind: entity.SectionInfo,
		Lines: []entity.Line{
			{Label: "From", Value: report.From.Format(dateLayout)},
			{Label: "To", Value: report.To.Format(dateLayout)},
		},
	})

	totals := entity.Section{Kind: entity.SectionTotals, Lines: []entity.Line{
		{Label: "Orders", Value: fmt.Sprintf("%d", report.TotalOrders)},
		{Label: "Discounts", Value: money.FormatCurrency(report.TotalDiscount), Align: entity.AlignRight},
		{Label: "Average ticket", Value: money.FormatCurrency(report.AverageTicket), Align: entity.AlignRight},
		{Label: "REVENUE", Value: money.FormatCurrency(report.TotalRevenue), Emphasis: true, Align: entity.AlignRight},
	}}
	for _, method := range slices.Sorted(maps.Keys(report.ByPaymentMethod)) {
		totals.Lines = append(totals.Lines, entity.Line{
			Label: enum.PaymentMethod(method).Label(),
			Value: money.FormatCurrency(report.ByPaymentMethod[method]),
			Align: entity.AlignRight,
		})
	}
	doc.Sections = append(doc.Sections, totals)

	if len(report.TopItems) > 0 {
		top := entity.Section{Kind: entity.SectionItems, Heading: "Top items"}
		for _, it := range report.TopItems {
			top.Lines = append(top.Lines, entity.Line{Label: fmt.Sprintf("%dx %s", it.Quantity, it.Name), Value: money.FormatCurrency(it.Revenue)})
		}
		doc.Sections = append(doc.Sections, top)
	}

	doc.Sections = append(doc.Sections, entity.Section{
		Kind:  entity.SectionFooter,
		Lines: []entity.Line{{Label: "Printed", Value: now.Format(dateLayout)}},
	})
	return doc, nil
}
