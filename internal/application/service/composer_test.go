package service

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/gusto-pos/internal/domain/entity"
	"github.com/sangkips/gusto-pos/internal/domain/enum"
	"github.com/sangkips/gusto-pos/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var composeTime = time.Date(2024, 5, 1, 21, 30, 0, 0, time.UTC)

// documentText flattens every string a renderer could print
func documentText(doc *entity.Document) string {
	var b strings.Builder
	b.WriteString(doc.Title + "\n" + doc.Reference + "\n")
	for _, s := range doc.Sections {
		b.WriteString(s.Heading + "\n")
		for _, l := range s.Lines {
			b.WriteString(l.Text + " " + l.Label + " " + l.Value + "\n")
		}
		if s.Table != nil {
			for _, r := range s.Table.Rows {
				b.WriteString(r.Name + " " + money.Format(r.UnitPrice) + " " + money.Format(r.LineTotal) + " " + r.Note + "\n")
			}
		}
		if s.Code != nil {
			b.WriteString(s.Code.URL + "\n")
		}
	}
	return b.String()
}

func paidSource() DocumentSource {
	items := []entity.OrderItem{
		item("Milanesa", 8.50, 2, enum.PrintingStationKitchen),
		item("Ravioles", 5.50, 1, enum.PrintingStationKitchen),
		item("Fernet", 4.00, 1, enum.PrintingStationBar),
	}
	items[0].Notes = "sin sal"
	return DocumentSource{
		Reference:     "INV-1714599000123",
		TableNumber:   "7",
		EmployeeName:  "Ana",
		Items:         items,
		Breakdown:     money.Compute(items, money.Discount{Kind: money.DiscountPercentage, Value: 10}),
		PaymentMethod: enum.PaymentMethodCash,
		AmountPaid:    30,
		Change:        6.15,
		IssuedAt:      composeTime,
		PrintedAt:     composeTime,
	}
}

func TestComposeKitchen_GroupsByStationWithoutPrices(t *testing.T) {
	doc, err := ComposeDocument(paidSource(), entity.DefaultVenueConfig(), enum.DocumentTypeKitchen, enum.PaperFormatThermalWide)
	require.NoError(t, err)

	stations := doc.SectionsOf(entity.SectionStation)
	require.Len(t, stations, 2)
	assert.Equal(t, "KITCHEN", stations[0].Heading)
	assert.Equal(t, "BAR", stations[1].Heading)

	require.Len(t, stations[0].Lines, 3)
	assert.Equal(t, "2x Milanesa", stations[0].Lines[0].Text)
	assert.Equal(t, "** sin sal **", stations[0].Lines[1].Text)
	assert.True(t, stations[0].Lines[1].Emphasis)
	assert.Equal(t, "1x Ravioles", stations[0].Lines[2].Text)
	assert.Equal(t, "1x Fernet", stations[1].Lines[0].Text)

	text := documentText(doc)
	assert.NotContains(t, text, "$")
	assert.False(t, regexp.MustCompile(`\d+\.\d{2}`).MatchString(text), "kitchen ticket leaked a price: %s", text)
	assert.Nil(t, doc.Section(entity.SectionTotals))
	assert.Nil(t, doc.Section(entity.SectionItems))
	assert.Contains(t, text, "#000123")
}

func TestComposeKitchen_StationRouting(t *testing.T) {
	tests := []struct {
		name     string
		items    []entity.OrderItem
		headings []string
		notice   bool
	}{
		{
			name:     "both goes to kitchen and bar",
			items:    []entity.OrderItem{item("Picada", 12, 1, enum.PrintingStationBoth)},
			headings: []string{"KITCHEN", "BAR"},
		},
		{
			name:     "bar only omits the kitchen section",
			items:    []entity.OrderItem{item("Cerveza", 3, 2, enum.PrintingStationBar)},
			headings: []string{"BAR"},
		},
		{
			name:   "nothing to prepare",
			items:  []entity.OrderItem{item("Agua", 1, 1, enum.PrintingStationNone)},
			notice: true,
		},
		{
			name:   "no items",
			notice: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := SourceFromCart(tt.items, "3", "", composeTime)
			doc, err := ComposeDocument(src, entity.DefaultVenueConfig(), enum.DocumentTypeKitchen, enum.PaperFormatThermalNarrow)
			require.NoError(t, err)

			var headings []string
			for _, s := range doc.SectionsOf(entity.SectionStation) {
				headings = append(headings, s.Heading)
			}
			assert.Equal(t, tt.headings, headings)

			notices := doc.SectionsOf(entity.SectionNotice)
			if tt.notice {
				require.Len(t, notices, 1)
				assert.Len(t, notices[0].Lines, 1)
			} else {
				assert.Empty(t, notices)
			}
		})
	}
}

func TestComposeKitchen_BothStationItemsPrintInEachSection(t *testing.T) {
	items := []entity.OrderItem{
		item("Picada", 12, 2, enum.PrintingStationBoth),
		item("Flan", 4, 1, enum.PrintingStationKitchen),
	}
	items[0].Notes = "sin aceitunas"

	doc, err := ComposeDocument(SourceFromCart(items, "3", "", composeTime), entity.DefaultVenueConfig(), enum.DocumentTypeKitchen, enum.PaperFormatThermalWide)
	require.NoError(t, err)

	stations := doc.SectionsOf(entity.SectionStation)
	require.Len(t, stations, 2)

	kitchen, bar := stations[0], stations[1]
	assert.Equal(t, "KITCHEN", kitchen.Heading)
	assert.Equal(t, []string{"2x Picada", "** sin aceitunas **", "1x Flan"}, lineTexts(kitchen))
	assert.Equal(t, "BAR", bar.Heading)
	assert.Equal(t, []string{"2x Picada", "** sin aceitunas **"}, lineTexts(bar))
}

func lineTexts(s entity.Section) []string {
	texts := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		texts = append(texts, l.Text)
	}
	return texts
}

func TestComposeCustomer_Totals(t *testing.T) {
	doc, err := ComposeDocument(paidSource(), entity.DefaultVenueConfig(), enum.DocumentTypeCustomer, enum.PaperFormatThermalWide)
	require.NoError(t, err)

	items := doc.Section(entity.SectionItems)
	require.NotNil(t, items)
	require.Len(t, items.Table.Rows, 3)
	assert.Equal(t, entity.ItemRow{Quantity: 2, Name: "Milanesa", UnitPrice: 8.5, LineTotal: 17, Note: "sin sal"}, items.Table.Rows[0])

	totals := doc.Section(entity.SectionTotals)
	require.NotNil(t, totals)
	labels := map[string]entity.Line{}
	for _, l := range totals.Lines {
		labels[l.Label] = l
	}
	assert.Equal(t, "$26.50", labels["Subtotal"].Value)
	assert.Equal(t, "-$2.65", labels["Discount"].Value)
	assert.Equal(t, "$23.85", labels["TOTAL"].Value)
	assert.True(t, labels["TOTAL"].Emphasis)
	assert.Equal(t, "Cash", labels["Payment"].Value)
	assert.Equal(t, "$6.15", labels["Change"].Value)
}

func TestComposeCustomer_EmptyCartStillRendersTotals(t *testing.T) {
	src := SourceFromCart(nil, "1", "", composeTime)
	doc, err := ComposeDocument(src, entity.DefaultVenueConfig(), enum.DocumentTypeCustomer, enum.PaperFormatFullPage)
	require.NoError(t, err)

	items := doc.Section(entity.SectionItems)
	require.NotNil(t, items)
	assert.Empty(t, items.Table.Rows)

	totals := doc.Section(entity.SectionTotals)
	require.NotNil(t, totals)
	require.Len(t, totals.Lines, 2)
	assert.Equal(t, "$0.00", totals.Lines[0].Value)
	assert.Equal(t, "$0.00", totals.Lines[1].Value)
	assert.True(t, strings.HasPrefix(doc.Reference, "PREVIEW-"))
}

func TestComposeCustomer_VisibilityFlags(t *testing.T) {
	venue := entity.DefaultVenueConfig()
	venue.TaxID = "20-12345678-9"
	venue.Website = "https://resto.example/menu?x=1"
	venue.Phone = "011 4444-5555"

	doc, err := ComposeDocument(paidSource(), venue, enum.DocumentTypeCustomer, enum.PaperFormatThermalWide)
	require.NoError(t, err)
	text := documentText(doc)
	assert.Contains(t, text, "Mi Restaurante")
	assert.Contains(t, text, "20-12345678-9")
	assert.NotContains(t, text, "011 4444-5555")
	assert.Contains(t, text, "¡Gracias por su visita!")

	code := doc.Section(entity.SectionCode)
	require.NotNil(t, code)
	assert.Equal(t, "https://api.qrserver.com/v1/create-qr-code/?size=120x120&data=https%3A%2F%2Fresto.example%2Fmenu%3Fx%3D1", code.Code.URL)

	venue.ShowRestaurantName = false
	venue.ShowTaxID = false
	venue.ShowQRCode = false
	venue.ShowWebsite = false
	venue.ShowThankYouMessage = false
	venue.ShowPhone = true

	doc, err = ComposeDocument(paidSource(), venue, enum.DocumentTypeCustomer, enum.PaperFormatThermalWide)
	require.NoError(t, err)
	text = documentText(doc)
	assert.NotContains(t, text, "Mi Restaurante")
	assert.NotContains(t, text, "20-12345678-9")
	assert.NotContains(t, text, "resto.example")
	assert.NotContains(t, text, "Gracias")
	assert.Contains(t, text, "011 4444-5555")
	assert.Nil(t, doc.Section(entity.SectionCode))
}

func TestComposeCashier_OmitsCodeAndThanks(t *testing.T) {
	venue := entity.DefaultVenueConfig()
	venue.Website = "https://resto.example"

	doc, err := ComposeDocument(paidSource(), venue, enum.DocumentTypeCashier, enum.PaperFormatThermalNarrow)
	require.NoError(t, err)

	assert.Nil(t, doc.Section(entity.SectionCode))
	text := documentText(doc)
	assert.NotContains(t, text, "Gracias")
	assert.Contains(t, text, "CASHIER COPY")
	assert.Contains(t, text, "$23.85")
	require.NotNil(t, doc.Section(entity.SectionItems))
}

func TestCompose_PaperFormatOnlyChangesLayout(t *testing.T) {
	venue := entity.DefaultVenueConfig()
	for _, docType := range []enum.DocumentType{enum.DocumentTypeCustomer, enum.DocumentTypeKitchen, enum.DocumentTypeCashier} {
		narrow, err := ComposeDocument(paidSource(), venue, docType, enum.PaperFormatThermalNarrow)
		require.NoError(t, err)
		page, err := ComposeDocument(paidSource(), venue, docType, enum.PaperFormatFullPage)
		require.NoError(t, err)

		assert.Equal(t, narrow.Sections, page.Sections, docType.String())
		assert.Equal(t, 32, narrow.Layout.CharsPerLine)
		assert.Equal(t, "14px", narrow.Layout.FontSize)
		assert.Equal(t, 80, page.Layout.CharsPerLine)
		assert.Empty(t, page.Layout.FontSize)
	}
}

func TestCompose_RejectsUnknownTypeAndFormat(t *testing.T) {
	_, err := ComposeDocument(paidSource(), entity.DefaultVenueConfig(), enum.DocumentType("menu"), enum.PaperFormatThermalWide)
	assert.Error(t, err)

	_, err = ComposeDocument(paidSource(), entity.DefaultVenueConfig(), enum.DocumentTypeCustomer, enum.PaperFormat("a3"))
	assert.Error(t, err)
}

func TestSourceFromOrder(t *testing.T) {
	s, _ := newTestOrderService(t)
	order := createTestOrder(t, s, item("Pizza", 10, 2, enum.PrintingStationKitchen))

	src := SourceFromOrder(order, composeTime)
	assert.True(t, strings.HasPrefix(src.Reference, "PREVIEW-"))
	assert.Equal(t, 20.0, src.Breakdown.Total)
	assert.Empty(t, src.PaymentMethod)

	paid, err := s.PayOrder(t.Context(), order.ID, &PayOrderInput{
		Discount:   entity.Discount{Type: enum.DiscountTypeFixed, Value: 5},
		Method:     enum.PaymentMethodDebit,
		AmountPaid: 0,
	})
	require.NoError(t, err)

	src = SourceFromOrder(paid, composeTime)
	assert.Equal(t, paid.Payment.InvoiceNumber, src.Reference)
	assert.Equal(t, 15.0, src.Breakdown.Total)
	assert.Equal(t, 5.0, src.Breakdown.DiscountAmount)
	assert.Equal(t, paid.Payment.PaidAt, src.IssuedAt)
}

func TestQRCodeURL(t *testing.T) {
	assert.Empty(t, QRCodeURL("  ", DefaultQRTemplate, "100x100"))
	assert.Equal(t,
		"https://api.qrserver.com/v1/create-qr-code/?size=100x100&data=mi%20resto",
		QRCodeURL("mi resto", "", "100x100"))
	assert.Equal(t,
		"https://api.qrserver.com/v1/create-qr-code/?size=120x120&data=https%3A%2F%2Fresto.ar%2F!carta*(2)'s",
		QRCodeURL("https://resto.ar/!carta*(2)'s", "", ""))
}

func TestComposeSalesReport(t *testing.T) {
	report := &entity.SalesReport{
		From:            composeTime.Add(-time.Hour),
		To:              composeTime,
		TotalOrders:     2,
		TotalRevenue:    50,
		AverageTicket:   25,
		ByPaymentMethod: map[string]float64{"cash": 30, "debit": 20},
		TopItems:        []entity.TopItem{{Name: "Pizza", Quantity: 3, Revenue: 30}},
	}
	doc, err := NewComposer("", "").ComposeSalesReport(report, entity.DefaultVenueConfig(), enum.PaperFormatThermalWide, composeTime)
	require.NoError(t, err)

	assert.Equal(t, enum.DocumentTypeSalesReport, doc.Type)
	text := documentText(doc)
	assert.Contains(t, text, "$50.00")
	assert.Contains(t, text, "3x Pizza")
	assert.Contains(t, text, "Debit card")
}
