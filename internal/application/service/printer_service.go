package service

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/gusto-pos/internal/domain/entity"
	"github.com/sangkips/gusto-pos/internal/domain/enum"
	"github.com/sangkips/gusto-pos/pkg/printer"
	"github.com/sirupsen/logrus"
)

const (
	warnNoPrinter   = "No printer is configured. Set PRINTER_TYPE to usb or network, or print the HTML version from the browser."
	warnUnreachable = "The printer could not be reached. Check that it is powered on, has paper and is connected, then try again."
	warnFullPage    = "Full-page documents are printed from the browser. Open the HTML version and allow pop-ups if nothing appears."
)

// PrinterService renders composed documents and sends thermal output to the printer.
// Print failures never affect order state; they come back as a warning for the user.
type PrinterService struct {
	printer  printer.Printer
	paper    enum.PaperFormat
	composer *Composer
	venue    *VenueConfigService
	now      Clock
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	paper enum.PaperFormat,
	composer *Composer,
	venue *VenueConfigService,
	clock Clock,
) *PrinterService {
	if clock == nil {
		clock = time.Now
	}
	if !paper.IsValid() {
		paper = enum.PaperFormatThermalWide
	}
	return &PrinterService{
		printer:  p,
		paper:    paper,
		composer: composer,
		venue:    venue,
		now:      clock,
	}
}

// PrinterStatus reports the printer transport and the paper tickets are laid out for.
type PrinterStatus struct {
	printer.Status
	Configured   bool             `json:"configured"`
	PaperFormat  enum.PaperFormat `json:"paper_format"`
	PaperWidth   string           `json:"paper_width"`
	CharsPerLine int              `json:"chars_per_line"`
}

// PrintResult is the outcome of a print request. The document is always returned
// so the caller can show or re-print it.
type PrintResult struct {
	Document *entity.Document `json:"document"`
	Printed  bool             `json:"printed"`
	Warning  string           `json:"warning,omitempty"`
	HTML     string           `json:"html,omitempty"`
}

// GetStatus probes the printer and reports the default paper layout.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	status := s.printer.Status(ctx)
	return &PrinterStatus{
		Status:       status,
		Configured:   status.Type != printer.TypeNone && status.Type != "",
		PaperFormat:  s.paper,
		PaperWidth:   s.paper.PaperWidth(),
		CharsPerLine: s.paper.CharsPerLine(),
	}
}

// PrintDocument sends a thermal document to the printer, or renders a full-page
// document to HTML for the browser.
func (s *PrinterService) PrintDocument(ctx context.Context, doc *entity.Document) (*PrintResult, error) {
	result := &PrintResult{Document: doc}

	if !doc.Format.IsThermal() {
		html, err := RenderHTML(doc)
		if err != nil {
			return nil, err
		}
		result.HTML = html
		result.Warning = warnFullPage
		return result, nil
	}

	if err := s.printer.Print(ctx, RenderESCPOS(doc)); err != nil {
		result.Warning = printWarning(err)
		logrus.WithError(err).
			WithField("document", doc.Type).
			WithField("reference", doc.Reference).
			Warn("Print failed")
		return result, nil
	}

	result.Printed = true
	logrus.WithField("document", doc.Type).
		WithField("reference", doc.Reference).
		Info("Document printed")
	return result, nil
}

// TestPrint composes a sample customer ticket with the current venue configuration and prints it.
func (s *PrinterService) TestPrint(ctx context.Context, format enum.PaperFormat) (*PrintResult, error) {
	venue, err := s.venue.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	items := []entity.OrderItem{
		{Product: entity.Product{ID: "test-1", Name: "Test Item 1", SalePrice: 10}, Quantity: 1},
		{Product: entity.Product{ID: "test-2", Name: "Test Item 2", SalePrice: 5}, Quantity: 2, Notes: "printer test"},
	}
	src := SourceFromCart(items, "TEST", "System", s.now())

	doc, err := s.composer.Compose(src, *venue, enum.DocumentTypeCustomer, format)
	if err != nil {
		return nil, err
	}
	doc.Title = "Printer Test"
	return s.PrintDocument(ctx, doc)
}

func printWarning(err error) string {
	if errors.Is(err, printer.ErrNotConfigured) {
		return warnNoPrinter
	}
	return warnUnreachable
}
