package service

import (
	"context"
	"time"

	"github.com/sangkips/gusto-pos/internal/domain/entity"
	"github.com/sangkips/gusto-pos/internal/domain/enum"
	"github.com/sangkips/gusto-pos/pkg/apperror"
)

// DocumentService composes tickets for saved orders and unsaved carts
type DocumentService struct {
	orders        *OrderService
	venue         *VenueConfigService
	composer      *Composer
	printer       *PrinterService
	defaultFormat enum.PaperFormat
	now           Clock
}

// NewDocumentService creates a new document service. An invalid default format falls back to thermal-wide.
func NewDocumentService(
	orders *OrderService,
	venue *VenueConfigService,
	composer *Composer,
	printerService *PrinterService,
	defaultFormat enum.PaperFormat,
	clock Clock,
) *DocumentService {
	if !defaultFormat.IsValid() {
		defaultFormat = enum.PaperFormatThermalWide
	}
	if clock == nil {
		clock = time.Now
	}
	return &DocumentService{
		orders:        orders,
		venue:         venue,
		composer:      composer,
		printer:       printerService,
		defaultFormat: defaultFormat,
		now:           clock,
	}
}

// ResolveFormat parses a paper format, using the configured default when blank
func (s *DocumentService) ResolveFormat(format string) (enum.PaperFormat, error) {
	if format == "" {
		return s.defaultFormat, nil
	}
	f := enum.PaperFormat(format)
	if !f.IsValid() {
		return "", apperror.NewBadRequestError("Unknown paper format '" + format + "'. Use thermal-narrow, thermal-wide or full-page")
	}
	return f, nil
}

func parseDocumentType(docType string) (enum.DocumentType, error) {
	t := enum.DocumentType(docType)
	if !t.IsValid() {
		return "", apperror.NewBadRequestError("Unknown document type '" + docType + "'. Use customer, kitchen or cashier")
	}
	return t, nil
}

func (s *DocumentService) compose(ctx context.Context, src DocumentSource, docType, format string) (*entity.Document, error) {
	t, err := parseDocumentType(docType)
	if err != nil {
		return nil, err
	}
	f, err := s.ResolveFormat(format)
	if err != nil {
		return nil, err
	}
	venue, err := s.venue.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	return s.composer.Compose(src, *venue, t, f)
}

// OrderDocument composes one ticket for a saved order
func (s *DocumentService) OrderDocument(ctx context.Context, orderID, docType, format string) (*entity.Document, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.compose(ctx, SourceFromOrder(order, s.now()), docType, format)
}

// PreviewInput is an unsaved cart to render as a draft ticket
type PreviewInput struct {
	Items        []entity.OrderItem
	TableNumber  string
	EmployeeName string
	Type         string
	Format       string
}

// PreviewDocument composes a draft ticket for a cart. Empty carts still render zero totals.
func (s *DocumentService) PreviewDocument(ctx context.Context, input *PreviewInput) (*entity.Document, error) {
	src := SourceFromCart(input.Items, input.TableNumber, input.EmployeeName, s.now())
	return s.compose(ctx, src, input.Type, input.Format)
}

// PrintOrderDocument composes and prints one ticket for a saved order. Printing
// never changes the order.
func (s *DocumentService) PrintOrderDocument(ctx context.Context, orderID, docType, format string) (*PrintResult, error) {
	doc, err := s.OrderDocument(ctx, orderID, docType, format)
	if err != nil {
		return nil, err
	}
	return s.printer.PrintDocument(ctx, doc)
}

// SalesReportDocument lays out a sales report as a printable document
func (s *DocumentService) SalesReportDocument(ctx context.Context, report *entity.SalesReport, format string) (*entity.Document, error) {
	f, err := s.ResolveFormat(format)
	if err != nil {
		return nil, err
	}
	venue, err := s.venue.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	return s.composer.ComposeSalesReport(report, *venue, f, s.now())
}
