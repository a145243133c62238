package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gusto-pos/internal/application/service"
	"github.com/sangkips/gusto-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/gusto-pos/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService  *service.PrinterService
	documentService *service.DocumentService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService, documentService *service.DocumentService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService, documentService: documentService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus(c.Request.Context()))
}

func respondPrint(c *gin.Context, result *service.PrintResult) {
	if !result.Printed {
		// The ticket is still returned so it can be shown or printed from the browser
		response.OK(c, "Document composed but not printed", result)
		return
	}
	response.OK(c, "Document sent to printer", result)
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	var req request.TestPrintRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	format, err := h.documentService.ResolveFormat(req.Format)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.printerService.TestPrint(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondPrint(c, result)
}

// Print prints one ticket of a saved order.
func (h *PrinterHandler) Print(c *gin.Context) {
	var req request.PrintDocumentRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.documentService.PrintOrderDocument(c.Request.Context(), req.OrderID, req.Type, req.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondPrint(c, result)
}
