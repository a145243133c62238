package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gusto-pos/internal/application/service"
	"github.com/sangkips/gusto-pos/internal/domain/entity"
	"github.com/sangkips/gusto-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/gusto-pos/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves sales reports
type ReportHandler struct {
	reportService   *service.SalesReportService
	documentService *service.DocumentService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.SalesReportService, documentService *service.DocumentService) *ReportHandler {
	return &ReportHandler{reportService: reportService, documentService: documentService}
}

func (h *ReportHandler) summarize(c *gin.Context) (*entity.SalesReport, *request.SalesReportQuery, bool) {
	var q request.SalesReportQuery
	if !bindQuery(c, &q) {
		return nil, nil, false
	}
	from, to := dayRange(q.From, q.To)
	report, err := h.reportService.Summarize(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return nil, nil, false
	}
	return report, &q, true
}

// Sales returns the sales summary for a date range, today by default
func (h *ReportHandler) Sales(c *gin.Context) {
	report, _, ok := h.summarize(c)
	if !ok {
		return
	}
	response.OK(c, "Sales report retrieved successfully", report)
}

// Export downloads the sales report as a spreadsheet
func (h *ReportHandler) Export(c *gin.Context) {
	report, _, ok := h.summarize(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.ExportXLSX(report, &buf); err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("sales-%s.xlsx", report.From.Format(dayLayout))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Document composes the sales report as a printable ticket
func (h *ReportHandler) Document(c *gin.Context) {
	report, q, ok := h.summarize(c)
	if !ok {
		return
	}

	doc, err := h.documentService.SalesReportDocument(c.Request.Context(), report, q.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondDocument(c, doc)
}
