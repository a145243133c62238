package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gusto-pos/internal/application/service"
	"github.com/sangkips/gusto-pos/internal/domain/entity"
	"github.com/sangkips/gusto-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/gusto-pos/internal/presentation/http/dto/response"
)

// DocumentHandler serves composed tickets
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// respondDocument sends the document as JSON, or as a printable page when render=html
func respondDocument(c *gin.Context, doc *entity.Document) {
	if c.Query("render") != "html" {
		response.OK(c, "Document composed", doc)
		return
	}
	html, err := service.RenderHTML(doc)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// OrderDocument composes the customer, kitchen or cashier ticket of a saved order
func (h *DocumentHandler) OrderDocument(c *gin.Context) {
	doc, err := h.documentService.OrderDocument(c.Request.Context(), c.Param("id"), c.Param("type"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondDocument(c, doc)
}

// Preview composes a draft ticket for a cart that has not been saved yet
func (h *DocumentHandler) Preview(c *gin.Context) {
	var req request.PreviewDocumentRequest
	if !bindJSON(c, &req) {
		return
	}

	doc, err := h.documentService.PreviewDocument(c.Request.Context(), &service.PreviewInput{
		Items:        request.ToOrderItems(req.Items),
		TableNumber:  req.TableNumber,
		EmployeeName: req.EmployeeName,
		Type:         req.Type,
		Format:       req.Format,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	respondDocument(c, doc)
}
