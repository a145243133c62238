package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/sangkips/gusto-pos/internal/application/service"
	"github.com/sangkips/gusto-pos/internal/config"
	"github.com/sangkips/gusto-pos/internal/domain/entity"
	"github.com/sangkips/gusto-pos/internal/domain/enum"
	"github.com/sangkips/gusto-pos/internal/infrastructure/database"
	"github.com/sangkips/gusto-pos/internal/infrastructure/repository"
	"github.com/sangkips/gusto-pos/internal/presentation/http/handler"
	"github.com/sangkips/gusto-pos/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	snapshots := repository.NewSnapshotRepository(db)
	now := time.Now
	composer := service.NewComposer("", "")
	orders := service.NewOrderService(t.Context(), snapshots, now)
	venue := service.NewVenueConfigService(snapshots)
	printerService := service.NewPrinterService(printer.None(), enum.PaperFormatThermalWide, composer, venue, now)
	documents := service.NewDocumentService(orders, venue, composer, printerService, enum.PaperFormatThermalWide, now)
	reports := service.NewSalesReportService(orders, now)

	return Setup(&Handlers{
		Order:    handler.NewOrderHandler(orders),
		Document: handler.NewDocumentHandler(documents),
		Printer:  handler.NewPrinterHandler(printerService, documents),
		Settings: handler.NewSettingsHandler(venue),
		Report:   handler.NewReportHandler(reports, documents),
	}, &Deps{
		Cfg:             &config.Config{App: config.AppConfig{Name: "gusto-pos"}},
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}

func cart() gin.H {
	return gin.H{
		"table_number":  "4",
		"employee_name": "Ana",
		"items": []gin.H{
			{"product_id": "p1", "name": "Milanesa", "sale_price": 8.5, "quantity": 2, "printing_station": "cocina", "notes": "sin sal"},
			{"product_id": "p2", "name": "Ravioles", "sale_price": 5.5, "quantity": 1, "printing_station": "kitchen"},
		},
	}
}

func createOrder(t *testing.T, router *gin.Engine) entity.Order {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/orders", cart())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order entity.Order
	decode(t, w, &order)
	return order
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gusto-pos")
}

func TestOrderLifecycle(t *testing.T) {
	router := newTestRouter(t)
	order := createOrder(t, router)
	assert.Equal(t, enum.PaymentStatusOpen, order.PaymentStatus)
	assert.Equal(t, enum.PrintingStationKitchen, order.Items[0].PrintingStation)

	w := doJSON(t, router, http.MethodPut, "/api/v1/orders/"+order.ID+"/kitchen-status", gin.H{"status": "in-progress"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPut, "/api/v1/orders/"+order.ID+"/items", gin.H{"items": cart()["items"]})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var edited entity.Order
	decode(t, w, &edited)
	assert.Equal(t, enum.KitchenStatusPending, edited.KitchenStatus)

	payment := gin.H{"discount_type": "percentage", "discount_value": 10, "payment_method": "cash", "amount_paid": 25}

	w = doJSON(t, router, http.MethodPost, "/api/v1/orders/"+order.ID+"/payment-quote", payment)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var quote service.PaymentQuote
	decode(t, w, &quote)
	assert.Equal(t, 20.25, quote.Total)
	assert.Equal(t, 4.75, quote.Change)
	assert.True(t, quote.CanConfirm)

	w = doJSON(t, router, http.MethodPost, "/api/v1/orders/"+order.ID+"/pay", payment, "Idempotency-Key", "pay-1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var paid entity.Order
	decode(t, w, &paid)
	require.NotNil(t, paid.Payment)
	assert.Equal(t, 2.25, paid.Payment.DiscountAmount)

	replay := doJSON(t, router, http.MethodPost, "/api/v1/orders/"+order.ID+"/pay", payment, "Idempotency-Key", "pay-1")
	assert.Equal(t, http.StatusOK, replay.Code)
	assert.Equal(t, "true", replay.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, w.Body.String(), replay.Body.String())

	again := doJSON(t, router, http.MethodPost, "/api/v1/orders/"+order.ID+"/pay", payment)
	assert.Equal(t, http.StatusConflict, again.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/orders?view=paid", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), paid.Payment.InvoiceNumber)
}

func TestOrderErrors(t *testing.T) {
	router := newTestRouter(t)
	order := createOrder(t, router)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		code   int
	}{
		{name: "empty cart", method: http.MethodPost, path: "/api/v1/orders", body: gin.H{"table_number": "1", "items": []gin.H{}}, code: http.StatusUnprocessableEntity},
		{name: "missing table", method: http.MethodPost, path: "/api/v1/orders", body: gin.H{"items": cart()["items"]}, code: http.StatusUnprocessableEntity},
		{name: "malformed body", method: http.MethodPost, path: "/api/v1/orders", body: "nope", code: http.StatusBadRequest},
		{name: "unknown order", method: http.MethodGet, path: "/api/v1/orders/missing", code: http.StatusNotFound},
		{name: "unknown kitchen status", method: http.MethodPut, path: "/api/v1/orders/" + order.ID + "/kitchen-status", body: gin.H{"status": "burnt"}, code: http.StatusUnprocessableEntity},
		{name: "insufficient cash", method: http.MethodPost, path: "/api/v1/orders/" + order.ID + "/pay", body: gin.H{"payment_method": "cash", "amount_paid": 1}, code: http.StatusUnprocessableEntity},
		{name: "unknown view", method: http.MethodGet, path: "/api/v1/orders?view=all", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
			resp := decode(t, w, nil)
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestKitchenBoardAndArchive(t *testing.T) {
	router := newTestRouter(t)
	order := createOrder(t, router)

	w := doJSON(t, router, http.MethodPut, "/api/v1/orders/"+order.ID+"/kitchen-status", gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/orders/archive-completed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"archived":1`)

	w = doJSON(t, router, http.MethodPost, "/api/v1/orders/"+order.ID+"/restore", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/v1/kitchen/board", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var board []service.KitchenColumn
	decode(t, w, &board)
	require.Len(t, board, 4)
	assert.Len(t, board[3].Orders, 1)
}

func TestDocuments(t *testing.T) {
	router := newTestRouter(t)
	order := createOrder(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/v1/orders/"+order.ID+"/documents/kitchen?format=thermal-narrow", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var doc entity.Document
	decode(t, w, &doc)
	assert.Equal(t, enum.DocumentTypeKitchen, doc.Type)
	assert.Equal(t, 32, doc.Layout.CharsPerLine)
	assert.NotContains(t, w.Body.String(), "$")

	w = doJSON(t, router, http.MethodGet, "/api/v1/orders/"+order.ID+"/documents/customer?format=full-page&render=html", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Milanesa")

	w = doJSON(t, router, http.MethodGet, "/api/v1/orders/"+order.ID+"/documents/menu", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	preview := cart()
	preview["type"] = "customer"
	w = doJSON(t, router, http.MethodPost, "/api/v1/documents/preview", preview)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &doc)
	assert.Contains(t, doc.Reference, "PREVIEW-")
}

func TestPrinterRoutes(t *testing.T) {
	router := newTestRouter(t)
	order := createOrder(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/v1/printer/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var status service.PrinterStatus
	decode(t, w, &status)
	assert.False(t, status.Configured)
	assert.Equal(t, printer.TypeNone, status.Type)
	assert.Equal(t, 48, status.CharsPerLine)

	w = doJSON(t, router, http.MethodPost, "/api/v1/printer/print", gin.H{"order_id": order.ID, "type": "kitchen"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result service.PrintResult
	decode(t, w, &result)
	assert.False(t, result.Printed)
	assert.NotEmpty(t, result.Warning)
	require.NotNil(t, result.Document)

	w = doJSON(t, router, http.MethodPost, "/api/v1/printer/test", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestVenueSettings(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/settings/venue", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var venue entity.VenueConfig
	decode(t, w, &venue)
	assert.Equal(t, "Mi Restaurante", venue.RestaurantName)

	w = doJSON(t, router, http.MethodPut, "/api/v1/settings/venue", gin.H{"restaurant_name": "La Esquina", "tax_id": "123"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/v1/settings/venue", gin.H{"restaurant_name": "La Esquina", "tax_id": "20-12345678-9"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/v1/settings/venue", nil)
	decode(t, w, &venue)
	assert.Equal(t, "La Esquina", venue.RestaurantName)
	assert.Equal(t, "Responsable Inscripto", venue.TaxCondition)
}

func TestSalesReportRoutes(t *testing.T) {
	router := newTestRouter(t)
	order := createOrder(t, router)
	w := doJSON(t, router, http.MethodPost, "/api/v1/orders/"+order.ID+"/pay", gin.H{"payment_method": "debit"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/v1/reports/sales", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var report entity.SalesReport
	decode(t, w, &report)
	assert.Equal(t, 1, report.TotalOrders)
	assert.Equal(t, 22.5, report.TotalRevenue)

	w = doJSON(t, router, http.MethodGet, "/api/v1/reports/sales/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "sales-")

	w = doJSON(t, router, http.MethodGet, "/api/v1/reports/sales/document?format=thermal-wide", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/v1/reports/sales?from=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
