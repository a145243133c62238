package request

// PreviewDocumentRequest composes a draft ticket for a cart that has not been saved
type PreviewDocumentRequest struct {
	TableNumber  string             `json:"table_number" binding:"max=50"`
	EmployeeName string             `json:"employee_name" binding:"max=100"`
	Items        []OrderItemRequest `json:"items" binding:"dive"`
	Type         string             `json:"type" binding:"required,oneof=customer kitchen cashier"`
	Format       string             `json:"format" binding:"omitempty,oneof=thermal-narrow thermal-wide full-page"`
}

// PrintDocumentRequest prints one ticket of a saved order
type PrintDocumentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Type    string `json:"type" binding:"required,oneof=customer kitchen cashier"`
	Format  string `json:"format" binding:"omitempty,oneof=thermal-narrow thermal-wide full-page"`
}

// TestPrintRequest selects the paper format of the test page
type TestPrintRequest struct {
	Format string `json:"format" binding:"omitempty,oneof=thermal-narrow thermal-wide full-page"`
}
