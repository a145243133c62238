package enum

// DocumentType is the audience a printed ticket is composed for
type DocumentType string

const (
	DocumentTypeCustomer DocumentType = "customer"
	DocumentTypeKitchen  DocumentType = "kitchen"
	DocumentTypeCashier  DocumentType = "cashier"
	// DocumentTypeSalesReport is the end-of-day summary ticket
	DocumentTypeSalesReport DocumentType = "sales-report"
)

func (t DocumentType) String() string {
	return string(t)
}

// IsValid reports whether t is an order ticket audience
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeCustomer, DocumentTypeKitchen, DocumentTypeCashier:
		return true
	}
	return false
}
