package enum

// PaymentStatus represents whether an order is still being built, settled or voided
type PaymentStatus string

const (
	PaymentStatusOpen      PaymentStatus = "open"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known payment statuses
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusOpen, PaymentStatusPaid, PaymentStatusCancelled:
		return true
	}
	return false
}
