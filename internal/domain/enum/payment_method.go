package enum

// PaymentMethod is how the customer settled an order
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodCredit      PaymentMethod = "credit"
	PaymentMethodDebit       PaymentMethod = "debit"
	PaymentMethodMercadoPago PaymentMethod = "mercadopago"
	PaymentMethodTransfer    PaymentMethod = "transfer"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid reports whether m is a known payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCredit, PaymentMethodDebit, PaymentMethodMercadoPago, PaymentMethodTransfer:
		return true
	}
	return false
}

// IsCash reports whether change has to be handed back for m
func (m PaymentMethod) IsCash() bool {
	return m == PaymentMethodCash
}

// Label returns the name printed on tickets
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodCash:
		return "Cash"
	case PaymentMethodCredit:
		return "Credit card"
	case PaymentMethodDebit:
		return "Debit card"
	case PaymentMethodMercadoPago:
		return "MercadoPago"
	case PaymentMethodTransfer:
		return "Bank transfer"
	}
	return string(m)
}
