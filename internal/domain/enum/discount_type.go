package enum

// DiscountType represents how an order-level discount is applied
type DiscountType string

const (
	DiscountTypeNone       DiscountType = "none"
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

func (t DiscountType) String() string {
	return string(t)
}

// IsValid reports whether t is a known discount type. The empty value counts as none.
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountTypeNone, DiscountTypePercentage, DiscountTypeFixed, "":
		return true
	}
	return false
}
