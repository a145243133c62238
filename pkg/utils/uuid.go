package utils

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewID generates a new opaque identifier
func NewID() string {
	return uuid.New().String()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// InvoiceNumber derives an invoice number from a payment timestamp in milliseconds
func InvoiceNumber(ms int64) string {
	return "INV-" + strconv.FormatInt(ms, 10)
}

// InvoiceMillis extracts the millisecond timestamp from an invoice number
func InvoiceMillis(invoice string) (int64, bool) {
	if len(invoice) <= len("INV-") || invoice[:4] != "INV-" {
		return 0, false
	}
	ms, err := strconv.ParseInt(invoice[4:], 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}

// PreviewReference builds the reference printed on draft tickets
func PreviewReference(t time.Time) string {
	return "PREVIEW-" + LastN(strconv.FormatInt(t.UnixMilli(), 10), 6)
}

// LastN returns the last n characters of s
func LastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
