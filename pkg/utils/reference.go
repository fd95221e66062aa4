package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateInvoiceNo generates a unique invoice number
func GenerateInvoiceNo(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}

// FormatReference formats a sequential reference number, e.g. PF-000042
func FormatReference(prefix string, number int) string {
	return fmt.Sprintf("%s-%06d", prefix, number)
}
