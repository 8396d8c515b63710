package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	// Convert to lowercase
	s = strings.ToLower(s)

	// Replace spaces with hyphens
	s = strings.ReplaceAll(s, " ", "-")

	// Remove non-alphanumeric characters except hyphens
	reg := regexp.MustCompile("[^a-z0-9-]")
	s = reg.ReplaceAllString(s, "")

	// Remove multiple consecutive hyphens
	reg = regexp.MustCompile("-+")
	s = reg.ReplaceAllString(s, "-")

	// Trim hyphens from start and end
	s = strings.Trim(s, "-")

	return s
}

// GenerateInvoiceNumber generates a unique invoice number, e.g. INV-3F2A91C4
func GenerateInvoiceNumber(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}

// PeriodLabel formats a VAT period label from its start date and length,
// e.g. "2026-Q1" for a quarter or "2026-03" for a month.
func PeriodLabel(start time.Time, quarterly bool) string {
	if quarterly {
		quarter := (int(start.Month())-1)/3 + 1
		return fmt.Sprintf("%d-Q%d", start.Year(), quarter)
	}
	return fmt.Sprintf("%d-%02d", start.Year(), int(start.Month()))
}
