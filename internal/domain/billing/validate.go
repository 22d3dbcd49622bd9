package billing

import (
	"regexp"
	"strings"
	"time"
)

var (
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)
	panPattern   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]{1}$`)
)

// ValidGSTIN reports whether s is a well-formed GSTIN.
// Input is trimmed and upper-cased before matching.
func ValidGSTIN(s string) bool {
	if s == "" {
		return false
	}
	return gstinPattern.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// ValidPAN reports whether s is a well-formed PAN. Unlike ValidGSTIN
// the input is matched as-is.
func ValidPAN(s string) bool {
	return panPattern.MatchString(s)
}

// DueDate derives an invoice due date from its issue date and the
// payment terms in days.
func DueDate(invoiceDate time.Time, paymentTermsDays int) time.Time {
	return invoiceDate.AddDate(0, 0, paymentTermsDays)
}
