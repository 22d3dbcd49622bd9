package billing

import (
	"strings"
	"time"

	"gstbill/internal/core/types"
)

// FormatINR formats an amount with Indian digit grouping: the last
// three integer digits form one group, the rest pair off.
// 1234567.5 -> "12,34,567.50".
func FormatINR(amount types.Money) string {
	s := amount.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	grouped := groupIndian(intPart)
	if neg {
		grouped = "-" + grouped
	}

	return grouped + "." + fracPart
}

func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	head := digits[:n-3]
	// Pairs from the right within the head
	if r := len(head) % 2; r == 1 {
		b.WriteString(head[:1])
		head = head[1:]
		if len(head) > 0 {
			b.WriteByte(',')
		}
	}
	for i := 0; i < len(head); i += 2 {
		b.WriteString(head[i : i+2])
		b.WriteByte(',')
	}
	b.WriteString(digits[n-3:])

	return b.String()
}

// FormatDate renders a date in the user's preferred display format.
// Supported formats: DD/MM/YYYY, MM/DD/YYYY, YYYY-MM-DD. Anything else
// falls back to DD/MM/YYYY.
func FormatDate(t time.Time, format string) string {
	switch format {
	case "MM/DD/YYYY":
		return t.Format("01/02/2006")
	case "YYYY-MM-DD":
		return t.Format("2006-01-02")
	default:
		return t.Format("02/01/2006")
	}
}
