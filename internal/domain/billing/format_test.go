package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gstbill/internal/core/types"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"999", "999.00"},
		{"1000", "1,000.00"},
		{"12345", "12,345.00"},
		{"123456", "1,23,456.00"},
		{"1234567.5", "12,34,567.50"},
		{"12345678.99", "1,23,45,678.99"},
		{"100000000", "10,00,00,000.00"},
		{"-123456", "-1,23,456.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatINR(types.MustMoney(tt.in)))
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "07/03/2024", FormatDate(d, "DD/MM/YYYY"))
	assert.Equal(t, "03/07/2024", FormatDate(d, "MM/DD/YYYY"))
	assert.Equal(t, "2024-03-07", FormatDate(d, "YYYY-MM-DD"))
	assert.Equal(t, "07/03/2024", FormatDate(d, "something else"))
}
