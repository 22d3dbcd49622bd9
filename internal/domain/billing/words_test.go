package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gstbill/internal/core/types"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "Zero"},
		{"1", "One Rupees Only"},
		{"15", "Fifteen Rupees Only"},
		{"19", "Nineteen Rupees Only"},
		{"20", "Twenty Rupees Only"},
		{"42", "Forty Two Rupees Only"},
		{"100", "One Hundred Rupees Only"},
		{"118", "One Hundred Eighteen Rupees Only"},
		{"999", "Nine Hundred Ninety Nine Rupees Only"},
		{"1000", "One Thousand Rupees Only"},
		{"1500", "One Thousand Five Hundred Rupees Only"},
		{"100000", "One Lakh Rupees Only"},
		{"123456.75", "One Lakh Twenty Three Thousand Four Hundred Fifty Six Rupees and Seventy Five Paise Only"},
		{"10000000", "One Crore Rupees Only"},
		{"12345678", "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Rupees Only"},
		{"10000000000", "One Thousand Crore Rupees Only"},
		{"12500000007", "One Thousand Two Hundred Fifty Crore Seven Rupees Only"},
		{"1000000000000", "One Lakh Crore Rupees Only"},
		{"0.50", "Rupees and Fifty Paise Only"},
		{"10.05", "Ten Rupees and Five Paise Only"},
		{"99.99", "Ninety Nine Rupees and Ninety Nine Paise Only"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountInWords(types.MustMoney(tt.amount)))
		})
	}
}
