package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidGSTIN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"valid", "29ABCDE1234F1Z5", true},
		{"valid lowercase input", "29abcde1234f1z5", true},
		{"valid with whitespace", " 29ABCDE1234F1Z5 ", true},
		{"empty", "", false},
		{"too short", "29ABCDE1234F1Z", false},
		{"too long", "29ABCDE1234F1Z55", false},
		{"missing fixed Z", "29ABCDE1234F1A5", false},
		{"zero entity code", "29ABCDE1234F0Z5", false},
		{"letters in state code", "AAABCDE1234F1Z5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidGSTIN(tt.in))
		})
	}
}

func TestValidPAN(t *testing.T) {
	assert.True(t, ValidPAN("ABCDE1234F"))
	assert.False(t, ValidPAN("abcde1234f"), "PAN is matched as-is, no case folding")
	assert.False(t, ValidPAN("ABCDE1234"))
	assert.False(t, ValidPAN("ABCDE12345"))
	assert.False(t, ValidPAN(""))
}

func TestDueDate(t *testing.T) {
	issued := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 4, 14, 0, 0, 0, 0, time.UTC), DueDate(issued, 30))
	assert.Equal(t, issued, DueDate(issued, 0))
}
