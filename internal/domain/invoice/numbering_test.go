package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextNumber(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		scheme NumberingScheme
		count  int
		want   string
	}{
		{
			name:   "count plus one",
			scheme: NumberingScheme{Prefix: "INV", StartingNumber: 1},
			count:  7,
			want:   "INV-2024-0008",
		},
		{
			name:   "starting number wins when higher",
			scheme: NumberingScheme{Prefix: "INV", StartingNumber: 100},
			count:  3,
			want:   "INV-2024-0100",
		},
		{
			name:   "suffix appended",
			scheme: NumberingScheme{Prefix: "PRO", Suffix: "GST", StartingNumber: 1},
			count:  0,
			want:   "PRO-2024-0001-GST",
		},
		{
			name:   "pads to four digits",
			scheme: NumberingScheme{Prefix: "INV", StartingNumber: 1},
			count:  0,
			want:   "INV-2024-0001",
		},
		{
			name:   "grows past four digits",
			scheme: NumberingScheme{Prefix: "INV", StartingNumber: 1},
			count:  12344,
			want:   "INV-2024-12345",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scheme.NextNumber(tt.count, date))
		})
	}
}

func TestNextNumber_YearFromDate(t *testing.T) {
	scheme := NumberingScheme{Prefix: "INV", StartingNumber: 1}

	assert.Equal(t, "INV-2023-0001", scheme.NextNumber(0, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "INV-2024-0001", scheme.NextNumber(0, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}
