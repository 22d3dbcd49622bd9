package invoice

import (
	"fmt"
	"time"
)

// NumberingScheme configures document number derivation per type
// (invoice vs proforma).
type NumberingScheme struct {
	Prefix         string `json:"numberPrefix"`
	Suffix         string `json:"numberSuffix"`
	StartingNumber int    `json:"startingNumber"`
	DueDays        int    `json:"dueDays"`
}

// NextNumber derives the next document number from the count of
// documents already issued in the year: max(count+1, StartingNumber),
// formatted as PREFIX-YYYY-NNNN with an optional -SUFFIX.
//
// The count-based derivation means deleting a document can make the
// next number collide with a still-existing one. Kept as the intended
// behavior; a gapless guarantee would need a persisted counter per
// (user, year, type).
func (s NumberingScheme) NextNumber(countInYear int, date time.Time) string {
	n := countInYear + 1
	if s.StartingNumber > n {
		n = s.StartingNumber
	}

	number := fmt.Sprintf("%s-%d-%04d", s.Prefix, date.Year(), n)
	if s.Suffix != "" {
		number += "-" + s.Suffix
	}
	return number
}
