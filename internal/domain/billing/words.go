package billing

import (
	"strings"

	"gstbill/internal/core/types"
)

var (
	wordOnes  = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	wordTens  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
	wordTeens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
)

// AmountInWords converts a currency amount into Indian-numbering-system
// words: crore/lakh/thousand grouping with "Rupees", an optional
// "and N Paise" part, and a trailing "Only".
//
//	123456.75 -> "One Lakh Twenty Three Thousand Four Hundred Fifty Six Rupees and Seventy Five Paise Only"
func AmountInWords(amount types.Money) string {
	if amount.IsZero() {
		return "Zero"
	}

	rupees := amount.Floor().IntPart()
	paise := amount.Sub(amount.Floor()).Mul(types.Hundred).Round(0).IntPart()

	var b strings.Builder
	b.WriteString(wordsIndian(rupees))
	b.WriteString("Rupees")

	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(wordsBelowThousand(paise))
		b.WriteString("Paise")
	}

	b.WriteString(" Only")
	return strings.TrimSpace(b.String())
}

// wordsIndian spells a non-negative integer with Indian grouping,
// trailing space included. The crore group recurses, so a thousand
// crore reads "One Thousand Crore" and a lakh crore "One Lakh Crore"
// instead of overflowing the hundreds table.
func wordsIndian(n int64) string {
	var b strings.Builder

	if n >= 10_000_000 {
		b.WriteString(wordsIndian(n / 10_000_000))
		b.WriteString("Crore ")
		n %= 10_000_000
	}
	if n >= 100_000 {
		b.WriteString(wordsBelowThousand(n / 100_000))
		b.WriteString("Lakh ")
		n %= 100_000
	}
	if n >= 1_000 {
		b.WriteString(wordsBelowThousand(n / 1_000))
		b.WriteString("Thousand ")
		n %= 1_000
	}
	if n > 0 {
		b.WriteString(wordsBelowThousand(n))
	}

	return b.String()
}

// wordsBelowThousand spells 0-999 with a trailing space, teens handled
// as a single word.
func wordsBelowThousand(n int64) string {
	var b strings.Builder

	if n > 99 {
		b.WriteString(wordOnes[n/100])
		b.WriteString(" Hundred ")
		n %= 100
	}

	if n > 19 {
		b.WriteString(wordTens[n/10])
		b.WriteString(" ")
		n %= 10
	} else if n > 9 {
		b.WriteString(wordTeens[n-10])
		b.WriteString(" ")
		return b.String()
	}

	if n > 0 {
		b.WriteString(wordOnes[n])
		b.WriteString(" ")
	}

	return b.String()
}
