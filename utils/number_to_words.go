package utils

import (
	"fmt"
	"math"
	"strings"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

func NumberToWords(num int) string {
	switch {
	case num == 0:
		return ""
	case num < 20:
		return ones[num]
	case num < 100:
		return strings.TrimSpace(tens[num/10] + " " + ones[num%10])
	case num < 1000:
		remainder := num % 100
		if remainder == 0 {
			return ones[num/100] + " Hundred"
		}
		return ones[num/100] + " Hundred " + NumberToWords(remainder)
	case num < 100000:
		remainder := num % 1000
		if remainder == 0 {
			return NumberToWords(num/1000) + " Thousand"
		}
		return NumberToWords(num/1000) + " Thousand " + NumberToWords(remainder)
	case num < 10000000:
		remainder := num % 100000
		if remainder == 0 {
			return NumberToWords(num/100000) + " Lakh"
		}
		return NumberToWords(num/100000) + " Lakh " + NumberToWords(remainder)
	default:
		remainder := num % 10000000
		if remainder == 0 {
			return NumberToWords(num/10000000) + " Crore"
		}
		return NumberToWords(num/10000000) + " Crore " + NumberToWords(remainder)
	}
}

// WeightToWords spells a kilogram quantity for the challan, e.g.
// "Forty Seven Kg and Five Hundred Grams Only".
func WeightToWords(kg float64) string {
	whole := int(math.Floor(kg))
	grams := int(math.Round((kg - float64(whole)) * 1000))

	var parts []string

	if whole > 0 {
		parts = append(parts, fmt.Sprintf("%s Kg", strings.TrimSpace(NumberToWords(whole))))
	}
	if grams > 0 {
		parts = append(parts, fmt.Sprintf("%s Grams", strings.TrimSpace(NumberToWords(grams))))
	}

	if len(parts) == 0 {
		return "Zero Kg Only"
	}

	return strings.Join(parts, " and ") + " Only"
}
