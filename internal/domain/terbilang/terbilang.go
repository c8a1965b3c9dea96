// Package terbilang spells out rupiah amounts as lowercase Indonesian
// words, the form required on official expense statements.
package terbilang

import "strings"

var units = []string{
	"", "satu", "dua", "tiga", "empat", "lima", "enam", "tujuh", "delapan", "sembilan",
}

// Scale words for base-1000 chunks, least significant first. Amounts beyond
// the trillion chunk get no scale word; statement totals never reach it.
var scales = []string{"", "ribu", "juta", "miliar", "triliun"}

// CurrencySuffix is appended to every converted amount.
const CurrencySuffix = "rupiah"

// ToWords converts a rupiah amount to lowercase Indonesian words with the
// currency suffix. Negative input is converted by absolute value.
func ToWords(n int64) string {
	if n < 0 {
		n = -n
	}
	if n == 0 {
		return "nol " + CurrencySuffix
	}

	var parts []string
	for pos := 0; n > 0; pos++ {
		chunk := n % 1000
		n /= 1000
		if chunk == 0 {
			continue
		}
		words := chunkToWords(chunk)
		// "seribu", not "satu ribu"
		if pos == 1 && chunk == 1 {
			words = "seribu"
		} else if pos > 0 && pos < len(scales) {
			words += " " + scales[pos]
		}
		parts = append([]string{words}, parts...)
	}

	parts = append(parts, CurrencySuffix)
	return strings.Join(parts, " ")
}

// chunkToWords renders a value in [1, 999].
func chunkToWords(n int64) string {
	var parts []string

	if h := n / 100; h > 0 {
		if h == 1 {
			parts = append(parts, "seratus")
		} else {
			parts = append(parts, units[h]+" ratus")
		}
		n %= 100
	}

	switch {
	case n == 0:
	case n < 10:
		parts = append(parts, units[n])
	case n == 10:
		parts = append(parts, "sepuluh")
	case n == 11:
		parts = append(parts, "sebelas")
	case n < 20:
		parts = append(parts, units[n-10]+" belas")
	default:
		parts = append(parts, units[n/10]+" puluh")
		if n%10 > 0 {
			parts = append(parts, units[n%10])
		}
	}

	return strings.Join(parts, " ")
}
