package expense

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rupiahPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount in Indonesian numeral style with the
// currency marker, e.g. 1500000 -> "Rp.1.500.000".
func FormatRupiah(amount int64) string {
	return rupiahPrinter.Sprintf("Rp.%d", amount)
}
