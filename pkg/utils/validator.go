package utils

import (
	"fmt"
	"regexp"
	"time"
)

var (
	nipRegex     = regexp.MustCompile(`^\d{18}$`)
	controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)
)

// ValidateNIP validates an Indonesian civil servant identification number,
// which is exactly 18 digits
func ValidateNIP(nip string) error {
	if !nipRegex.MatchString(nip) {
		return fmt.Errorf("NIP must be exactly 18 digits: %s", nip)
	}
	return nil
}

// ValidateDateRange checks that a travel period is ordered
func ValidateDateRange(start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("end date %s is before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return nil
}

// ValidateAmount validates a cost entry in rupiah
func ValidateAmount(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("amount must not be negative: %d", amount)
	}
	return nil
}

// SanitizeString removes control characters from user-entered text
func SanitizeString(s string) string {
	return controlChars.ReplaceAllString(s, "")
}
