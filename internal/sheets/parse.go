package sheets

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// dateFormats are the date layouts the team has used in the worksheet.
var dateFormats = []string{"2006-01-02", "01/02/2006", "01/02/06"}

// ParseAmountCents parses a worksheet amount like "-$924.99" or "1,234.56"
// into signed cents. Unparsable values come back as 0, matching how blank
// or garbage cells are treated during import.
func ParseAmountCents(s string) int64 {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(f * 100))
}

// ParseTxnCount parses a count cell like "100+" into an integer.
func ParseTxnCount(s string) int64 {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseDate parses a worksheet date cell, trying the known layouts in order.
func ParseDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// FormatCents renders cents as a worksheet currency string, e.g. -92499
// becomes "-$924.99".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
