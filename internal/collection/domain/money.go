package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// AmountCents converts a decimal currency string ("25.00", "10", "7,5")
// into integer minor units without any floating point math. All monetary
// arithmetic downstream is integer.
func AmountCents(raw string) (int64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("empty amount")
	}
	value = strings.ReplaceAll(value, ",", ".")

	whole := value
	frac := ""
	if idx := strings.IndexByte(value, '.'); idx >= 0 {
		whole, frac = value[:idx], value[idx+1:]
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimal places", raw)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	negative := false
	if strings.HasPrefix(whole, "-") {
		negative = true
		whole = whole[1:]
	}
	if whole == "" {
		whole = "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	cents64, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}

	total := units*100 + cents64
	if negative {
		total = -total
	}
	return total, nil
}

// FormatCents renders integer minor units as the decimal representation the
// pain.008 file requires ("2500" -> "25.00"). Exact by construction.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
