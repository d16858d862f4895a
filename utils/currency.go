package utils

import (
	"fmt"
	"strings"
)

// FormatCOP memformat peso Kolombia utuh dengan pemisah ribuan.
// Contoh: 10710 -> "$ 10.710" (COP tidak punya sen di domain ini).
func FormatCOP(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)

	var parts []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		parts = append([]string{digits[start:i]}, parts...)
	}

	out := "$ " + strings.Join(parts, ".")
	if neg {
		out = "-" + out
	}
	return out
}
