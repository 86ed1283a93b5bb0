package services

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Human-readable identifier formats. Numbering comes from the atomic
// sequences table, so concurrent creates never mint the same code.

// skuPrefix derives the SKU prefix from the category name: the first
// three letters uppercased, or "ITM" when the name has none.
func skuPrefix(categoryName string) string {
	letters := make([]rune, 0, 3)
	for _, r := range strings.ToUpper(categoryName) {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
			if len(letters) == 3 {
				break
			}
		}
	}
	if len(letters) == 0 {
		return "ITM"
	}
	return string(letters)
}

func formatSKU(prefix string, n int) string {
	return fmt.Sprintf("%s-%03d", prefix, n)
}

// Location codes are numbered per location type.
func locationScope(locType string) string { return "location:" + locType }

func formatLocationCode(locType string, n int) string {
	p := strings.ToUpper(locType)
	if len(p) > 3 {
		p = p[:3]
	}
	return fmt.Sprintf("%s-%03d", p, n)
}

// Request codes are numbered per calendar year.
func requestScope(t time.Time) string { return fmt.Sprintf("request:%d", t.Year()) }

func formatRequestCode(t time.Time, n int) string {
	return fmt.Sprintf("REQ-%d-%03d", t.Year(), n)
}
