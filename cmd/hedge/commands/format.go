package commands

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// formatMoney renders a P&L value as whole dollars with thousands
// separators, e.g. -12345.6 -> "$-12,346".
func formatMoney(v float64) string {
	rounded := decimal.NewFromFloat(v).Round(0)
	s := rounded.StringFixed(0)

	negative := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := "$" + strings.Join(groups, ",")
	if negative {
		out = "$-" + strings.Join(groups, ",")
	}
	return out
}

func printTableHeader(columns []string, widths []int) {
	printTableRow(columns, widths)

	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2
		}
	}
	fmt.Println(strings.Repeat("-", totalWidth))
}

func printTableRow(values []string, widths []int) {
	for i, val := range values {
		fmt.Printf("%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()
}

func printSeparator() {
	fmt.Println(strings.Repeat("=", 72))
}
