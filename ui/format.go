package ui

import (
	"html/template"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"count":    formatCount,
		"percent":  formatPercent,
		"currency": formatCurrency,
	}
}

// formatCount renders 1470 as "1,470"
func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// formatPercent renders 16.1 as "16.1%"
func formatPercent(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 1, 64) + "%"
}

// formatCurrency renders 6503 as "$6,503"
func formatCurrency(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	v = math.Round(v)
	if v < 0 {
		return printer.Sprintf("-$%.0f", -v)
	}
	return printer.Sprintf("$%.0f", v)
}
