package export

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for display formatting in
// spreadsheet and PDF cells. English locale keeps thousand separators
// consistent across artifacts.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// formatKg renders a kg CO2e value for display cells: thousand
// separators, three decimal places.
func formatKg(v float64) string {
	return printer.Sprintf("%.3f", v)
}

// formatCount renders an integer count with thousand separators.
func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}
