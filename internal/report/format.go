package report

import (
	"impact-mcp/internal/impact"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func formatUSD(v float64) string {
	if v < 0 {
		return printer.Sprintf("-$%.2f", -v)
	}
	return printer.Sprintf("$%.2f", v)
}

func formatNumber(v float64) string {
	return printer.Sprintf("%.2f", v)
}

func formatPct(v float64) string {
	return printer.Sprintf("%.1f%%", v)
}

// FormatField renders an output value with its unit. Undefined values read "n/a".
func FormatField(f impact.Field) string {
	v, ok := f.Value.Get()
	if !ok {
		return "n/a"
	}
	switch f.Unit {
	case "USD":
		return formatUSD(v)
	case "ratio":
		return formatPct(v * 100)
	case "min":
		return printer.Sprintf("%.0f min", v)
	case "months":
		return printer.Sprintf("%.2f months", v)
	case "h":
		return printer.Sprintf("%.2f h", v)
	default:
		return formatNumber(v)
	}
}
