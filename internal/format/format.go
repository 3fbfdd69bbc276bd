// Package format renders numbers and dates the way the dashboard cards show them.
package format

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Money rounds to whole dollars with thousands separators: $12,345.
func Money(v float64) string {
	return printer.Sprintf("$%d", int64(math.Round(v)))
}

// Count formats an integer with thousands separators.
func Count(v int64) string {
	return printer.Sprintf("%d", v)
}

func Ratio(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// Multiple is a ROAS shown as "3.0x".
func Multiple(v float64) string {
	return printer.Sprintf("%.1fx", v)
}

func Percent(v float64) string {
	return printer.Sprintf("%.2f%%", v)
}

// WeekLabel turns an ISO week start into "Jan 8". Unparseable keys are
// returned unchanged.
func WeekLabel(weekStart string) string {
	t, err := time.Parse(time.DateOnly, weekStart)
	if err != nil {
		return weekStart
	}
	return t.Format("Jan 2")
}
