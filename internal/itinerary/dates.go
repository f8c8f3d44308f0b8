package itinerary

import (
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Layouts use Go's fixed English month and weekday names, so the output is
// the same on every host regardless of its locale settings.
const (
	layoutDate     = "Jan 2, 2006"
	layoutDateLong = "Mon, Jan 2, 2006"
	layoutMonthDay = "Jan 2"
	layoutYear     = "2006"
)

// FormatDate renders a date as "Jun 1, 2024". The zero date renders as "".
func FormatDate(d domain.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(layoutDate)
}

// FormatDateLong renders a date with its weekday, as "Sat, Jun 1, 2024".
func FormatDateLong(d domain.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(layoutDateLong)
}

// FormatDateRange renders a trip's span. Within one year the year is shown
// once ("Jun 1 - Jun 10, 2024"); across years both are shown
// ("Dec 28 - Jan 3, 2024 - 2025").
func FormatDateRange(start, end domain.Date) string {
	years := end.Format(layoutYear)
	if start.Year() != end.Year() {
		years = start.Format(layoutYear) + " - " + end.Format(layoutYear)
	}
	return fmt.Sprintf("%s - %s, %s", start.Format(layoutMonthDay), end.Format(layoutMonthDay), years)
}
