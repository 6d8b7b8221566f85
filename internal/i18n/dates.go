package i18n

import (
	"fmt"
	"time"
)

var weekdayES = [...]string{
	time.Sunday:    "Domingo",
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miércoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sábado",
}

var monthES = [...]string{
	time.January:   "enero",
	time.February:  "febrero",
	time.March:     "marzo",
	time.April:     "abril",
	time.May:       "mayo",
	time.June:      "junio",
	time.July:      "julio",
	time.August:    "agosto",
	time.September: "septiembre",
	time.October:   "octubre",
	time.November:  "noviembre",
	time.December:  "diciembre",
}

// FormatDate renders an ISO "YYYY-MM-DD" forecast date with localized
// weekday and month names: "Lunes, 01 de septiembre" in Spanish,
// "Monday, 01 September" in English. Unparseable input passes through.
func FormatDate(lang, isoDate string) string {
	d, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	if lang != "es" {
		return d.Format("Monday, 02 January")
	}
	return fmt.Sprintf("%s, %02d de %s", weekdayES[d.Weekday()], d.Day(), monthES[d.Month()])
}
