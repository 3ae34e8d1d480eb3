package cmd

import (
	"fmt"
	"time"
)

// seasonMonths is the MiLB regular season, April through September.
var seasonMonths = []int{4, 5, 6, 7, 8, 9}

// parseMonth parses a YYYY-MM string.
func parseMonth(s string) (year, month int, err error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (want YYYY-MM)", s)
	}
	return t.Year(), int(t.Month()), nil
}

// parseDate validates a YYYY-MM-DD string and returns it normalized.
func parseDate(s string) (string, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t.Format("2006-01-02"), nil
}

// yesterdayDate returns yesterday as YYYY-MM-DD.
func yesterdayDate() string {
	return time.Now().AddDate(0, 0, -1).Format("2006-01-02")
}

// monthDates returns every date of a month up to today, as YYYY-MM-DD.
func monthDates(year, month int) []string {
	today := time.Now().Format("2006-01-02")
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	var dates []string
	for d := first; int(d.Month()) == month; d = d.AddDate(0, 0, 1) {
		s := d.Format("2006-01-02")
		if s > today {
			break
		}
		dates = append(dates, s)
	}
	return dates
}
