package cmd

import (
	"fmt"
	"regexp"
	"time"
)

// ParsedDate is a date argument and the precision it was given in.
type ParsedDate struct {
	Date   time.Time
	Decade bool
	Year   bool
	Month  bool
	Day    bool
}

var datestringFormats = []struct {
	pattern *regexp.Regexp
	layout  string
	set     func(*ParsedDate)
}{
	{regexp.MustCompile(`^\d{3}0s$`), "2006s", func(d *ParsedDate) { d.Decade = true }},
	{regexp.MustCompile(`^\d{4}$`), "2006", func(d *ParsedDate) { d.Year = true }},
	{regexp.MustCompile(`^\d{4}-\d{2}$`), "2006-01", func(d *ParsedDate) { d.Month = true }},
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02", func(d *ParsedDate) { d.Day = true }},
}

func parseDateRangeFromArgs(args []string) (start time.Time, end time.Time, err error) {
	switch len(args) {
	case 0:
		start, end = allTime()

	case 1:
		start, end, err = getImplicitDateRange(args[0])

	case 2:
		start, end, err = getExplicitDateRange(args[0], args[1])

	default:
		err = fmt.Errorf("Expected at most two date arguments")
	}
	return
}

func getImplicitDateRange(ds string) (start time.Time, end time.Time, err error) {
	date, err := parseSingleDatestring(ds)
	if err != nil {
		return
	}

	start = date.Date
	switch {
	case date.Decade:
		end = start.AddDate(10, 0, 0)

	case date.Year:
		end = start.AddDate(1, 0, 0)

	case date.Month:
		end = start.AddDate(0, 1, 0)

	case date.Day:
		end = start.AddDate(0, 0, 1)

	default:
		err = fmt.Errorf("Invalid format: %q", ds)
	}

	return
}

func getExplicitDateRange(startString, endString string) (start time.Time, end time.Time, err error) {
	startParsed, err := parseSingleDatestring(startString)
	if err != nil {
		return
	}
	start = startParsed.Date

	endParsed, err := parseSingleDatestring(endString)
	if err != nil {
		return
	}
	end = endParsed.Date

	return
}

func parseSingleDatestring(ds string) (date ParsedDate, err error) {
	for _, format := range datestringFormats {
		if !format.pattern.MatchString(ds) {
			continue
		}
		date.Date, err = time.Parse(format.layout, ds)
		if err != nil {
			err = fmt.Errorf("Parsing datestring %q: %w", ds, err)
			return
		}
		format.set(&date)
		return
	}

	err = fmt.Errorf("Invalid format: %q", ds)
	return
}
