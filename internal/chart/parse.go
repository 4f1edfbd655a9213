package chart

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

var ErrNoHeaders = errors.New("no headers found")

const numColumns = 7

// Parse reads the Hot 100 CSV export. The header row is required but its
// contents are ignored; columns are mapped by position.
//
// Malformed dates and numbers don't fail the parse: they come back as the
// zero time and 0 respectively.
func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if _, err := reader.Read(); err == io.EOF {
		return nil, ErrNoHeaders
	} else if err != nil {
		return nil, fmt.Errorf("reading headers: %w", err)
	}

	var records []Record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(records)+2, err)
		}
		records = append(records, parseRow(fields))
	}
	return records, nil
}

func parseRow(fields []string) Record {
	for len(fields) < numColumns {
		fields = append(fields, "")
	}

	return Record{
		ChartWeek:    parseDate(fields[0]),
		CurrentRank:  parseInt(fields[1]),
		Title:        fields[2],
		Performer:    fields[3],
		PreviousRank: parseOptionalInt(fields[4]),
		PeakRank:     parseInt(fields[5]),
		WeeksOnChart: parseInt(fields[6]),
	}
}

func parseDate(s string) time.Time {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// The export writes "NA" for songs that are new to the chart.
func parseOptionalInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" || s == "NA" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}
