package chart

import "time"

// DateFormat is the layout of the chart_week column.
const DateFormat = "2006-01-02"

// Record is one song's entry on one week's chart.
type Record struct {
	ChartWeek    time.Time
	CurrentRank  int
	Title        string
	Performer    string
	PreviousRank *int // nil if the song wasn't on the previous week's chart
	PeakRank     int
	WeeksOnChart int
}
