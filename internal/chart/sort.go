package chart

import "sort"

// Sort orders records by chart week, oldest first, then by rank within a week.
func Sort(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.ChartWeek.Equal(b.ChartWeek) {
			return a.ChartWeek.Before(b.ChartWeek)
		}
		return a.CurrentRank < b.CurrentRank
	})
}
