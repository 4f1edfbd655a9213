package analysis

import (
	"sort"
	"time"

	"github.com/ademuri/chart-gaps/internal/chart"
)

// Gaps longer than this many years are called out in the report.
const OutlierYears = 40

// Years are a fixed 365 days; leap days are ignored.
const secondsPerYear = 365 * 24 * 60 * 60

// Histogram counts reappearances per whole-year gap and remembers the order
// in which buckets were created.
type Histogram struct {
	counts map[int]int
	order  []int
}

func NewHistogram() *Histogram {
	return &Histogram{counts: make(map[int]int)}
}

func (h *Histogram) Add(years int) {
	if _, ok := h.counts[years]; !ok {
		h.order = append(h.order, years)
	}
	h.counts[years]++
}

func (h *Histogram) Count(years int) int {
	return h.counts[years]
}

func (h *Histogram) Total() int {
	total := 0
	for _, c := range h.counts {
		total += c
	}
	return total
}

// Buckets returns buckets in creation order.
func (h *Histogram) Buckets() []Bucket {
	buckets := make([]Bucket, 0, len(h.order))
	for _, years := range h.order {
		buckets = append(buckets, Bucket{Years: years, Count: h.counts[years]})
	}
	return buckets
}

// SortedBuckets returns buckets ordered by gap, smallest first.
func (h *Histogram) SortedBuckets() []Bucket {
	buckets := h.Buckets()
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Years < buckets[j].Years
	})
	return buckets
}

type Result struct {
	Appearances   *Appearances
	Histogram     *Histogram
	Reappearances []Reappearance
}

func (r *Result) NumPerformers() int {
	return len(r.Appearances.Performers)
}

func (r *Result) NumSongs() int {
	return len(r.Appearances.Songs)
}

// Outliers returns reappearances more than OutlierYears after the
// breakthrough, in aggregation order.
func (r *Result) Outliers() []Reappearance {
	var outliers []Reappearance
	for _, re := range r.Reappearances {
		if re.Years > OutlierYears {
			outliers = append(outliers, re)
		}
	}
	return outliers
}

// Aggregate computes the gap between each song's first appearance and its
// performer's breakthrough. The breakthrough song itself is not counted.
func Aggregate(a *Appearances) *Result {
	result := &Result{
		Appearances: a,
		Histogram:   NewHistogram(),
	}

	for _, key := range a.SongKeys() {
		song := a.Songs[key]
		breakthrough := a.Performers[key.Performer]
		if breakthrough == song {
			continue
		}

		years := yearsBetween(breakthrough.ChartWeek, song.ChartWeek)
		result.Histogram.Add(years)
		result.Reappearances = append(result.Reappearances, Reappearance{
			Song:         song,
			Breakthrough: breakthrough,
			Years:        years,
		})
	}

	return result
}

// Analyze runs the whole pipeline over parsed records. records is sorted in
// place.
func Analyze(records []chart.Record) *Result {
	chart.Sort(records)
	return Aggregate(Reduce(records))
}

func yearsBetween(from, to time.Time) int {
	seconds := to.Unix() - from.Unix()
	years := seconds / secondsPerYear
	if seconds%secondsPerYear != 0 && seconds < 0 {
		years--
	}
	return int(years)
}
