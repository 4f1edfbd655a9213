package analysis

import (
	"fmt"
	"io"
)

const histogramHeader = "Years since first appearance by performer,# of reappearances"

// WriteReport writes the plain text report: outliers, counts, then the
// histogram as CSV lines in bucket creation order.
func WriteReport(w io.Writer, r *Result) error {
	for _, o := range r.Outliers() {
		if _, err := fmt.Fprintln(w, describeOutlier(o)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "# of performers: %d\n# of songs: %d\n\n%s\n",
		r.NumPerformers(), r.NumSongs(), histogramHeader); err != nil {
		return err
	}

	for _, b := range r.Histogram.Buckets() {
		if _, err := fmt.Fprintf(w, "%d,%d\n", b.Years, b.Count); err != nil {
			return err
		}
	}
	return nil
}

func describeOutlier(o Reappearance) string {
	return fmt.Sprintf("%s first appeared in %d with \"%s\", and reappeared in %d with \"%s\" (%d years later)",
		o.Song.Performer, o.Breakthrough.ChartWeek.Year(), o.Breakthrough.Title,
		o.Song.ChartWeek.Year(), o.Song.Title, o.Years)
}

// NewReport converts r to its YAML form, with the histogram sorted by gap.
func NewReport(r *Result) *Report {
	report := &Report{
		Performers: r.NumPerformers(),
		Songs:      r.NumSongs(),
		Histogram:  r.Histogram.SortedBuckets(),
	}
	for _, o := range r.Outliers() {
		report.Outliers = append(report.Outliers, OutlierStat{
			Performer:         o.Song.Performer,
			FirstTitle:        o.Breakthrough.Title,
			FirstYear:         o.Breakthrough.ChartWeek.Year(),
			ReappearanceTitle: o.Song.Title,
			ReappearanceYear:  o.Song.ChartWeek.Year(),
			Years:             o.Years,
		})
	}
	return report
}
