package analysis

import "github.com/ademuri/chart-gaps/internal/chart"

// SongKey identifies a song. Titles are not unique across performers.
type SongKey struct {
	Performer string
	Title     string
}

func keyOf(r *chart.Record) SongKey {
	return SongKey{Performer: r.Performer, Title: r.Title}
}

// Reappearance is a song whose first chart week came after its performer's
// breakthrough.
type Reappearance struct {
	Song         *chart.Record
	Breakthrough *chart.Record
	Years        int
}

// Report is the YAML form of a Result.
type Report struct {
	Performers int           `yaml:"performers"`
	Songs      int           `yaml:"songs"`
	Histogram  []Bucket      `yaml:"years_since_first_appearance"`
	Outliers   []OutlierStat `yaml:"outliers,omitempty"`
}

type Bucket struct {
	Years int `yaml:"years"`
	Count int `yaml:"reappearances"`
}

type OutlierStat struct {
	Performer         string `yaml:"performer"`
	FirstTitle        string `yaml:"first_title"`
	FirstYear         int    `yaml:"first_year"`
	ReappearanceTitle string `yaml:"reappearance_title"`
	ReappearanceYear  int    `yaml:"reappearance_year"`
	Years             int    `yaml:"years"`
}
