package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ademuri/chart-gaps/internal/analysis"
	"github.com/ademuri/chart-gaps/internal/chart"
)

// SaveResult replaces any previous import with r.
func (s *Store) SaveResult(r *analysis.Result, source string, imported time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"Gap", "Song", "Performer", "Import"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if _, err := tx.Exec("INSERT INTO Import (source, imported) VALUES (?, ?)", source, imported); err != nil {
		return fmt.Errorf("recording import: %w", err)
	}

	a := r.Appearances
	for name, first := range a.Performers {
		if err := createPerformer(tx, name, first); err != nil {
			return err
		}
	}

	years := make(map[*chart.Record]int, len(r.Reappearances))
	for _, re := range r.Reappearances {
		years[re.Song] = re.Years
	}
	for _, key := range a.SongKeys() {
		song := a.Songs[key]
		gap := sql.NullInt64{}
		if y, ok := years[song]; ok {
			gap = sql.NullInt64{Int64: int64(y), Valid: true}
		}
		if err := createSong(tx, song, gap); err != nil {
			return err
		}
	}

	for i, b := range r.Histogram.Buckets() {
		_, err := tx.Exec("INSERT INTO Gap (years, count, position) VALUES (?, ?, ?)", b.Years, b.Count, i)
		if err != nil {
			return fmt.Errorf("inserting gap %d: %w", b.Years, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func createPerformer(tx *sql.Tx, name string, first *chart.Record) error {
	_, err := tx.Exec("INSERT INTO Performer (name, first_week, first_title) VALUES (?, ?, ?)",
		name, first.ChartWeek.Format(chart.DateFormat), first.Title)
	if err != nil {
		return fmt.Errorf("inserting performer %q: %w", name, err)
	}
	return nil
}

func createSong(tx *sql.Tx, song *chart.Record, years sql.NullInt64) error {
	_, err := tx.Exec(`
		INSERT INTO Song (performer, title, first_week, rank, peak_rank, weeks_on_chart, years_since_breakthrough)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		song.Performer, song.Title, song.ChartWeek.Format(chart.DateFormat),
		song.CurrentRank, song.PeakRank, song.WeeksOnChart, years)
	if err != nil {
		return fmt.Errorf("inserting song %q by %q: %w", song.Title, song.Performer, err)
	}
	return nil
}
