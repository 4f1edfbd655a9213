package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ademuri/chart-gaps/internal/chart"
)

type ImportInfo struct {
	Source     string
	Imported   time.Time
	Performers int64
	Songs      int64
}

// GetImport describes the current import. ok is false if nothing has been
// imported yet.
func (s *Store) GetImport() (info ImportInfo, ok bool, err error) {
	row := s.db.QueryRow("SELECT source, imported FROM Import ORDER BY id DESC LIMIT 1")
	err = row.Scan(&info.Source, &info.Imported)
	if err == sql.ErrNoRows {
		return info, false, nil
	}
	if err != nil {
		return info, false, fmt.Errorf("getting import: %w", err)
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM Performer").Scan(&info.Performers); err != nil {
		return info, false, fmt.Errorf("counting performers: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM Song").Scan(&info.Songs); err != nil {
		return info, false, fmt.Errorf("counting songs: %w", err)
	}
	return info, true, nil
}

type Comeback struct {
	Performer  string
	FirstTitle string
	FirstWeek  time.Time
	Title      string
	Week       time.Time
	PeakRank   int
	Years      int
}

// GetTopComebacks returns songs that first charted in [start, end), ordered
// by the gap since their performer's breakthrough, largest first. A limit
// of 0 returns everything.
func (s *Store) GetTopComebacks(start, end time.Time, limit int) ([]Comeback, error) {
	query := `
	SELECT Song.performer, Performer.first_title, Performer.first_week,
		Song.title, Song.first_week, COALESCE(Song.peak_rank, 0), Song.years_since_breakthrough
	FROM Song
	INNER JOIN Performer ON Performer.name = Song.performer
	WHERE Song.years_since_breakthrough IS NOT NULL
	AND Song.first_week >= ? AND Song.first_week < ?
	ORDER BY Song.years_since_breakthrough DESC, Song.first_week ASC, Song.performer ASC
	`
	args := []interface{}{start.Format(chart.DateFormat), end.Format(chart.DateFormat)}
	if limit > 0 {
		query += "LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying comebacks: %w", err)
	}
	defer rows.Close()

	var results []Comeback
	for rows.Next() {
		var c Comeback
		var firstWeek, week string
		if err := rows.Scan(&c.Performer, &c.FirstTitle, &firstWeek, &c.Title, &week, &c.PeakRank, &c.Years); err != nil {
			return nil, fmt.Errorf("scanning comeback: %w", err)
		}
		if c.FirstWeek, err = time.Parse(chart.DateFormat, firstWeek); err != nil {
			return nil, fmt.Errorf("parsing week %q: %w", firstWeek, err)
		}
		if c.Week, err = time.Parse(chart.DateFormat, week); err != nil {
			return nil, fmt.Errorf("parsing week %q: %w", week, err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}
