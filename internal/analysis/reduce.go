package analysis

import "github.com/ademuri/chart-gaps/internal/chart"

// Appearances holds the first chart week of every song and every performer.
type Appearances struct {
	Songs      map[SongKey]*chart.Record
	Performers map[string]*chart.Record

	// Insertion order of Songs.
	songOrder []SongKey
}

func newAppearances() *Appearances {
	return &Appearances{
		Songs:      make(map[SongKey]*chart.Record),
		Performers: make(map[string]*chart.Record),
	}
}

// SongKeys returns a copy of the song keys in the order they were first seen.
func (a *Appearances) SongKeys() []SongKey {
	keys := make([]SongKey, len(a.songOrder))
	copy(keys, a.songOrder)
	return keys
}

// Reduce finds first appearances in records, which should already be
// ordered with chart.Sort. Records without a performer are skipped. The
// returned records point into the records slice.
func Reduce(records []chart.Record) *Appearances {
	a := newAppearances()

	for i := range records {
		record := &records[i]
		if record.Performer == "" {
			continue
		}

		key := keyOf(record)
		first, ok := a.Songs[key]
		if ok && !record.ChartWeek.Before(first.ChartWeek) {
			// Already seen this song
			continue
		}
		if !ok {
			a.songOrder = append(a.songOrder, key)
		}
		a.Songs[key] = record

		performerFirst, ok := a.Performers[record.Performer]
		if !ok || record.ChartWeek.Before(performerFirst.ChartWeek) {
			a.Performers[record.Performer] = record
		}
	}

	return a
}
