package migration

// Create builds an empty database. Every statement is idempotent.
const Create = `
CREATE TABLE IF NOT EXISTS Import (
  id INTEGER PRIMARY KEY,
  source TEXT,
  imported DATETIME
);

CREATE TABLE IF NOT EXISTS Performer (
  name TEXT PRIMARY KEY,
  first_week TEXT NOT NULL,
  first_title TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS Song (
  performer TEXT,
  title TEXT,
  first_week TEXT NOT NULL,
  rank INTEGER,
  peak_rank INTEGER,
  weeks_on_chart INTEGER,
  years_since_breakthrough INTEGER,
  FOREIGN KEY (performer) REFERENCES Performer(name),
  PRIMARY KEY (performer, title)
);

CREATE INDEX IF NOT EXISTS SongFirstWeek ON Song (first_week);

CREATE TABLE IF NOT EXISTS Gap (
  years INTEGER PRIMARY KEY,
  count INTEGER NOT NULL,
  position INTEGER NOT NULL
);
`
