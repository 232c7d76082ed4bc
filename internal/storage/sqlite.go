// Package storage provides SQLite-based persistence for blast history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// The terrain grid itself is never stored.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for blast history.
type Store struct {
	db *sql.DB
}

// BlastRecord is one recorded explosion.
type BlastRecord struct {
	ID         int64
	OriginX    int
	OriginY    int
	Power      float64
	Rays       int
	Falloff    float64
	Destroyed  int
	GridWidth  int
	GridHeight int
	Generator  string
	Seed       int64
	Types      map[string]int // Destroyed blocks per type name
	CreatedAt  time.Time
}

// BlastTotals contains aggregated statistics over all recorded blasts.
type BlastTotals struct {
	Blasts    int
	Destroyed int64
	Biggest   int
	AvgPower  float64
	LastBlast time.Time
}

// TypeTotal is the number of blocks of one type destroyed across all blasts.
type TypeTotal struct {
	Name  string
	Count int64
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS blasts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			origin_x INTEGER NOT NULL,
			origin_y INTEGER NOT NULL,
			power REAL NOT NULL,
			rays INTEGER NOT NULL,
			falloff REAL NOT NULL,
			destroyed INTEGER NOT NULL,
			grid_w INTEGER NOT NULL,
			grid_h INTEGER NOT NULL,
			generator TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_blasts_destroyed ON blasts(destroyed DESC);

		CREATE TABLE IF NOT EXISTS blast_types (
			blast_id INTEGER NOT NULL REFERENCES blasts(id) ON DELETE CASCADE,
			type_name TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (blast_id, type_name)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordBlast stores a blast and its per-type counts in one transaction.
// Returns the ID of the inserted record.
func (s *Store) RecordBlast(rec BlastRecord) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO blasts
		 (origin_x, origin_y, power, rays, falloff, destroyed, grid_w, grid_h, generator, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.OriginX,
		rec.OriginY,
		rec.Power,
		rec.Rays,
		rec.Falloff,
		rec.Destroyed,
		rec.GridWidth,
		rec.GridHeight,
		rec.Generator,
		rec.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save blast: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for name, count := range rec.Types {
		if count <= 0 {
			continue
		}
		if _, err := tx.Exec(
			"INSERT INTO blast_types (blast_id, type_name, count) VALUES (?, ?, ?)",
			id, name, count,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save blast type %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit blast: %w", err)
	}
	return id, nil
}

// RecentBlasts retrieves the most recent blasts, newest first.
func (s *Store) RecentBlasts(limit int) ([]BlastRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, origin_x, origin_y, power, rays, falloff, destroyed,
		        grid_w, grid_h, generator, seed, created_at
		 FROM blasts
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query blasts: %w", err)
	}

	var records []BlastRecord
	for rows.Next() {
		var r BlastRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.OriginX,
			&r.OriginY,
			&r.Power,
			&r.Rays,
			&r.Falloff,
			&r.Destroyed,
			&r.GridWidth,
			&r.GridHeight,
			&r.Generator,
			&r.Seed,
			&createdAt,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	rows.Close()

	for i := range records {
		types, err := s.blastTypes(records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Types = types
	}

	return records, nil
}

// blastTypes loads the per-type counts of one blast.
func (s *Store) blastTypes(blastID int64) (map[string]int, error) {
	rows, err := s.db.Query(
		"SELECT type_name, count FROM blast_types WHERE blast_id = ?",
		blastID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query blast types: %w", err)
	}
	defer rows.Close()

	types := make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		types[name] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return types, nil
}

// Totals retrieves aggregated statistics over all blasts.
func (s *Store) Totals() (*BlastTotals, error) {
	totals := &BlastTotals{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(destroyed), 0), COALESCE(MAX(destroyed), 0), COALESCE(AVG(power), 0)
		 FROM blasts`,
	).Scan(&totals.Blasts, &totals.Destroyed, &totals.Biggest, &totals.AvgPower)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get blast totals: %w", err)
	}

	var last any
	err = s.db.QueryRow(
		`SELECT created_at FROM blasts ORDER BY id DESC LIMIT 1`,
	).Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last blast: %w", err)
	}
	if err == nil {
		totals.LastBlast = parseTime(last)
	}

	return totals, nil
}

// TypeTotals returns destroyed block counts per type across all blasts,
// largest first.
func (s *Store) TypeTotals() ([]TypeTotal, error) {
	rows, err := s.db.Query(
		`SELECT type_name, SUM(count)
		 FROM blast_types
		 GROUP BY type_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get type totals: %w", err)
	}
	defer rows.Close()

	var totals []TypeTotal
	for rows.Next() {
		var t TypeTotal
		if err := rows.Scan(&t.Name, &t.Count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan totals row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Count != totals[j].Count {
			return totals[i].Count > totals[j].Count
		}
		return totals[i].Name < totals[j].Name
	})
	return totals, nil
}

// ClearHistory deletes all recorded blasts.
func (s *Store) ClearHistory() error {
	if _, err := s.db.Exec("DELETE FROM blast_types"); err != nil {
		return fmt.Errorf("storage: cannot clear blast types: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM blasts"); err != nil {
		return fmt.Errorf("storage: cannot clear blasts: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
