// Package sqlite provides a SQLite-backed implementation of the
// history repository port.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/moodlifter-labs/moodlifter/internal/core/domain"
	"github.com/moodlifter-labs/moodlifter/internal/core/ports"
)

// Adapter implements the history repository port for SQLite.
type Adapter struct {
	db *sql.DB
}

var _ ports.HistoryRepository = (*Adapter)(nil)

// NewAdapter opens the database and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id         TEXT PRIMARY KEY,
		emotion    TEXT NOT NULL,
		score      REAL NOT NULL,
		genre      TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS run_tracks (
		run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		track_id    TEXT NOT NULL,
		title       TEXT NOT NULL,
		artist      TEXT NOT NULL,
		artist_id   TEXT,
		link        TEXT,
		genre       TEXT,
		popularity  INTEGER NOT NULL DEFAULT 0,
		seed_track  TEXT,
		seed_artist TEXT,
		energy      REAL,
		PRIMARY KEY (run_id, position)
	);
	`
	_, err := a.db.Exec(schema)
	return err
}

// SaveRun stores a completed run and its tracks in one transaction.
func (a *Adapter) SaveRun(ctx context.Context, run ports.Run) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs (id, emotion, score, genre) VALUES (?, ?, ?, ?)",
		run.ID, run.Emotion, run.Score, run.Genre,
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i, track := range run.Tracks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO run_tracks
				(run_id, position, track_id, title, artist, artist_id, link, genre, popularity, seed_track, seed_artist)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, track.ID, track.Title, track.Artist, track.ArtistID,
			track.Link, track.Genre, track.Popularity, track.SeedTrack, track.SeedArtist,
		); err != nil {
			return fmt.Errorf("failed to insert run track: %w", err)
		}
	}

	return tx.Commit()
}

// RecentRuns returns the newest runs with their tracks, newest first.
func (a *Adapter) RecentRuns(ctx context.Context, limit int) ([]ports.Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := a.db.QueryContext(ctx,
		"SELECT id, emotion, score, genre, created_at FROM runs ORDER BY created_at DESC, id LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}
	defer rows.Close()

	var runs []ports.Run
	for rows.Next() {
		var run ports.Run
		if err := rows.Scan(&run.ID, &run.Emotion, &run.Score, &run.Genre, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	for i := range runs {
		tracks, err := a.runTracks(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Tracks = tracks
	}

	return runs, nil
}

func (a *Adapter) runTracks(ctx context.Context, runID string) ([]domain.Recommendation, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT track_id, title, artist, IFNULL(artist_id, ''), IFNULL(link, ''),
			IFNULL(genre, ''), popularity, IFNULL(seed_track, ''), IFNULL(seed_artist, '')
		FROM run_tracks WHERE run_id = ? ORDER BY position ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run tracks: %w", err)
	}
	defer rows.Close()

	var tracks []domain.Recommendation
	for rows.Next() {
		var t domain.Recommendation
		if err := rows.Scan(&t.ID, &t.Title, &t.Artist, &t.ArtistID, &t.Link,
			&t.Genre, &t.Popularity, &t.SeedTrack, &t.SeedArtist); err != nil {
			return nil, fmt.Errorf("failed to scan run track: %w", err)
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// UpdateTrackEnergy records the analyzed preview energy for one stored
// track.
func (a *Adapter) UpdateTrackEnergy(ctx context.Context, runID, trackID string, energy float64) error {
	res, err := a.db.ExecContext(ctx,
		"UPDATE run_tracks SET energy = ? WHERE run_id = ? AND track_id = ?",
		energy, runID, trackID)
	if err != nil {
		return fmt.Errorf("failed to update track energy: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
