package catalog

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gamestore/pkg/models"

	_ "modernc.org/sqlite"
)

// Store manages catalog entries in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore creates a new catalog store with the given database path.
func NewStore(dbPath string) (*Store, error) {
	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrDatabaseError, err)
	}

	ctx := context.Background()

	// Enable WAL mode for better concurrency
	if _, err := database.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("%w: failed to enable WAL mode: %w", ErrDatabaseError, err)
	}

	store := &Store{db: database}
	if err := store.Initialize(); err != nil {
		_ = database.Close()
		return nil, err
	}

	return store, nil
}

// Initialize creates the database schema.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(context.Background(), Schema)
	if err != nil {
		return fmt.Errorf("%w: failed to initialize schema: %w", ErrDatabaseError, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EncodeSource returns the stored re-encoding of a download URL. It is
// not a security measure, only the secondary lookup key used by the
// removal and download flows.
func EncodeSource(url string) string {
	return base64.StdEncoding.EncodeToString([]byte(url))
}

// NewEntry validates and normalizes the caller-supplied fields into a
// catalog entry ready for insertion. The download counter starts at 1
// and the creation timestamp is set here, never mutated afterwards.
func NewEntry(name, url, screenshotsURL, description, rating, platform string, genres []string, inPackMan bool) (*models.Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("%w: url is required", ErrValidation)
	}

	cleaned := make([]string, 0, len(genres))
	for _, genre := range genres {
		genre = strings.TrimSpace(genre)
		if genre == "" {
			continue
		}
		if strings.Contains(genre, genreDelimiter) {
			return nil, fmt.Errorf("%w: genre tag %q contains the delimiter character", ErrValidation, genre)
		}
		cleaned = append(cleaned, genre)
	}

	return &models.Game{
		Name:           strings.ReplaceAll(name, " ", "_"),
		SourceEncoded:  EncodeSource(url),
		Downloads:      1,
		Genres:         cleaned,
		URL:            url,
		ScreenshotsURL: screenshotsURL,
		Description:    description,
		Rating:         strings.ToUpper(rating),
		Platform:       strings.ToLower(platform),
		AddedAt:        time.Now().Unix(),
		InPackMan:      inPackMan,
	}, nil
}

// Insert stores a new catalog entry. Name uniqueness is enforced here:
// a duplicate name yields ErrNameExists and leaves the table untouched.
func (s *Store) Insert(game *models.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO games (name, base64, downloads, genres, url, screenshots_url, description, rating, platform, add_time, in_pack_man)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.Name, game.SourceEncoded, game.Downloads, joinGenres(game.Genres),
		game.URL, game.ScreenshotsURL, game.Description, game.Rating, game.Platform,
		game.AddedAt, game.InPackMan,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrNameExists
		}
		return fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	return nil
}

// GetByName retrieves a single entry by its primary key.
func (s *Store) GetByName(name string) (*models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(context.Background(),
		`SELECT name, base64, downloads, genres, url, screenshots_url, description, rating, platform, add_time, in_pack_man
		 FROM games WHERE name = ?`, name)

	game, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	return game, nil
}

// List returns every catalog entry in stable scan order. An empty
// store yields an empty slice, not an error.
func (s *Store) List() ([]models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(context.Background(),
		`SELECT name, base64, downloads, genres, url, screenshots_url, description, rating, platform, add_time, in_pack_man
		 FROM games ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	defer func() { _ = rows.Close() }()

	games := []models.Game{}
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
		}
		games = append(games, *game)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	return games, nil
}

// Count returns the number of catalog entries.
func (s *Store) Count() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	err := s.db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM games`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	return count, nil
}

// RecordDownload increments the download counter for the named entry
// by exactly 1 and returns the download grant. The read and the
// increment run in one transaction, so concurrent calls on the same
// entry never lose an update. A miss performs no write.
func (s *Store) RecordDownload(name string) (*models.DownloadGrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	defer func() { _ = tx.Rollback() }()

	var grant models.DownloadGrant
	err = tx.QueryRowContext(ctx, `SELECT url, in_pack_man FROM games WHERE name = ?`, name).
		Scan(&grant.URL, &grant.InPackMan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE games SET downloads = downloads + 1 WHERE name = ?`, name); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	return &grant, nil
}

// DeleteBySource removes every entry whose encoded source key appears
// in the given list and returns the names of the deleted entries, in
// the order the keys were supplied. Unknown keys are skipped.
func (s *Store) DeleteBySource(encodedKeys []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	defer func() { _ = tx.Rollback() }()

	deleted := []string{}
	for _, key := range encodedKeys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		rows, err := tx.QueryContext(ctx, `SELECT name FROM games WHERE base64 = ?`, key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
		}
		names := []string{}
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				_ = rows.Close()
				return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
			}
			names = append(names, name)
		}
		if err := rows.Err(); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
		}
		_ = rows.Close()

		if len(names) == 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM games WHERE base64 = ?`, key); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
		}
		deleted = append(deleted, names...)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	return deleted, nil
}

// DeleteByName removes a single entry by its primary key. This is the
// stable deletion path for programmatic callers; the encoded source
// key is collision-prone (two entries can share a download URL).
func (s *Store) DeleteByName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(context.Background(), `DELETE FROM games WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanGame.
type scanner interface {
	Scan(dest ...any) error
}

// scanGame reads one games row. Rating and platform are normalized on
// read, matching the projection the store clients have always seen.
func scanGame(row scanner) (*models.Game, error) {
	var game models.Game
	var genres string
	err := row.Scan(
		&game.Name, &game.SourceEncoded, &game.Downloads, &genres,
		&game.URL, &game.ScreenshotsURL, &game.Description, &game.Rating,
		&game.Platform, &game.AddedAt, &game.InPackMan,
	)
	if err != nil {
		return nil, err
	}
	game.Genres = splitGenres(genres)
	game.Rating = strings.ToUpper(game.Rating)
	game.Platform = strings.ToLower(game.Platform)
	return &game, nil
}

func joinGenres(genres []string) string {
	return strings.Join(genres, genreDelimiter)
}

func splitGenres(stored string) []string {
	if stored == "" {
		return []string{}
	}
	return strings.Split(stored, genreDelimiter)
}
