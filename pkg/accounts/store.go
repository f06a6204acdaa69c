package accounts

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gamestore/pkg/models"

	_ "modernc.org/sqlite"
)

// Store manages maintainer accounts in SQLite. Every operation
// re-reads the backing store; nothing is cached across requests, so a
// concurrent credential edit is visible to the very next verification.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore creates a new accounts store with the given database path.
func NewStore(dbPath string) (*Store, error) {
	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrDatabaseError, err)
	}

	if _, err := database.ExecContext(context.Background(), "PRAGMA journal_mode = WAL"); err != nil {
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

// Get retrieves a single account by username.
func (s *Store) Get(username string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.get(username)
}

func (s *Store) get(username string) (*models.Account, error) {
	var account models.Account
	err := s.db.QueryRowContext(context.Background(),
		`SELECT username, password_hash, hash_algo, rehash_count, removable FROM accounts WHERE username = ?`,
		username,
	).Scan(&account.Username, &account.PasswordHash, &account.HashAlgorithm, &account.RehashCount, &account.Removable)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	return &account, nil
}

// List returns every account in stable scan order.
func (s *Store) List() ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(context.Background(),
		`SELECT username, password_hash, hash_algo, rehash_count, removable FROM accounts ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	defer func() { _ = rows.Close() }()

	accounts := []models.Account{}
	for rows.Next() {
		var account models.Account
		err := rows.Scan(&account.Username, &account.PasswordHash, &account.HashAlgorithm,
			&account.RehashCount, &account.Removable)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
		}
		accounts = append(accounts, account)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	return accounts, nil
}

// Count returns the number of accounts.
func (s *Store) Count() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	err := s.db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM accounts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	return count, nil
}

// Verify authenticates a submitted password. The hash is re-derived
// with the account's own algorithm and rehash count, never a global
// default, and compared against the stored value. Unknown usernames
// and wrong passwords both yield ErrUnauthorized.
func (s *Store) Verify(username, password string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, err := s.get(username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	derived, err := ChainHash(account.HashAlgorithm, account.RehashCount, password)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(derived), []byte(account.PasswordHash)) != 1 {
		return nil, ErrUnauthorized
	}
	return account, nil
}

// Provision creates a new account. The confirmation copy must match
// the password, and an existing username is refused without touching
// the stored record.
func (s *Store) Provision(username, password, confirm, algorithm string, iterations int, removable bool) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidUsername
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	hash, err := ChainHash(algorithm, iterations, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(context.Background(),
		`INSERT INTO accounts (username, password_hash, hash_algo, rehash_count, removable) VALUES (?, ?, ?, ?, ?)`,
		username, hash, algorithm, iterations, removable,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	return &models.Account{
		Username:      username,
		PasswordHash:  hash,
		HashAlgorithm: algorithm,
		RehashCount:   iterations,
		Removable:     removable,
	}, nil
}

// Rotate overwrites an account's credentials. Changing the algorithm
// or the iteration count requires re-proving the secret, so those
// rotations are refused without a new password. An empty password
// with unchanged scheme parameters leaves the account as it is.
func (s *Store) Rotate(username, newPassword, confirm, algorithm string, iterations int) (*models.Account, error) {
	if newPassword != confirm {
		return nil, ErrPasswordMismatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.get(username)
	if err != nil {
		return nil, err
	}

	schemeChanged := algorithm != account.HashAlgorithm || iterations != account.RehashCount
	if newPassword == "" {
		if schemeChanged {
			return nil, ErrNewPasswordRequired
		}
		return account, nil
	}

	hash, err := ChainHash(algorithm, iterations, newPassword)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(context.Background(),
		`UPDATE accounts SET password_hash = ?, hash_algo = ?, rehash_count = ? WHERE username = ?`,
		hash, algorithm, iterations, username,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	account.PasswordHash = hash
	account.HashAlgorithm = algorithm
	account.RehashCount = iterations
	return account, nil
}

// Remove deletes an account. Accounts marked non-removable are
// refused.
func (s *Store) Remove(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.get(username)
	if err != nil {
		return err
	}
	if !account.Removable {
		return ErrNotRemovable
	}

	if _, err := s.db.ExecContext(context.Background(), `DELETE FROM accounts WHERE username = ?`, username); err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	return nil
}

// Bootstrap provisions an initial non-removable admin account when the
// store is empty. A populated store is left untouched.
func (s *Store) Bootstrap(username, password, algorithm string, iterations int) error {
	count, err := s.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = s.Provision(username, password, password, algorithm, iterations, false)
	return err
}
