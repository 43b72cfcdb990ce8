package config

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"unicode"
)

// ErrInvalidKey is returned when a config key contains invalid characters.
var ErrInvalidKey = errors.New("invalid config key")

// ValidateKey checks if a config key contains only allowed characters.
// Valid keys contain: letters, digits, dots, underscores, and hyphens.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for i, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidKey, r, i)
		}
	}
	if key[0] == '.' || key[len(key)-1] == '.' {
		return fmt.Errorf("%w: key cannot start or end with a dot", ErrInvalidKey)
	}
	return nil
}

// Store provides access to runtime settings.
// No caching - reads fresh from the database each time.
type Store interface {
	// Get returns a single config entry by key, or nil when it does not exist.
	Get(ctx context.Context, key string) (*Entry, error)

	// Set creates or updates a config entry.
	Set(ctx context.Context, key string, value any, description string) error

	// GetAll returns all config entries.
	GetAll(ctx context.Context) (map[string]Entry, error)

	// GetByPrefix returns config entries matching the prefix.
	GetByPrefix(ctx context.Context, prefix string) (map[string]Entry, error)

	// Delete removes a config entry.
	Delete(ctx context.Context, key string) error
}

// Entry represents a single configuration entry.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// SQLStore implements Store on the settings table.
type SQLStore struct {
	db *sql.DB
}

// NewStore creates a settings store on an open database that already
// carries the settings table.
func NewStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Get returns a single config entry by key.
func (s *SQLStore) Get(ctx context.Context, key string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT key, value, description FROM settings WHERE key = ?`, key)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return entry, nil
}

// Set creates or updates a config entry.
func (s *SQLStore) Set(ctx context.Context, key string, value any, description string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	// Values are stored as JSON so numbers and booleans survive the round trip
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, description) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			description = CASE WHEN excluded.description = '' THEN settings.description ELSE excluded.description END`,
		key, string(valueJSON), description)
	if err != nil {
		return fmt.Errorf("upsert failed: %w", err)
	}
	return nil
}

// GetAll returns all config entries.
func (s *SQLStore) GetAll(ctx context.Context) (map[string]Entry, error) {
	return s.query(ctx, `SELECT key, value, description FROM settings`)
}

// GetByPrefix returns config entries matching the prefix.
func (s *SQLStore) GetByPrefix(ctx context.Context, prefix string) (map[string]Entry, error) {
	// substr avoids LIKE wildcard escaping for keys containing '_'
	return s.query(ctx,
		`SELECT key, value, description FROM settings WHERE substr(key, 1, ?) = ?`,
		len(prefix), prefix)
}

// Delete removes a config entry by key. Deleting a missing key is not an error.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

func (s *SQLStore) query(ctx context.Context, q string, args ...any) (map[string]Entry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	result := make(map[string]Entry)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		result[entry.Key] = *entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var (
		entry Entry
		raw   string
	)
	if err := row.Scan(&entry.Key, &raw, &entry.Description); err != nil {
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		slog.Debug("config value is not valid JSON, using as raw string",
			"key", entry.Key,
			"error", err)
		entry.Value = raw
	} else {
		entry.Value = parsed
	}
	return &entry, nil
}

// Int reads an integer setting, returning fallback when the key is missing,
// not a whole number, or the store fails.
func Int(ctx context.Context, store Store, key string, fallback int) int {
	if store == nil {
		return fallback
	}
	entry, err := store.Get(ctx, key)
	if err != nil {
		slog.Warn("failed to read setting", "key", key, "error", err)
		return fallback
	}
	if entry == nil {
		return fallback
	}
	switch v := entry.Value.(type) {
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	case int:
		return v
	}
	return fallback
}
