package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackzampolin/userboard/internal/pagination"
)

// ErrNoDefault is returned when no default value exists for a config key.
var ErrNoDefault = errors.New("no default exists")

// Setting keys.
const (
	KeyPageSize    = "pagination.page_size"
	KeyMaxPageSize = "pagination.max_page_size"
	KeyRadius      = "pagination.radius"
	KeyRadiusSmall = "pagination.radius_small"
)

// Default setting values.
const (
	DefaultPageSize    = 4
	DefaultMaxPageSize = 100
	DefaultRadius      = pagination.DefaultRadius
	DefaultRadiusSmall = 1
)

// DefaultEntries returns the default configuration entries.
// These are seeded into the settings table on startup.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Key:         KeyPageSize,
			Value:       DefaultPageSize,
			Description: "Users per page when pageSize is not given",
		},
		{
			Key:         KeyMaxPageSize,
			Value:       DefaultMaxPageSize,
			Description: "Largest pageSize a client may request",
		},
		{
			Key:         KeyRadius,
			Value:       DefaultRadius,
			Description: "Pages shown on each side of the current page",
		},
		{
			Key:         KeyRadiusSmall,
			Value:       DefaultRadiusSmall,
			Description: "Radius used by the users page on narrow screens",
		},
	}
}

// SeedDefaults seeds default configuration entries into the store.
// This is idempotent - existing entries are not overwritten.
func SeedDefaults(ctx context.Context, store Store, logger *slog.Logger) error {
	return SeedEntries(ctx, store, DefaultEntries(), logger)
}

// StartupEntries returns DefaultEntries with the pagination values of cfg
// applied. Non-positive page sizes and negative radii keep the default.
func StartupEntries(cfg *Config) []Entry {
	entries := DefaultEntries()
	if cfg == nil {
		return entries
	}
	for i := range entries {
		switch entries[i].Key {
		case KeyPageSize:
			if cfg.Pagination.PageSize > 0 {
				entries[i].Value = cfg.Pagination.PageSize
			}
		case KeyRadius:
			if cfg.Pagination.Radius >= 0 {
				entries[i].Value = cfg.Pagination.Radius
			}
		}
	}
	return entries
}

// SeedEntries writes each entry whose key is not yet in the store.
func SeedEntries(ctx context.Context, store Store, entries []Entry, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	seeded := 0
	skipped := 0

	for _, entry := range entries {
		existing, err := store.Get(ctx, entry.Key)
		if err != nil {
			return fmt.Errorf("failed to check key %q: %w", entry.Key, err)
		}

		if existing != nil {
			skipped++
			continue
		}

		if err := store.Set(ctx, entry.Key, entry.Value, entry.Description); err != nil {
			return fmt.Errorf("failed to seed key %q: %w", entry.Key, err)
		}
		seeded++
	}

	if seeded > 0 {
		logger.Info("seeded default config entries", "seeded", seeded, "skipped", skipped)
	}
	return nil
}

// GetDefault returns the default value for a config key.
// Returns nil if no default exists for the key.
func GetDefault(key string) *Entry {
	for _, entry := range DefaultEntries() {
		if entry.Key == key {
			return &entry
		}
	}
	return nil
}

// ResetToDefault resets a config key to its default value.
// Returns ErrNoDefault if no default exists for the key.
func ResetToDefault(ctx context.Context, store Store, key string) error {
	def := GetDefault(key)
	if def == nil {
		return fmt.Errorf("%w for key %q", ErrNoDefault, key)
	}
	return store.Set(ctx, key, def.Value, def.Description)
}
