package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackzampolin/userboard/internal/types"
)

const selectUsers = `
	SELECT
		u.id, u.name, u.username, u.email, u.phone,
		a.id, a.street, a.state, a.city, a.zipcode
	FROM users u
	LEFT JOIN addresses a ON u.id = a.user_id`

// CountUsers returns the number of users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// ListUsers returns one page of users ordered by name, addresses joined.
// A page size <= 0 returns every user.
func (s *Store) ListUsers(ctx context.Context, page types.Page) ([]types.User, error) {
	limit := page.Size
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx, selectUsers+`
	ORDER BY u.name, u.id
	LIMIT ? OFFSET ?`, limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []types.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetUser returns a single user. Returns ErrNotFound if it does not exist.
func (s *Store) GetUser(ctx context.Context, id string) (*types.User, error) {
	row := s.db.QueryRowContext(ctx, selectUsers+` WHERE u.id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a user and its optional address in one transaction.
// Empty IDs are generated. Returns the stored user.
func (s *Store) CreateUser(ctx context.Context, u types.User) (*types.User, error) {
	if u.ID == "" {
		u.ID = s.newID()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create user: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, name, username, email, phone)
		VALUES (?, ?, ?, ?, ?)
	`, u.ID, u.Name, u.Username, u.Email, u.Phone)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if u.Address != nil {
		addr := *u.Address
		if addr.ID == "" {
			addr.ID = s.newID()
		}
		addr.UserID = u.ID
		_, err = tx.ExecContext(ctx, `
			INSERT INTO addresses (id, user_id, street, state, city, zipcode)
			VALUES (?, ?, ?, ?, ?, ?)
		`, addr.ID, addr.UserID, addr.Street, addr.State, addr.City, addr.Zipcode)
		if err != nil {
			return nil, fmt.Errorf("create user address: %w", err)
		}
		u.Address = &addr
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create user: commit: %w", err)
	}
	return &u, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (types.User, error) {
	var (
		u                                    types.User
		addrID, street, state, city, zipcode sql.NullString
	)
	if err := row.Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone,
		&addrID, &street, &state, &city, &zipcode,
	); err != nil {
		return types.User{}, err
	}

	if addrID.Valid {
		u.Address = &types.Address{
			ID:      addrID.String,
			UserID:  u.ID,
			Street:  street.String,
			State:   state.String,
			City:    city.String,
			Zipcode: zipcode.String,
		}
	}
	return u, nil
}
