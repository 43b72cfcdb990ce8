// Package seed loads the embedded sample users.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jackzampolin/userboard/internal/store"
	"github.com/jackzampolin/userboard/internal/types"
)

//go:embed users.yaml
var usersYAML []byte

type fixture struct {
	Users []types.User `yaml:"users"`
}

// Users returns the sample users in fixture order.
func Users() ([]types.User, error) {
	var f fixture
	if err := yaml.Unmarshal(usersYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to parse users fixture: %w", err)
	}
	return f.Users, nil
}

// Seed inserts the sample users when the users table is empty and
// returns how many were inserted. A populated table is left untouched.
func Seed(ctx context.Context, st *store.Store) (int, error) {
	n, err := st.CountUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	users, err := Users()
	if err != nil {
		return 0, err
	}
	for i, u := range users {
		if _, err := st.CreateUser(ctx, u); err != nil {
			return i, fmt.Errorf("failed to insert user %q: %w", u.Username, err)
		}
	}
	return len(users), nil
}
