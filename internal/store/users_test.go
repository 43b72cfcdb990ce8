package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzampolin/userboard/internal/types"
)

func TestCreateUser_WithAddress(t *testing.T) {
	s := createTestStore(t)
	withClock(s, time.Unix(0, 0))

	u := createTestUser(t, s, "alice", &types.Address{Street: "1 Main St", State: "CA", City: "Oakland", Zipcode: "94607"})
	assert.Equal(t, "id-001", u.ID)
	require.NotNil(t, u.Address)
	assert.Equal(t, "id-002", u.Address.ID)
	assert.Equal(t, u.ID, u.Address.UserID)

	got, err := s.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestCreateUser_WithoutAddress(t *testing.T) {
	s := createTestStore(t)

	u := createTestUser(t, s, "bob", nil)
	got, err := s.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Address)
	assert.Equal(t, "bob@example.com", got.Email)
}

func TestCreateUser_DuplicateID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, types.User{ID: "u1", Name: "a", Username: "a", Email: "a@x"})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, types.User{ID: "u1", Name: "b", Username: "b", Email: "b@x"})
	assert.Error(t, err)
}

func TestGetUser_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountUsers(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	createTestUser(t, s, "alice", nil)
	createTestUser(t, s, "bob", &types.Address{City: "Reno"})

	count, err = s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestListUsers_Pagination(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"erin", "carol", "alice", "dave", "bob"} {
		createTestUser(t, s, name, &types.Address{City: name + "ville"})
	}

	names := func(users []types.User) []string {
		out := make([]string, len(users))
		for i, u := range users {
			out[i] = u.Name
		}
		return out
	}

	first, err := s.ListUsers(ctx, types.Page{Number: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, names(first))
	require.NotNil(t, first[0].Address)
	assert.Equal(t, "aliceville", first[0].Address.City)

	second, err := s.ListUsers(ctx, types.Page{Number: 2, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"carol", "dave"}, names(second))

	last, err := s.ListUsers(ctx, types.Page{Number: 3, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"erin"}, names(last))

	past, err := s.ListUsers(ctx, types.Page{Number: 9, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, past)
	assert.NotNil(t, past)

	all, err := s.ListUsers(ctx, types.Page{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
