package application

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/users-api/internal/domain/entity"
)

func TestNewUserResponseOmitsPassword(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	res := NewUserResponse(&entity.User{ID: "1", Name: "John", Email: "john@mail.com", Password: "hash", CreatedAt: now, UpdatedAt: now})

	b, err := json.Marshal(res)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.NotContains(t, m, "password")
	assert.ElementsMatch(t, []string{"id", "name", "email", "createdAt", "updatedAt"}, keys(m))
}

func TestNewPaginatedResponseEmpty(t *testing.T) {
	res := NewPaginatedResponse([]UserResponse{}, 0, 1, 10)
	assert.Equal(t, 0, res.TotalPages)
	assert.False(t, res.HasNextPage)
	assert.False(t, res.HasPreviousPage)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestNewPaginatedResponseHugeLimit(t *testing.T) {
	res := NewPaginatedResponse([]UserResponse{}, 2, 1, math.MaxInt)
	assert.Equal(t, 1, res.TotalPages)
	assert.False(t, res.HasNextPage)

	res = NewPaginatedResponse([]UserResponse{}, 10, 1, 5)
	assert.Equal(t, 2, res.TotalPages)
	res = NewPaginatedResponse([]UserResponse{}, 11, 1, 5)
	assert.Equal(t, 3, res.TotalPages)
}
