package application

import (
	"time"

	"github.com/oksasatya/users-api/internal/domain/entity"
)

// CreateUserInput is a validated, normalised create request.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput carries only the fields the caller supplied.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

// PaginationInput selects a page; zero values mean page 1 and limit 10.
type PaginationInput struct {
	Page  int
	Limit int
}

// UserResponse is the outward view of a user. It has no password field.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func newUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

type PaginatedResponse[T any] struct {
	Data            []T  `json:"data"`
	Total           int  `json:"total"`
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	TotalPages      int  `json:"totalPages"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// NewPaginatedResponse computes the page metadata for total rows split into pages of limit.
func NewPaginatedResponse[T any](data []T, total, page, limit int) PaginatedResponse[T] {
	totalPages := 0
	if limit > 0 {
		totalPages = total / limit
		if total%limit != 0 {
			totalPages++
		}
	}
	return PaginatedResponse[T]{
		Data:            data,
		Total:           total,
		Page:            page,
		Limit:           limit,
		TotalPages:      totalPages,
		HasPreviousPage: page > 1,
		HasNextPage:     page < totalPages,
	}
}
