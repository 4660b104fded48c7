package repository

import (
	"context"
	"math"

	"github.com/oksasatya/users-api/internal/domain/entity"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination selects a page of users. Zero values fall back to DefaultPage and DefaultLimit;
// Limit is capped at MaxLimit.
type Pagination struct {
	Page  int
	Limit int
}

// Normalize applies the defaults and the limit cap.
func (p Pagination) Normalize() Pagination {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset is the number of rows skipped before the page starts.
// It saturates at math.MaxInt instead of overflowing for very large pages.
func (p Pagination) Offset() int {
	p = p.Normalize()
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// UserPage is one page of users, newest first, with the total row count.
type UserPage struct {
	Users []*entity.User
	Total int
}

// UserRepository defines the interface for user-related database operations.
// Lookups return (nil, nil) when no row matches; gateway failures are apperror internal errors.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) (*entity.User, error)
	FindAll(ctx context.Context, p Pagination) (*UserPage, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, id string, changes entity.UserChanges) (*entity.User, error)
	Delete(ctx context.Context, id string) error
}
