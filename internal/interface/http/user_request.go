package handlers

import (
	"strings"

	"github.com/oksasatya/users-api/internal/application"
)

type createUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
}

func (r *createUserRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
}

func (r createUserRequest) input() application.CreateUserInput {
	return application.CreateUserInput{Name: r.Name, Email: r.Email, Password: r.Password}
}

// updateUserRequest fields are optional; present fields follow the create rules.
type updateUserRequest struct {
	Name     *string `json:"name" validate:"omitnil,min=1"`
	Email    *string `json:"email" validate:"omitnil,email"`
	Password *string `json:"password" validate:"omitnil,pwd"`
}

func (r *updateUserRequest) normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Email != nil {
		email := normalizeEmail(*r.Email)
		r.Email = &email
	}
}

func (r updateUserRequest) input() application.UpdateUserInput {
	return application.UpdateUserInput{Name: r.Name, Email: r.Email, Password: r.Password}
}

// paginationQuery defaults are applied by the service, not here.
type paginationQuery struct {
	Page  *int `form:"page" validate:"omitnil,min=1"`
	Limit *int `form:"limit" validate:"omitnil,min=1,max=100"`
}

func (q paginationQuery) input() application.PaginationInput {
	var in application.PaginationInput
	if q.Page != nil {
		in.Page = *q.Page
	}
	if q.Limit != nil {
		in.Limit = *q.Limit
	}
	return in
}

type searchQuery struct {
	Q    string `form:"q" validate:"required"`
	Size int    `form:"size" validate:"omitempty,min=1,max=50"`
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
