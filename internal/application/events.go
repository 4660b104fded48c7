package application

import (
	"context"
	"time"

	"github.com/oksasatya/users-api/internal/domain/entity"
)

const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// UserEvent is the JSON payload published after a user changes.
type UserEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher delivers lifecycle events, e.g. to a RabbitMQ queue.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// SearchIndex keeps a searchable copy of users, e.g. in Elasticsearch.
type SearchIndex interface {
	Index(ctx context.Context, u *entity.User) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]*entity.User, error)
}

// PasswordHasher turns a plaintext password into a one-way hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}
