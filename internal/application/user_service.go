package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-api/internal/domain/entity"
	repo "github.com/oksasatya/users-api/internal/domain/repository"
	"github.com/oksasatya/users-api/pkg/apperror"
	"github.com/oksasatya/users-api/pkg/helpers"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

var (
	ErrUserAlreadyExists = apperror.Conflict("user already exists")
	ErrEmailInUse        = apperror.Conflict("email already in use")
	ErrUserNotFound      = apperror.NotFound("user not found")
)

// Service holds the user business rules. Index and Events are optional.
type Service struct {
	Repo   repo.UserRepository
	Hasher PasswordHasher
	Index  SearchIndex
	Events EventPublisher
	Logger *logrus.Logger
}

func NewService(repo repo.UserRepository, hasher PasswordHasher, index SearchIndex, events EventPublisher, logger *logrus.Logger) *Service {
	return &Service{
		Repo:   repo,
		Hasher: hasher,
		Index:  index,
		Events: events,
		Logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, in CreateUserInput) (*UserResponse, error) {
	existing, err := s.Repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, apperror.Internal(err, "failed to hash password")
	}

	u, err := s.Repo.Create(ctx, &entity.User{Name: in.Name, Email: in.Email, Password: hash})
	if err != nil {
		return nil, err
	}

	s.indexUser(ctx, u)
	s.publish(ctx, EventUserCreated, u)
	res := NewUserResponse(u)
	return &res, nil
}

func (s *Service) FindAll(ctx context.Context, in PaginationInput) (*PaginatedResponse[UserResponse], error) {
	p := repo.Pagination{Page: in.Page, Limit: in.Limit}.Normalize()

	page, err := s.Repo.FindAll(ctx, p)
	if err != nil {
		return nil, err
	}

	res := NewPaginatedResponse(newUserResponses(page.Users), page.Total, p.Page, p.Limit)
	return &res, nil
}

func (s *Service) FindOne(ctx context.Context, id string) (*UserResponse, error) {
	u, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	res := NewUserResponse(u)
	return &res, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateUserInput) (*UserResponse, error) {
	u, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != u.Email {
		holder, err := s.Repo.FindByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if holder != nil && holder.ID != u.ID {
			return nil, ErrEmailInUse
		}
	}

	changes := entity.UserChanges{Name: in.Name, Email: in.Email}
	if in.Password != nil {
		hash, err := s.Hasher.Hash(*in.Password)
		if err != nil {
			return nil, apperror.Internal(err, "failed to hash password")
		}
		changes.Password = &hash
	}

	updated, err := s.Repo.Update(ctx, u.ID, changes)
	if err != nil {
		return nil, err
	}

	s.indexUser(ctx, updated)
	s.publish(ctx, EventUserUpdated, updated)
	res := NewUserResponse(updated)
	return &res, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	u, err := s.findExisting(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, u.ID); err != nil {
		return err
	}

	if s.Index != nil {
		if err := s.Index.Remove(ctx, u.ID); err != nil {
			helpers.LogWarn(s.Logger, "search index remove failed", err, logrus.Fields{"user_id": u.ID})
		}
	}
	s.publish(ctx, EventUserDeleted, u)
	return nil
}

// Search looks users up by name or email through the search index.
func (s *Service) Search(ctx context.Context, q string, size int) ([]UserResponse, error) {
	q = strings.TrimSpace(q)
	if s.Index == nil || q == "" {
		return []UserResponse{}, nil
	}
	if size <= 0 {
		size = defaultSearchSize
	}
	if size > maxSearchSize {
		size = maxSearchSize
	}
	users, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, apperror.Internal(err, "failed to search users")
	}
	return newUserResponses(users), nil
}

func (s *Service) findExisting(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *Service) indexUser(ctx context.Context, u *entity.User) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, u); err != nil {
		helpers.LogWarn(s.Logger, "search index failed", err, logrus.Fields{"user_id": u.ID})
	}
}

func (s *Service) publish(ctx context.Context, eventType string, u *entity.User) {
	if s.Events == nil {
		return
	}
	evt := UserEvent{Type: eventType, UserID: u.ID, Email: u.Email, OccurredAt: time.Now().UTC()}
	if err := s.Events.PublishJSON(ctx, evt); err != nil {
		helpers.LogWarn(s.Logger, "publish user event failed", err, logrus.Fields{"user_id": u.ID, "event": eventType})
	}
}
