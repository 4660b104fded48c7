package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/oksasatya/users-api/internal/domain/entity"
	"github.com/oksasatya/users-api/internal/domain/repository"
	"github.com/oksasatya/users-api/pkg/apperror"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	m := UserModel{Name: u.Name, Email: u.Email, Password: u.Password}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, apperror.Internal(err, "failed to create user")
	}
	return m.toEntity(), nil
}

func (r *UserRepository) FindAll(ctx context.Context, p repository.Pagination) (*repository.UserPage, error) {
	p = p.Normalize()

	var (
		models []UserModel
		total  int64
		g      errgroup.Group
	)
	g.Go(func() error {
		err := r.db.WithContext(ctx).
			Order("created_at DESC").
			Offset(p.Offset()).
			Limit(p.Limit).
			Find(&models).Error
		if err != nil {
			return apperror.Internal(err, "failed to fetch users")
		}
		return nil
	})
	g.Go(func() error {
		if err := r.db.WithContext(ctx).Model(&UserModel{}).Count(&total).Error; err != nil {
			return apperror.Internal(err, "failed to fetch total")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0, len(models))
	for i := range models {
		users = append(users, models[i].toEntity())
	}
	return &repository.UserPage{Users: users, Total: int(total)}, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Internal(err, "failed to fetch user")
	}
	return m.toEntity(), nil
}

func (r *UserRepository) Update(ctx context.Context, id string, changes entity.UserChanges) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.NotFound("user not found")
	}

	fields := map[string]any{"updated_at": time.Now()}
	if changes.Name != nil {
		fields["name"] = *changes.Name
	}
	if changes.Email != nil {
		fields["email"] = *changes.Email
	}
	if changes.Password != nil {
		fields["password"] = *changes.Password
	}

	res := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, apperror.Internal(res.Error, "failed to update user")
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound("user not found")
	}

	u, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.NotFound("user not found")
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NotFound("user not found")
	}
	res := r.db.WithContext(ctx).Delete(&UserModel{}, "id = ?", id)
	if res.Error != nil {
		return apperror.Internal(res.Error, "failed to delete user")
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("user not found")
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
