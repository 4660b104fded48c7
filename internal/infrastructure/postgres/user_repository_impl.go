package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/users-api/internal/domain/entity"
	"github.com/oksasatya/users-api/internal/domain/repository"
	"github.com/oksasatya/users-api/pkg/apperror"
)

const userColumns = `id, name, email, password, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns, u.Name, u.Email, u.Password)

	created, err := scanUser(row)
	if err != nil {
		return nil, apperror.Internal(err, "failed to create user")
	}
	return created, nil
}

// FindAll reads the page and the total count concurrently. Both queries always run to completion.
func (r *UserRepository) FindAll(ctx context.Context, p repository.Pagination) (*repository.UserPage, error) {
	p = p.Normalize()

	var (
		users []*entity.User
		total int
		g     errgroup.Group
	)
	g.Go(func() error {
		rows, err := r.pool.Query(ctx, `
			SELECT `+userColumns+`
			FROM users
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2
		`, p.Limit, p.Offset())
		if err != nil {
			return apperror.Internal(err, "failed to fetch users")
		}
		defer rows.Close()

		var page []*entity.User
		for rows.Next() {
			u, err := scanUser(rows)
			if err != nil {
				return apperror.Internal(err, "failed to fetch users")
			}
			page = append(page, u)
		}
		if err := rows.Err(); err != nil {
			return apperror.Internal(err, "failed to fetch users")
		}
		users = page
		return nil
	})
	g.Go(func() error {
		if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
			return apperror.Internal(err, "failed to fetch total")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &repository.UserPage{Users: users, Total: total}, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	// ids are uuids; anything else cannot match a row
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users `+where, arg)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err, "failed to fetch user")
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, changes entity.UserChanges) (*entity.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.NotFound("user not found")
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET name = COALESCE($1, name),
		    email = COALESCE($2, email),
		    password = COALESCE($3, password),
		    updated_at = now()
		WHERE id = $4
		RETURNING `+userColumns, changes.Name, changes.Email, changes.Password, id)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, apperror.Internal(err, "failed to update user")
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NotFound("user not found")
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return apperror.Internal(err, "failed to delete user")
	}
	if res.RowsAffected() == 0 {
		return apperror.NotFound("user not found")
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
