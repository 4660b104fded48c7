package gormstore

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/users-api/internal/domain/entity"
	"github.com/oksasatya/users-api/internal/domain/repository"
	"github.com/oksasatya/users-api/pkg/apperror"
)

func setupRepository(t *testing.T) *UserRepository {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	db, err := Open(DriverSQLite, "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewUserRepository(db)
}

func strPtr(s string) *string { return &s }

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "")
	assert.Error(t, err)
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &entity.User{Name: "John Doe", Email: "john@mail.com", Password: "hash"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "john@mail.com", byID.Email)
	assert.Equal(t, "hash", byID.Password)

	byEmail, err := repo.FindByEmail(ctx, "john@mail.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestUserRepository_AbsentIsNil(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	u, err := repo.FindByEmail(ctx, "nobody@mail.com")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = repo.FindByID(ctx, "unknown-id")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = repo.FindByID(ctx, "7b7f8a4e-1c1a-4c44-9f0e-3b5d3f5f2b11")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestAbsentLookupsAreNotLogged(t *testing.T) {
	var buf bytes.Buffer
	db, err := open(DriverSQLite, "file:"+t.Name()+"?mode=memory&cache=shared", newLogger(&buf))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	repo := NewUserRepository(db)

	u, err := repo.FindByEmail(context.Background(), "nobody@mail.com")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.NotContains(t, buf.String(), "record not found")
}

func TestUserRepository_DuplicateEmailIsInternal(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &entity.User{Name: "A", Email: "dup@mail.com", Password: "hash"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &entity.User{Name: "B", Email: "dup@mail.com", Password: "hash"})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInternal))
}

func TestUserRepository_UpdateOnlySuppliedFields(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &entity.User{Name: "John Doe", Email: "john@mail.com", Password: "hash"})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, entity.UserChanges{Name: strPtr("Johnny")})
	require.NoError(t, err)
	assert.Equal(t, "Johnny", updated.Name)
	assert.Equal(t, "john@mail.com", updated.Email)
	assert.Equal(t, "hash", updated.Password)
	assert.Equal(t, created.ID, updated.ID)

	updated, err = repo.Update(ctx, created.ID, entity.UserChanges{Password: strPtr("newhash")})
	require.NoError(t, err)
	assert.Equal(t, "Johnny", updated.Name)
	assert.Equal(t, "newhash", updated.Password)
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	repo := setupRepository(t)

	_, err := repo.Update(context.Background(), "7b7f8a4e-1c1a-4c44-9f0e-3b5d3f5f2b11", entity.UserChanges{Name: strPtr("x")})
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))
}

func TestUserRepository_Delete(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &entity.User{Name: "John Doe", Email: "john@mail.com", Password: "hash"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	u, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, u)

	err = repo.Delete(ctx, created.ID)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))
}

func TestUserRepository_FindAllPaginatesNewestFirst(t *testing.T) {
	repo := setupRepository(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 12; i++ {
		m := UserModel{
			Name:      fmt.Sprintf("user %d", i),
			Email:     fmt.Sprintf("user%d@mail.com", i),
			Password:  "hash",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.db.Create(&m).Error)
	}

	page, err := repo.FindAll(context.Background(), repository.Pagination{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 12, page.Total)
	require.Len(t, page.Users, 5)
	assert.Equal(t, "user11@mail.com", page.Users[0].Email)
	assert.Equal(t, "user7@mail.com", page.Users[4].Email)

	page, err = repo.FindAll(context.Background(), repository.Pagination{Page: 3, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 12, page.Total)
	require.Len(t, page.Users, 2)
	assert.Equal(t, "user1@mail.com", page.Users[0].Email)
	assert.Equal(t, "user0@mail.com", page.Users[1].Email)

	page, err = repo.FindAll(context.Background(), repository.Pagination{})
	require.NoError(t, err)
	assert.Len(t, page.Users, 10)
}

func TestUserRepository_FindAllOutOfRangePage(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()
	_, err := repo.Create(ctx, &entity.User{Name: "A", Email: "a@mail.com", Password: "hash"})
	require.NoError(t, err)

	page, err := repo.FindAll(ctx, repository.Pagination{Page: 1, Limit: math.MaxInt})
	require.NoError(t, err)
	assert.Len(t, page.Users, 1)

	page, err = repo.FindAll(ctx, repository.Pagination{Page: math.MaxInt, Limit: math.MaxInt})
	require.NoError(t, err)
	assert.Empty(t, page.Users)
	assert.Equal(t, 1, page.Total)
}

func TestUserRepository_FindAllFailureIsInternal(t *testing.T) {
	repo := setupRepository(t)
	sqlDB, err := repo.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = repo.FindAll(context.Background(), repository.Pagination{})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInternal))
}
