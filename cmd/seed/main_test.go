package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/users-api/config"
	"github.com/oksasatya/users-api/internal/application"
	"github.com/oksasatya/users-api/internal/container"
)

func TestSeedIsRepeatable(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil))
	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: "file:seed_test?mode=memory&cache=shared",
		BcryptCost: 4,
	}
	c, err := container.New(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	ctx := context.Background()
	created, skipped, err := seed(ctx, c.Service, logger)
	require.NoError(t, err)
	assert.Equal(t, len(demoUsers), created)
	assert.Zero(t, skipped)

	created, skipped, err = seed(ctx, c.Service, logger)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Equal(t, len(demoUsers), skipped)

	page, err := c.Service.FindAll(ctx, application.PaginationInput{})
	require.NoError(t, err)
	assert.Equal(t, len(demoUsers), page.Total)
}
