package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("ELASTICSEARCH_ADDRS", "")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg := Load()
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.RateLimitActive())
	assert.Empty(t, cfg.ESAddrs())
	assert.Empty(t, cfg.TrustedProxyList())
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/users.db")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("ELASTICSEARCH_ADDRS", "http://es:9200")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")
	t.Setenv("RATE_LIMIT_SKIP_PRIVATE", "true")

	cfg := Load()
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/users.db", cfg.GormDSN())
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.RateLimitActive())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Equal(t, []string{"http://es:9200"}, cfg.ESAddrs())
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxyList())
	assert.True(t, cfg.RateLimitSkipPrivate)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("BCRYPT_COST", "ten")
	t.Setenv("RATE_LIMIT_ENABLED", "maybe")

	cfg := Load()
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.RateLimitEnabled)
}

func TestValidate(t *testing.T) {
	cfg := &Config{DBDriver: "mysql", BcryptCost: 10}
	assert.Error(t, cfg.Validate())

	cfg = &Config{DBDriver: DriverGormPostgres, BcryptCost: 3}
	assert.Error(t, cfg.Validate())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "users", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/users?sslmode=disable", cfg.PostgresDSN())
	assert.Equal(t, cfg.PostgresDSN(), cfg.GormDSN())
}
