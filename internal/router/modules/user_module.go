package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/users-api/internal/interface/http"
	"github.com/oksasatya/users-api/internal/interface/middleware"
)

// UserModule registers the /users CRUD routes.
// Writes share a per-IP bucket; reads get a per-IP-and-route bucket with twice the budget.
// Allow, when set, exempts matching requests from both limiters.
type UserModule struct {
	Handler   *handlers.UserHandler
	Redis     *redis.Client
	PerMinute int
	Allow     middleware.AllowFunc
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client, perMinute int, allow middleware.AllowFunc) *UserModule {
	return &UserModule{Handler: h, Redis: rdb, PerMinute: perMinute, Allow: allow}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	writeLimiter := middleware.RateLimit(m.Redis, m.PerMinute, time.Minute, middleware.KeyByIP(), m.Allow)
	readLimiter := middleware.RateLimit(m.Redis, 2*m.PerMinute, time.Minute, middleware.KeyByIPAndPath(), m.Allow)

	users := rg.Group("/users")
	{
		users.POST("", writeLimiter, m.Handler.Create)
		users.GET("", readLimiter, m.Handler.FindAll)
		users.GET("/search", readLimiter, m.Handler.Search)
		users.GET("/:id", readLimiter, m.Handler.FindOne)
		users.PATCH("/:id", writeLimiter, m.Handler.Update)
		users.DELETE("/:id", writeLimiter, m.Handler.Delete)
	}
}
