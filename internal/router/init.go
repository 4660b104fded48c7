package router

import (
	"github.com/oksasatya/users-api/internal/container"
	handlers "github.com/oksasatya/users-api/internal/interface/http"
	"github.com/oksasatya/users-api/internal/interface/middleware"
	"github.com/oksasatya/users-api/internal/router/modules"
)

// InitModules wires handlers from the container and adds their modules to the registry.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	var allow middleware.AllowFunc
	if c.Config.RateLimitSkipPrivate {
		allow = middleware.AllowPrivateIP()
	}

	userHandler := handlers.NewUserHandler(c.Service, c.Logger)
	r.Add(modules.NewUserModule(userHandler, c.Redis, c.Config.RateLimitPerMinute, allow))

	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis, allow))
	}
}
