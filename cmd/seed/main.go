package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-api/config"
	"github.com/oksasatya/users-api/internal/application"
	"github.com/oksasatya/users-api/internal/container"
	"github.com/oksasatya/users-api/pkg/apperror"
	"github.com/oksasatya/users-api/pkg/helpers"
)

var demoUsers = []application.CreateUserInput{
	{Name: "Demo User", Email: "demo@example.com", Password: "password123"},
	{Name: "Jane Doe", Email: "jane@example.com", Password: "password123"},
	{Name: "John Doe", Email: "john@example.com", Password: "password123"},
}

// seed inserts the demo users through the service so the same rules apply.
// Users that already exist are skipped, which makes reruns harmless.
func seed(ctx context.Context, svc *application.Service, logger *logrus.Logger) (created, skipped int, err error) {
	for _, in := range demoUsers {
		u, err := svc.Create(ctx, in)
		switch {
		case apperror.IsCode(err, apperror.CodeConflict):
			skipped++
			logger.WithField("email", in.Email).Info("user exists, skipping")
		case err != nil:
			return created, skipped, fmt.Errorf("seed %s: %w", in.Email, err)
		default:
			created++
			logger.WithFields(logrus.Fields{"id": u.ID, "email": u.Email}).Info("seeded user")
		}
	}
	return created, skipped, nil
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialise: %v", err)
	}
	defer c.Close()

	created, skipped, err := seed(ctx, c.Service, logger)
	if err != nil {
		logger.WithError(err).Error("seed failed")
		return
	}
	fmt.Printf("seed done: created=%d skipped=%d password=%s\n", created, skipped, demoUsers[0].Password)
}
