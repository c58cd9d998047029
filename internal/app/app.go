package app

import (
	"context"
	"errors"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/siddheshp/ems-api-okta/internal/auth"
	"github.com/siddheshp/ems-api-okta/internal/shared/connection"
)

// BuildApp connects the infrastructure and registers all modules and
// routes on the router.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	// Redis is optional; without it the list endpoints just skip the cache.
	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
		logger.Info("redis connection established")
	}

	verifier, err := buildVerifier(context.Background())
	if err != nil {
		return err
	}

	registerModules(router, gormDB, rdb, verifier)

	return nil
}

// buildVerifier freezes the identity-provider configuration at startup.
// A production deployment sets OKTA_ISSUER and OKTA_CLIENT_ID; JWT_SECRET
// selects the HS256 dev verifier instead.
func buildVerifier(ctx context.Context) (auth.Verifier, error) {
	if issuer := os.Getenv("OKTA_ISSUER"); issuer != "" {
		return auth.NewOktaVerifier(ctx, auth.Config{
			Issuer:   issuer,
			ClientID: os.Getenv("OKTA_CLIENT_ID"),
			Audience: os.Getenv("OKTA_AUDIENCE"),
		})
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return auth.NewLocalVerifier(secret)
	}

	return nil, errors.New("app: either OKTA_ISSUER or JWT_SECRET must be set")
}
