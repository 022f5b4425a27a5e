package app

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-payroll/internal/shared/config"
	"go-payroll/internal/shared/connection"
)

// BuildApp connects the infrastructure and registers every module on the
// router. It returns the loaded config so the caller can start the server.
func BuildApp(router *gin.Engine) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
		5,
	)
	if err != nil {
		return nil, err
	}
	zap.L().Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.Password, 5)
	if err != nil {
		// The API degrades gracefully without redis: caches and idempotency
		// checks are skipped.
		zap.L().Warn("redis unavailable, continuing without cache", zap.Error(err))
		redisClient = nil
	} else {
		zap.L().Info("redis connection established")
	}

	if err := registerModules(router, gormDB, redisClient, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
