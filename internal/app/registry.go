package app

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-payroll/internal/changerequest"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"
	"go-payroll/internal/shared/config"
	"go-payroll/internal/shared/counter"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
) error {
	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	changeRequestRepo := changerequest.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(
		filepath.Join("config", "rbac", "model.conf"),
		filepath.Join("config", "rbac", "policy.csv"),
	)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	employeeService := employee.NewService(gormDB, employeeRepo, counterRepo, rdb)
	payrollService := payroll.NewService(gormDB, payrollRepo, employeeRepo, outboxRepo)
	changeRequestService := changerequest.NewService(
		gormDB, changeRequestRepo, employeeRepo, counterRepo, outboxRepo, rdb,
	)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	payrollHandler := payroll.NewHandler(payrollService)
	changeRequestHandler := changerequest.NewHandler(changeRequestService)

	// --- Global middleware ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(50, 100))

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService, cfg.JWT.Secret)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, cfg.JWT.Secret, rdb)
		changerequest.RegisterRoutes(api, changeRequestHandler, rbacService, cfg.JWT.Secret)
	}

	return nil
}
