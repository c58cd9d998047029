package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/siddheshp/ems-api-okta/internal/auth"
	"github.com/siddheshp/ems-api-okta/internal/department"
	"github.com/siddheshp/ems-api-okta/internal/employee"
	"github.com/siddheshp/ems-api-okta/internal/messaging/kafka"
	"github.com/siddheshp/ems-api-okta/internal/middleware"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	verifier auth.Verifier,
) {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(employeeRepo, outboxRepo, rdb)
	departmentService := department.NewService(departmentRepo, rdb)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	departmentHandler := department.NewHandler(departmentService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.RequestID())
	api.Use(middleware.ContextLogger(zap.L()))
	api.Use(middleware.RateLimitByIP(rate.Limit(20), 40))
	{
		employee.RegisterRoutes(api, employeeHandler, verifier)
		department.RegisterRoutes(api, departmentHandler)
	}
}
