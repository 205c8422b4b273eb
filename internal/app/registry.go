package app

import (
	"database/sql"

	"go-vigilancia/internal/attendance"
	"go-vigilancia/internal/guard"
	"go-vigilancia/internal/messaging/kafka"
	"go-vigilancia/internal/middleware"
	"go-vigilancia/internal/planning"
	"go-vigilancia/internal/shift"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	guardRepo := guard.NewRepository(gormDB)
	dayRepo := planning.NewDayRepository(gormDB)
	assignmentRepo := planning.NewAssignmentRepository(gormDB)
	shiftRepo := shift.NewRepository(gormDB)
	fragmentRepo := shift.NewFragmentRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Reconciliation Core ---
	reconciler := planning.NewReconciler(
		dayRepo,
		shift.NewShiftSource(shiftRepo),
		shift.NewFragmentSource(fragmentRepo),
	)

	// --- Services ---
	guardService := guard.NewService(db, guardRepo, rdb)
	planningService := planning.NewService(db, dayRepo, reconciler)
	shiftService := shift.NewServiceWithOutbox(
		db, shiftRepo, fragmentRepo, assignmentRepo, dayRepo, reconciler, outboxRepo,
	)
	matcher := attendance.NewGreedyMatcher(guardRepo, assignmentRepo, shiftRepo)
	attendanceService := attendance.NewServiceWithOutbox(db, matcher, outboxRepo)

	// --- Handlers ---
	guardHandler := guard.NewHandler(guardService)
	planningHandler := planning.NewHandler(planningService)
	shiftHandler := shift.NewHandler(shiftService)
	attendanceHandler := attendance.NewHandler(attendanceService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	api := router.Group("/api/v1")
	{
		guard.RegisterRoutes(api, guardHandler)
		planning.RegisterRoutes(api, planningHandler)
		shift.RegisterRoutes(api, shiftHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rdb)
	}

	return nil
}
