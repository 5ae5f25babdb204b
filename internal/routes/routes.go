package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/veldroid/tattoopro-api/internal/audit"
	"github.com/veldroid/tattoopro-api/internal/config"
	"github.com/veldroid/tattoopro-api/internal/handlers"
	infraRepo "github.com/veldroid/tattoopro-api/internal/infra/repository"
	"github.com/veldroid/tattoopro-api/internal/middleware"
	"github.com/veldroid/tattoopro-api/internal/redislock"
	ucAppointment "github.com/veldroid/tattoopro-api/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, locker redislock.Locker) {

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger())

	// ------------------------------
	// INFRA (SINGLETONS)
	// ------------------------------
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ------------------------------
	// USE CASES
	// ------------------------------
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		locker,
		auditDispatcher,
	)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		locker,
		auditDispatcher,
	)

	// ------------------------------
	// HANDLERS
	// ------------------------------
	tz := cfg.StudioTimezone

	authHandler := handlers.NewAuthHandler(db, cfg)
	clientHandler := handlers.NewClientHandler(db, auditDispatcher)
	masterHandler := handlers.NewMasterHandler(db, auditDispatcher)
	scheduleHandler := handlers.NewScheduleHandler(db, tz, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	appointmentHandler := handlers.NewAppointmentHandler(
		db, tz,
		createAppointmentUC,
		updateAppointmentUC,
		auditDispatcher,
	)
	inventoryHandler := handlers.NewInventoryHandler(db, tz, locker, auditDispatcher)
	statsHandler := handlers.NewStatsHandler(db, tz)
	reportHandler := handlers.NewReportHandler(db, tz)
	exportHandler := handlers.NewExportHandler(db, tz)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH (public)
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// CLIENTS
			secured.GET("/clients", clientHandler.List)
			secured.GET("/clients/problem", clientHandler.Problem)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.POST("/clients", clientHandler.Create)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			// MASTERS
			secured.GET("/masters", masterHandler.List)
			secured.GET("/masters/:id", masterHandler.Get)
			secured.POST("/masters", masterHandler.Create)
			secured.PUT("/masters/:id", masterHandler.Update)
			secured.DELETE("/masters/:id", masterHandler.Delete)

			// SCHEDULES
			secured.GET("/masters/:id/schedule", scheduleHandler.GetWeekly)
			secured.PUT("/masters/:id/schedule", scheduleHandler.PutWeekly)
			secured.GET("/masters/:id/day-availability", scheduleHandler.ListDayAvailability)
			secured.PUT("/masters/:id/day-availability", scheduleHandler.PutDayAvailability)

			// SERVICES
			secured.GET("/services", serviceHandler.List)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.POST("/services", serviceHandler.Create)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			// APPOINTMENTS
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			// INVENTORY
			secured.GET("/inventory", inventoryHandler.List)
			secured.GET("/inventory/low-stock", inventoryHandler.LowStock)
			secured.GET("/inventory/:id", inventoryHandler.Get)
			secured.POST("/inventory", inventoryHandler.Create)
			secured.PUT("/inventory/:id", inventoryHandler.Update)
			secured.DELETE("/inventory/:id", inventoryHandler.Delete)
			secured.GET("/inventory-movements", inventoryHandler.ListMovements)
			secured.POST("/inventory-movements", inventoryHandler.CreateMovement)

			// STATS
			secured.GET("/stats/appointments", statsHandler.Appointments)
			secured.GET("/stats/master-utilization", statsHandler.MasterUtilization)
			secured.GET("/stats/clients-dashboard", statsHandler.ClientsDashboard)
			secured.GET("/stats/owner-dashboard", statsHandler.OwnerDashboard)

			// REPORTS
			secured.GET("/reports/clients", reportHandler.Clients)
			secured.GET("/reports/revenue", reportHandler.Revenue)
			secured.GET("/reports/services", reportHandler.Services)
			secured.GET("/reports/inventory-out", reportHandler.InventoryOut)
			secured.GET("/reports/inventory-out-raw", reportHandler.InventoryOutRaw)

			// EXPORTS
			secured.GET("/export/clients", exportHandler.Clients)
			secured.GET("/export/appointments", exportHandler.Appointments)
			secured.GET("/export/finance", exportHandler.Finance)

			// AUDIT
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
