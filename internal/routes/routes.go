package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/OrinocoLabs01/lab-scheduler/internal/audit"
	"github.com/OrinocoLabs01/lab-scheduler/internal/cache"
	"github.com/OrinocoLabs01/lab-scheduler/internal/config"
	"github.com/OrinocoLabs01/lab-scheduler/internal/handlers"
	infraRepo "github.com/OrinocoLabs01/lab-scheduler/internal/infra/repository"
	"github.com/OrinocoLabs01/lab-scheduler/internal/middleware"
	"github.com/OrinocoLabs01/lab-scheduler/internal/notify"
	ucReminder "github.com/OrinocoLabs01/lab-scheduler/internal/usecase/reminder"
	ucScheduling "github.com/OrinocoLabs01/lab-scheduler/internal/usecase/scheduling"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	redisClient := cache.NewClient(cfg)
	avCache := cache.NewAvailability(redisClient)
	reminderGuard := cache.NewReminderGuard(redisClient)

	emailSender := notify.NewSMTPSender(cfg)

	var chatSender notify.ChatSender
	if streamSender, err := notify.NewStreamSender(cfg); err != nil {
		log.Printf("stream chat disabled: %v", err)
	} else if streamSender != nil {
		chatSender = streamSender
	}

	// ======================================================
	// 🧠 USE CASES — SCHEDULING
	// ======================================================
	createAppointmentUC := ucScheduling.NewCreateAppointment(
		schedulingRepo,
		auditDispatcher,
	)

	confirmAppointmentUC := ucScheduling.NewConfirmAppointment(
		schedulingRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucScheduling.NewCancelAppointment(
		schedulingRepo,
		auditDispatcher,
	)

	rescheduleAppointmentUC := ucScheduling.NewRescheduleAppointment(
		schedulingRepo,
		auditDispatcher,
	)

	blockDayUC := ucScheduling.NewBlockDay(schedulingRepo, auditDispatcher)
	unblockDayUC := ucScheduling.NewUnblockDay(schedulingRepo, auditDispatcher)
	blockSlotUC := ucScheduling.NewBlockSlot(schedulingRepo, auditDispatcher)
	unblockSlotUC := ucScheduling.NewUnblockSlot(schedulingRepo, auditDispatcher)

	sendNextDayUC := ucReminder.NewSendNextDay(
		cfg,
		schedulingRepo,
		emailSender,
		chatSender,
		reminderGuard,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	patientHandler := handlers.NewPatientHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db, avCache)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		avCache,
		createAppointmentUC,
		confirmAppointmentUC,
		cancelAppointmentUC,
		rescheduleAppointmentUC,
	)

	blockingHandler := handlers.NewBlockingHandler(
		db,
		avCache,
		blockDayUC,
		unblockDayUC,
		blockSlotUC,
		unblockSlotUC,
	)

	reminderHandler := handlers.NewReminderHandler(sendNextDayUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/availability/slots", availabilityHandler.Slots)
		api.POST("/appointments", appointmentHandler.Create)
		api.POST("/patients", patientHandler.Create)
		api.GET("/patients/:id", patientHandler.Get)

		// ------------------------------
		// ⏰ JOB DE RECORDATORIOS (secreto compartido)
		// ------------------------------
		api.GET("/reminders/send-next-day", reminderHandler.SendNextDay)
		api.POST("/reminders/send-next-day", reminderHandler.SendNextDay)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA (panel)
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/availability/slots", availabilityHandler.SlotsAdmin)

			admin.POST("/availability/block", blockingHandler.BlockSlot)
			admin.DELETE("/availability/block", blockingHandler.UnblockSlot)
			admin.POST("/availability/block-day", blockingHandler.BlockDay)
			admin.DELETE("/availability/block-day", blockingHandler.UnblockDay)

			admin.GET("/appointments", appointmentHandler.ListByDate)
			admin.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			admin.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			admin.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
