package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AshifurNahid/driving-school-api/internal/audit"
	"github.com/AshifurNahid/driving-school-api/internal/cache"
	"github.com/AshifurNahid/driving-school-api/internal/config"
	"github.com/AshifurNahid/driving-school-api/internal/handlers"
	infraRepo "github.com/AshifurNahid/driving-school-api/internal/infra/repository"
	"github.com/AshifurNahid/driving-school-api/internal/middleware"
	"github.com/AshifurNahid/driving-school-api/internal/payment"
	"github.com/AshifurNahid/driving-school-api/internal/storage"
	ucBooking "github.com/AshifurNahid/driving-school-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	slotCache := cache.NewSlotCache(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	uploader := storage.NewUploader(cfg)

	paymentClient, err := payment.NewClient(cfg)
	if err != nil {
		log.Fatalf("failed to init payment client: %v", err)
	}
	if !paymentClient.Enabled() {
		log.Println("payments disabled: MP_ACCESS_TOKEN not set")
	}

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	listSlotsUC := ucBooking.NewGetAvailableSlots(bookingRepo, slotCache)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
		slotCache,
		cfg.DefaultSlotPrice,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
		slotCache,
	)

	bulkCreateSlotsUC := ucBooking.NewBulkCreateSlots(
		bookingRepo,
		auditDispatcher,
		slotCache,
	)

	assignInstructorUC := ucBooking.NewAssignInstructor(
		bookingRepo,
		auditDispatcher,
		slotCache,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		listSlotsUC,
		createBookingUC,
		cancelBookingUC,
	)

	slotHandler := handlers.NewSlotHandler(
		db,
		auditDispatcher,
		slotCache,
		listSlotsUC,
		bulkCreateSlotsUC,
		assignInstructorUC,
	)

	courseHandler := handlers.NewCourseHandler(db, auditDispatcher, uploader)
	instructorHandler := handlers.NewInstructorHandler(db, auditDispatcher)
	paymentHandler := handlers.NewPaymentHandler(db, auditDispatcher, paymentClient)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/courses", courseHandler.List)
			publicAPI.GET("/courses/:id", courseHandler.Get)

			publicAPI.GET("/appointment-slots", bookingHandler.ListAvailableSlots)
			publicAPI.POST("/course-bookings", bookingHandler.CreateGuest)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE (learner)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdatePermitProfile)
			secured.GET("/me/enrollments", meHandler.ListEnrollments)
			secured.GET("/me/bookings", meHandler.ListBookings)

			secured.POST("/course-bookings", bookingHandler.Create)
			secured.PATCH("/course-bookings/:id/cancel", bookingHandler.Cancel)

			secured.POST("/courses/:id/checkout", paymentHandler.Checkout)
			secured.POST("/payments/confirm", paymentHandler.Confirm)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/appointment-slots", slotHandler.ListByDate)
				admin.POST("/appointment-slots", slotHandler.Create)
				admin.POST("/appointment-slots/bulk", slotHandler.BulkCreate)
				admin.PUT("/appointment-slots/:id", slotHandler.Update)
				admin.DELETE("/appointment-slots/:id", slotHandler.SoftDelete)
				admin.PUT("/appointment-slots/:id/assign", slotHandler.AssignInstructor)

				admin.GET("/instructors", instructorHandler.List)
				admin.POST("/instructors", instructorHandler.Create)

				admin.POST("/courses", courseHandler.Create)
				admin.PATCH("/courses/:id", courseHandler.Update)
				admin.POST("/courses/:id/thumbnail", courseHandler.UploadThumbnail)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
