package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/go-redis/redis/v8"

	"github.com/idolyst/mentorship-api/internal/config"
	"github.com/idolyst/mentorship-api/internal/handlers"
	infraRepo "github.com/idolyst/mentorship-api/internal/infra/repository"
	"github.com/idolyst/mentorship-api/internal/middleware"
	"github.com/idolyst/mentorship-api/internal/notify"
	"github.com/idolyst/mentorship-api/internal/payment"
	ucSession "github.com/idolyst/mentorship-api/internal/usecase/session"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	redisClient *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	sessionRepo := infraRepo.NewSessionGormRepository(db)

	publisher := notify.NewRedisPublisher(redisClient)
	notifier := notify.NewDispatcher(
		log,
		notify.NewActivityLogger(db),
		publisher,
	)

	gateway := payment.NewProviderGateway(cfg, log)

	// ======================================================
	// USE CASES — SESSIONS
	// ======================================================
	bookSessionUC := ucSession.NewBookSession(
		sessionRepo,
		gateway,
		notifier,
	)

	updateStatusUC := ucSession.NewUpdateSessionStatus(
		sessionRepo,
		notifier,
	)

	rescheduleUC := ucSession.NewRescheduleSession(
		sessionRepo,
		notifier,
	)

	listSessionsUC := ucSession.NewListSessions(sessionRepo)

	getSessionUC := ucSession.NewGetSession(sessionRepo)

	getAvailabilityUC := ucSession.NewGetAvailability(sessionRepo)

	reconcilePaymentUC := ucSession.NewReconcilePayment(
		sessionRepo,
		notifier,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	profileHandler := handlers.NewProfileHandler(db)

	sessionTypeHandler := handlers.NewSessionTypeHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db)

	sessionHandler := handlers.NewSessionHandler(
		bookSessionUC,
		updateStatusUC,
		rescheduleUC,
		listSessionsUC,
		getSessionUC,
	)

	paymentHandler := handlers.NewPaymentHandler(gateway, reconcilePaymentUC, log)
	publicHandler := handlers.NewPublicHandler(db, getAvailabilityUC)
	eventsHandler := handlers.NewEventsHandler(publisher)

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
			publicAPI.GET("/mentors/:id/session-types", publicHandler.ListSessionTypes)
			publicAPI.GET("/mentors/:id/availability", publicHandler.Availability)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// WEBHOOKS (signature-verified)
		// ------------------------------
		api.POST("/payments/razorpay/webhook", paymentHandler.RazorpayWebhook)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", profileHandler.GetMe)

			secured.GET("/me/session-types", sessionTypeHandler.List)
			secured.POST("/me/session-types", sessionTypeHandler.Create)
			secured.PATCH("/me/session-types/:id", sessionTypeHandler.Update)
			secured.DELETE("/me/session-types/:id", sessionTypeHandler.Delete)

			secured.GET("/me/availability", availabilityHandler.List)
			secured.POST("/me/availability", availabilityHandler.Create)
			secured.DELETE("/me/availability/:id", availabilityHandler.Delete)

			// ------------------------------
			// SESSIONS
			// ------------------------------
			secured.POST("/sessions", sessionHandler.Book)
			secured.GET("/sessions", sessionHandler.List)
			secured.GET("/sessions/events", eventsHandler.Stream)
			secured.GET("/sessions/:id", sessionHandler.Get)
			secured.PATCH("/sessions/:id/start", sessionHandler.Start)
			secured.PATCH("/sessions/:id/complete", sessionHandler.Complete)
			secured.PATCH("/sessions/:id/cancel", sessionHandler.Cancel)
			secured.PATCH("/sessions/:id/reschedule", sessionHandler.Reschedule)
			secured.PATCH("/sessions/:id/meeting-link", sessionHandler.SetMeetingLink)
			secured.PATCH("/sessions/:id/notes", sessionHandler.SetNotes)

			// ------------------------------
			// PAYMENTS
			// ------------------------------
			secured.POST("/payments/orders", paymentHandler.CreateOrder)
			secured.POST("/payments/paypal/capture", paymentHandler.CapturePayPal)
		}
	}
}
