package server

import (
	"context"
	"net/http"

	"gymlite/internal/auth"
	"gymlite/internal/class"
	"gymlite/internal/config"
	"gymlite/internal/email"
	"gymlite/internal/member"
	"gymlite/internal/payment"
	"gymlite/internal/plan"
	"gymlite/internal/reporting"
	"gymlite/internal/reservation"
	"gymlite/internal/subscription"
	"gymlite/internal/trainer"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
	httpd  *http.Server
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	authHandler := auth.NewHandler(db, cfg.JWTSecret)
	memberHandler := member.NewHandler(member.NewService(member.NewRepository(db)))
	planHandler := plan.NewHandler(db)
	trainerHandler := trainer.NewHandler(db)
	classHandler := class.NewHandler(class.NewService(class.NewRepository(db)))
	subscriptionHandler := subscription.NewHandler(db, emailService)
	paymentHandler := payment.NewHandler(db, emailService)
	reservationHandler := reservation.NewHandler(reservation.NewRepository(db), emailService)
	dashboardHandler := reporting.NewHandler(db)

	public := router.Group("/auth")
	{
		public.POST("/login", authHandler.Login)
		public.POST("/refresh", authHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/members", memberHandler.List)
		protected.GET("/members/search", memberHandler.Search)
		protected.GET("/members/:memberID", memberHandler.Get)
		protected.GET("/members/:memberID/subscriptions", subscriptionHandler.ListByMember)
		protected.GET("/members/:memberID/subscriptions/active", subscriptionHandler.Active)
		protected.GET("/members/:memberID/reservations", reservationHandler.ListByMember)

		protected.GET("/plans", planHandler.List)
		protected.GET("/trainers", trainerHandler.List)
		protected.GET("/class-types", classHandler.ListTypes)
		protected.GET("/sessions", classHandler.ListSessions)
		protected.GET("/sessions/:sessionID", classHandler.GetSession)
		protected.GET("/sessions/:sessionID/reservations", reservationHandler.ListBySession)

		protected.GET("/payments", paymentHandler.History)

		protected.GET("/dashboard/summary", dashboardHandler.Summary)
		protected.GET("/dashboard/expiring", dashboardHandler.Expiring)
		protected.GET("/dashboard/low-seats", dashboardHandler.LowSeats)
		protected.GET("/dashboard/session-types", dashboardHandler.SessionTypes)
		protected.GET("/dashboard/payment-methods", dashboardHandler.PaymentMethods)
		protected.GET("/dashboard/reservations-week", dashboardHandler.ReservationsWeek)
	}

	// Writes need at least editor rights; viewers stay read-only.
	editor := router.Group("/")
	editor.Use(authMiddleware, auth.RequireRole("editor"))
	{
		editor.POST("/members", memberHandler.Register)
		editor.PUT("/members/:memberID", memberHandler.Update)
		editor.DELETE("/members/:memberID", memberHandler.Deactivate)

		editor.POST("/subscriptions", subscriptionHandler.Create)
		editor.POST("/subscriptions/:subscriptionID/cancel", subscriptionHandler.Cancel)
		editor.POST("/payments", paymentHandler.Record)

		editor.POST("/sessions/:sessionID/reserve", reservationHandler.Reserve)
		editor.POST("/reservations/:reservationID/cancel", reservationHandler.Cancel)
		editor.PATCH("/reservations/:reservationID/attendance", reservationHandler.MarkAttendance)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole("admin"))
	{
		admin.POST("/plans", planHandler.Create)
		admin.POST("/trainers", trainerHandler.Create)
		admin.DELETE("/trainers/:trainerID", trainerHandler.Delete)
		admin.POST("/class-types", classHandler.CreateType)
		admin.DELETE("/class-types/:typeID", classHandler.DeleteType)
		admin.POST("/sessions", classHandler.CreateSession)
		admin.POST("/subscriptions/reconcile", subscriptionHandler.Reconcile)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.httpd = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpd.ListenAndServe()
}

// Shutdown stops accepting new connections and waits for in-flight
// requests to finish, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpd == nil {
		return nil
	}
	return s.httpd.Shutdown(ctx)
}

// Router exposes the engine for tests and custom http.Server setups.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
