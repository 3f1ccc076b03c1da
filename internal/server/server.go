package server

import (
	"context"
	"net/http"

	"cleanslot/internal/admin"
	"cleanslot/internal/auth"
	"cleanslot/internal/availability"
	"cleanslot/internal/booking"
	"cleanslot/internal/catalog"
	"cleanslot/internal/config"
	"cleanslot/internal/customer"
	"cleanslot/internal/notify"
	"cleanslot/internal/packages"
	"cleanslot/internal/pricing"
	"cleanslot/internal/review"
	"cleanslot/internal/tracking"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, notifier *notify.Queue) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	catalogRepo := catalog.NewRepository(db)
	customerRepo := customer.NewRepository(db)
	availabilityRepo := availability.NewRepository(db)
	settingsRepo := pricing.NewSettingsRepository(db)
	bookingRepo := booking.NewRepository(db)
	reviewRepo := review.NewRepository(db)
	ledger := customer.NewLedger(customerRepo)

	allocator := booking.NewAllocator(
		bookingRepo,
		catalogRepo,
		customerRepo,
		availabilityRepo,
		settingsRepo,
		ledger,
		notifier,
	)

	catalogHandler := catalog.NewHandler(db)
	availabilityHandler := availability.NewHandler(db)
	bookingHandler := booking.NewHandler(allocator)
	customerHandler := customer.NewHandler(db, cfg.JWTSecret)
	reviewHandler := review.NewHandler(review.NewGate(reviewRepo, bookingRepo, ledger), reviewRepo)
	adminHandler := admin.NewHandler(db, cfg.JWTSecret)
	packagesHandler := packages.NewHandler(db)
	trackingHandler := tracking.NewHandler(db, bookingRepo)

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())

	public := router.Group("/api")
	public.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	{
		public.GET("/services", catalogHandler.ListActive)

		public.GET("/availability", availabilityHandler.GetMonth)
		public.GET("/availability/slots", availabilityHandler.GetDaySlots)

		public.POST("/bookings", bookingHandler.Create)
		public.GET("/bookings/check", bookingHandler.CheckByPhone)
		public.PUT("/bookings/:id/cancel", bookingHandler.Cancel)

		public.POST("/customers/register", customerHandler.Register)
		public.POST("/customers/login", customerHandler.Login)
		public.GET("/customers/profile", customerHandler.GetProfile)
		public.PUT("/customers/address", customerHandler.UpdateAddress)

		public.POST("/referral/use", customerHandler.UseReferral)

		public.POST("/reviews", reviewHandler.Submit)
		public.GET("/reviews", reviewHandler.List)
		public.GET("/reviews/stats", reviewHandler.GetStats)

		public.GET("/packages", packagesHandler.ListActive)
		public.POST("/subscriptions", packagesHandler.Subscribe)
		public.GET("/subscriptions", packagesHandler.ListSubscriptions)

		public.POST("/work-photos", trackingHandler.UploadPhoto)
		public.GET("/work-photos/:bookingID", trackingHandler.ListPhotos)
		public.POST("/location/update", trackingHandler.UpdateLocation)
		public.GET("/location/:bookingID", trackingHandler.GetLocation)

		public.POST("/admin/login", adminHandler.Login)
		public.POST("/admin/init", adminHandler.Init)
	}

	authMiddleware := auth.Middleware(cfg.JWTSecret)
	adminOnly := auth.RequireRole(auth.RoleAdmin)
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(authMiddleware, adminOnly)
	{
		adminGroup.GET("/bookings", bookingHandler.AdminList)
		adminGroup.PUT("/bookings/:id", bookingHandler.AdminUpdateStatus)

		adminGroup.GET("/services", catalogHandler.AdminList)
		adminGroup.POST("/services", catalogHandler.AdminCreate)
		adminGroup.PUT("/services/:id", catalogHandler.AdminUpdate)
		adminGroup.DELETE("/services/:id", catalogHandler.AdminDelete)

		adminGroup.GET("/availability", availabilityHandler.AdminGetMonth)
		adminGroup.POST("/availability", availabilityHandler.AdminSetDay)

		adminGroup.GET("/settings", adminHandler.GetSettings)
		adminGroup.PUT("/settings", adminHandler.UpdateSetting)

		adminGroup.GET("/stats", adminHandler.GetStats)
		adminGroup.GET("/customers", customerHandler.AdminList)
		adminGroup.GET("/reviews", reviewHandler.AdminList)

		adminGroup.GET("/packages", packagesHandler.AdminList)
		adminGroup.POST("/packages", packagesHandler.AdminCreate)
		adminGroup.PUT("/packages/:id", packagesHandler.AdminUpdate)
		adminGroup.DELETE("/packages/:id", packagesHandler.AdminDelete)

		adminGroup.PUT("/change-password", adminHandler.ChangePassword)
	}

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
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
