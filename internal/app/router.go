package app

import (
	"net/http"

	"funcity/internal/config"
	"funcity/internal/middleware"
	"funcity/internal/modules/admin"
	"funcity/internal/modules/booking"
	"funcity/internal/modules/catalog"
	"funcity/internal/modules/checkout"
	"funcity/internal/modules/orders"
	"funcity/internal/modules/payment"
	"funcity/internal/modules/profile"
	"funcity/internal/modules/reconcile"
	"funcity/internal/pkg/jwt"
	"funcity/internal/pkg/mq"
	"funcity/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SlotCache is satisfied by *cache.SlotCache.
type SlotCache interface {
	booking.SlotCache
	checkout.SlotInvalidator
}

type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Log     *zap.Logger
	Tokens  *jwt.Service
	Gateway *payment.Client
	// Slots and Events are optional.
	Slots  SlotCache
	Events mq.EventPublisher
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(d Deps) *gin.Engine {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	events := d.Events
	if events == nil {
		events = mq.Nop{}
	}

	profileRepo := repository.NewProfileRepository(d.DB)
	orderRepo := repository.NewOrderRepository(d.DB)
	ledgerRepo := repository.NewLedgerRepository(d.DB)
	catalogRepo := repository.NewCatalogRepository(d.DB)

	var (
		bookingCache booking.SlotCache
		invalidator  checkout.SlotInvalidator
	)
	if d.Slots != nil {
		bookingCache = d.Slots
		invalidator = d.Slots
	}

	bookingHandler := booking.NewHandler(booking.NewService(orderRepo, bookingCache, log.Named("slots")))
	checkoutHandler := checkout.NewHandler(checkout.NewService(profileRepo, orderRepo, d.Gateway, invalidator, log.Named("checkout")))
	reconcileHandler := reconcile.NewHandler(
		reconcile.NewService(orderRepo, d.Gateway, events, d.Config.App.FrontendURL, log.Named("reconcile")),
		log.Named("reconcile"),
	)
	catalogHandler := catalog.NewHandler(catalog.NewService(catalogRepo), log.Named("catalog"))
	profileHandler := profile.NewHandler(profile.NewService(profileRepo), log.Named("profile"))
	ordersHandler := orders.NewHandler(orders.NewService(orderRepo), log.Named("orders"))
	adminHandler := admin.NewHandler(admin.NewService(ledgerRepo), log.Named("admin"))

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorLogger(log), middleware.CORS(d.Config.HTTP.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limited := middleware.RateLimit(d.Config.HTTP.RateLimitRPS, d.Config.HTTP.RateLimitBurst)

	v1 := r.Group("/api/v1")
	{
		// public
		bookingHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		callbacks := v1.Group("")
		callbacks.Use(limited)
		reconcileHandler.RegisterRoutes(callbacks)

		// protected
		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(d.Tokens))
		{
			profileHandler.RegisterRoutes(protected)
			ordersHandler.RegisterRoutes(protected)

			limitedProtected := protected.Group("")
			limitedProtected.Use(limited)
			checkoutHandler.RegisterRoutes(limitedProtected)
		}

		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.JWTAuth(d.Tokens), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adminGroup)
			catalogHandler.RegisterAdminRoutes(adminGroup)
		}
	}

	return r
}
