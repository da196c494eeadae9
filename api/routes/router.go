// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soumith2105/atomic-ticket-booking/internal/bookings"
	"github.com/soumith2105/atomic-ticket-booking/internal/events"
	"github.com/soumith2105/atomic-ticket-booking/internal/invalidation"
	"github.com/soumith2105/atomic-ticket-booking/internal/locks"
	"github.com/soumith2105/atomic-ticket-booking/internal/seats"
	"github.com/soumith2105/atomic-ticket-booking/internal/shared/config"
	"github.com/soumith2105/atomic-ticket-booking/internal/shared/database"
	"github.com/soumith2105/atomic-ticket-booking/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config      *config.Config
	db          *database.DB
	registry    locks.Registry
	broadcaster *invalidation.Broadcaster
	cacheSvc    cache.Service
}

// NewRouter creates a new router instance. The registry and broadcaster
// are constructed in main so their lifecycles (script preload, reaper,
// producer shutdown) stay with the process, not the route table.
func NewRouter(cfg *config.Config, db *database.DB, registry locks.Registry, broadcaster *invalidation.Broadcaster) *Router {
	return &Router{
		config:      cfg,
		db:          db,
		registry:    registry,
		broadcaster: broadcaster,
		cacheSvc:    cache.NewService(db.GetRedisClient()),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupLockRoutes(api)
		r.setupBookingRoutes(api)
		r.setupEventRoutes(api)
		r.setupSeatRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "ticketing-core",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "ticketing-core",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupLockRoutes configures the seat lock operation surface
func (r *Router) setupLockRoutes(rg *gin.RouterGroup) {
	lockService := locks.NewService(r.registry)
	lockController := locks.NewController(lockService)

	locks.SetupLockRoutes(rg, lockController)
}

// setupBookingRoutes configures the booking commit pipeline routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL(), r.config.Database.QueryTimeout)
	bookingService := bookings.NewService(bookingRepo, r.registry, r.broadcaster)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupEventRoutes configures event browsing routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo)
	eventService.SetCacheService(r.cacheSvc)
	eventController := events.NewController(eventService)

	events.SetupEventRoutes(rg, eventController)
}

// setupSeatRoutes configures seat availability routes
func (r *Router) setupSeatRoutes(rg *gin.RouterGroup) {
	seatRepo := seats.NewRepository(r.db.GetPostgreSQL())
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	seatService := seats.NewService(seatRepo, eventRepo, r.registry)
	seatService.SetCacheService(r.cacheSvc)
	seatController := seats.NewController(seatService)

	seats.SetupSeatRoutes(rg, seatController)
}
