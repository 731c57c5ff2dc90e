package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pharmflow/pharmflow/internal/config"
	"github.com/pharmflow/pharmflow/pkg/auth"
	"github.com/pharmflow/pharmflow/pkg/metrics"
)

type RouterDeps struct {
	Config     *config.Config
	JWTManager *auth.JWTManager
	Metrics    *metrics.Collector

	Auth       *AuthHandler
	Pharmacies *PharmacyHandler
	Services   *ServiceHandler
	Schedules  *ScheduleHandler
	Bookings   *BookingHandler
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(Observe(deps.Metrics))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Config.App.Name,
			"version": deps.Config.App.Version,
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := router.Group("/api/v1")

	api.POST("/auth/login", deps.Auth.Login)
	api.POST("/auth/refresh", deps.Auth.Refresh)

	authed := api.Group("")
	authed.Use(RequireAuth(deps.JWTManager))
	{
		authed.POST("/auth/password", deps.Auth.ChangePassword)

		authed.GET("/pharmacies", deps.Pharmacies.List)
		authed.GET("/pharmacies/:id", deps.Pharmacies.Get)
		authed.GET("/pharmacies/:id/services", deps.Services.ListByPharmacy)

		authed.GET("/services/:id", deps.Services.Get)
		authed.GET("/services/:id/dates", deps.Services.AvailableDates)
		authed.GET("/services/:id/slots", deps.Services.DaySlots)
		authed.GET("/services/:id/windows", deps.Schedules.ListByService)

		authed.POST("/bookings", deps.Bookings.Create)
		authed.GET("/bookings", deps.Bookings.List)
		authed.GET("/bookings/:id", deps.Bookings.Get)
		authed.PUT("/bookings/:id/reschedule", deps.Bookings.Reschedule)
		authed.POST("/bookings/:id/cancel", deps.Bookings.Cancel)
		authed.POST("/bookings/:id/promote", deps.Bookings.Promote)

		managed := authed.Group("")
		managed.Use(RequireScheduleManager())
		{
			managed.POST("/pharmacies", deps.Pharmacies.Create)
			managed.PUT("/pharmacies/:id", deps.Pharmacies.Update)
			managed.DELETE("/pharmacies/:id", deps.Pharmacies.Delete)

			managed.POST("/services", deps.Services.Create)
			managed.PUT("/services/:id", deps.Services.Update)
			managed.DELETE("/services/:id", deps.Services.Delete)

			managed.POST("/services/:id/windows", deps.Schedules.Create)
			managed.PUT("/windows/:id", deps.Schedules.Update)
			managed.DELETE("/windows/:id", deps.Schedules.Delete)
		}
	}

	return router
}
