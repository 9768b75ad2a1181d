package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	healthStatusOK        = "ok"
	healthStatusUnhealthy = "unhealthy"
)

type HealthChecker interface {
	Health() error
}

// HealthFunc adapts a plain function to HealthChecker.
type HealthFunc func() error

func (f HealthFunc) Health() error { return f() }

// RegisterRoutes mounts the marketplace API. Metrics are served from gatherer
// so the handler reports exactly the registry the service counters live in.
func RegisterRoutes(router *gin.Engine, handler *Handler, gatherer prometheus.Gatherer, checkers ...HealthChecker) {
	router.GET("/listings", handler.SearchListings)
	router.POST("/listings", handler.CreateListing)
	router.GET("/listings/:id", handler.GetListing)
	router.DELETE("/listings/:id", handler.DeleteListing)
	router.POST("/listings/:id/contact", handler.ContactVendor)
	router.PATCH("/contacts/:id", handler.UpdateContactStatus)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	router.GET("/healthz", func(c *gin.Context) {
		for _, checker := range checkers {
			if err := checker.Health(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": healthStatusUnhealthy})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": healthStatusOK})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
