package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RudreshNarwal/skyvern/internal/log"
	"github.com/RudreshNarwal/skyvern/internal/service"
	"github.com/RudreshNarwal/skyvern/pkg/models"
	"github.com/RudreshNarwal/skyvern/pkg/storage"
)

const orgHeader = "X-Organization-ID"

// NewRouter wires the HTTP surface: health plus the observer cruise
// endpoints. The request/response bodies mirror the schema records; no
// run orchestration happens here.
func NewRouter(svc *service.ObserverService) *gin.Engine {
	router := gin.Default()

	router.GET("/health", healthHandler)
	router.POST("/cruises", createCruiseHandler(svc))
	router.GET("/cruises/:id", getCruiseHandler(svc))
	router.GET("/cruises/:id/thoughts", listThoughtsHandler(svc))

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func createCruiseHandler(svc *service.ObserverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CruiseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cruise, err := svc.CreateCruise(c.Request.Context(), organizationID(c), req)
		if err != nil {
			log.GetLogger().Errorf("Failed to create cruise: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, cruise)
	}
}

func getCruiseHandler(svc *service.ObserverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cruise, err := svc.GetCruise(c.Request.Context(), c.Param("id"), organizationID(c))
		if err == storage.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "cruise not found"})
			return
		}
		if err != nil {
			log.GetLogger().Errorf("Failed to get cruise: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cruise)
	}
}

func listThoughtsHandler(svc *service.ObserverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		thoughts, err := svc.ListThoughts(c.Request.Context(), c.Param("id"), organizationID(c))
		if err != nil {
			log.GetLogger().Errorf("Failed to list thoughts: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, thoughts)
	}
}

func organizationID(c *gin.Context) string {
	if org := c.GetHeader(orgHeader); org != "" {
		return org
	}
	return "o_default"
}
