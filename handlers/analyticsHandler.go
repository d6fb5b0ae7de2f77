package handlers

import (
	"DentaBill/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GetRevenue returns the clinic's revenue report, recomputed per request.
func (h *AnalyticsHandler) GetRevenue(c *gin.Context) {
	report, err := h.service.Revenue(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, report)
}
