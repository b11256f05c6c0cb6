package handler

import (
	"Inkpost/internal/pkg/response"
	"Inkpost/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsSvc service.AnalyticsService
}

func NewAnalyticsHandler(analyticsSvc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

func (s *AnalyticsHandler) Blog(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := s.analyticsSvc.BlogAnalytics(c.Request.Context(), currentUser(c), id, queryDays(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

func (s *AnalyticsHandler) Dashboard(c *gin.Context) {
	out, err := s.analyticsSvc.Dashboard(c.Request.Context(), currentUser(c), queryDays(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}
