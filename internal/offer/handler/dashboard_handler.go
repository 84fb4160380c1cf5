package handler

import (
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/service"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Summary GET /dashboard
func (h *DashboardHandler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, sum)
}
