package stats

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"beautyspa/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	st := rg.Group("/stats")
	{
		st.GET("/customer/:customerId", h.CustomerStats)
		st.GET("/customer/:customerId/summary", h.CustomerSummary)
		st.GET("/dashboard", h.Dashboard)
	}
}

func (h *Handler) CustomerStats(c *gin.Context) {
	customerID, ok := customerParam(c)
	if !ok {
		return
	}
	stats, err := h.service.GetCustomerStats(c.Request.Context(), customerID)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load customer stats")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) CustomerSummary(c *gin.Context) {
	customerID, ok := customerParam(c)
	if !ok {
		return
	}
	summary, err := h.service.GetCustomerSummary(c.Request.Context(), customerID)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load customer summary")
		return
	}
	response.Success(c, http.StatusOK, summary)
}

func (h *Handler) Dashboard(c *gin.Context) {
	overview, err := h.service.GetDashboardOverview(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dashboard overview")
		return
	}
	response.Success(c, http.StatusOK, overview)
}

func customerParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("customerId"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid customer id")
		return 0, false
	}
	return id, true
}
