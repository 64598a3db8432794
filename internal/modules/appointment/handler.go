package appointment

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"beautyspa/internal/pkg/response"
)

const maxCancelReasonLength = 500

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	appts := rg.Group("/appointments")
	{
		appts.POST("", h.Create)
		appts.GET("", h.List)
		appts.GET("/today", h.Today)
		appts.GET("/by-staff/:staffId", h.ListByStaff)
		appts.GET("/history/customer/:customerId", h.HistoryByCustomer)
		appts.GET("/history/phone/:phone", h.HistoryByPhone)
		appts.GET("/:id", h.Get)
		appts.PUT("/:id", h.Update)
		appts.PUT("/:id/cancel", h.Cancel)
		appts.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	appt, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, appt)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	appt, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, appt)
}

func (h *Handler) List(c *gin.Context) {
	appts, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, appts)
}

func (h *Handler) ListByStaff(c *gin.Context) {
	staffID, ok := pathID(c, "staffId")
	if !ok {
		return
	}
	appts, err := h.service.ListByStaff(c.Request.Context(), staffID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, appts)
}

func (h *Handler) Today(c *gin.Context) {
	grouped, err := h.service.TodayGrouped(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, grouped)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	appt, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, appt)
}

// Cancel validates the reason at the boundary: the workflow itself assumes a
// well-formed reason.
func (h *Handler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason must not be empty")
		return
	}
	if len([]rune(reason)) > maxCancelReasonLength {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason must not exceed 500 characters")
		return
	}

	appt, err := h.service.Cancel(c.Request.Context(), id, reason)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, appt)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.SoftDelete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) HistoryByCustomer(c *gin.Context) {
	customerID, ok := pathID(c, "customerId")
	if !ok {
		return
	}
	history, err := h.service.HistoryByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, history)
}

func (h *Handler) HistoryByPhone(c *gin.Context) {
	phone := strings.TrimSpace(c.Param("phone"))
	if phone == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Phone number is required")
		return
	}
	history, err := h.service.HistoryByPhone(c.Request.Context(), phone)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, history)
}

func pathID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
