package appointment

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nillow/booking-api/internal/handler"
	"github.com/nillow/booking-api/internal/model"
	"github.com/nillow/booking-api/internal/service/appointment"
	"github.com/nillow/booking-api/internal/service/business"
	"github.com/nillow/booking-api/internal/service/calendar"
	apperrors "github.com/nillow/booking-api/pkg/errors"
	"github.com/nillow/booking-api/pkg/httputil"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service  *appointment.Service
	business *business.Service
}

func NewHandler(service *appointment.Service, business *business.Service) *Handler {
	return &Handler{service: service, business: business}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	appointments := rg.Group("/appointments")
	{
		appointments.GET("", h.List)
		appointments.GET("/availability", h.Availability)
		appointments.GET("/:id", h.Get)
		appointments.POST("/create", h.Create)
		appointments.POST("/update/:id", h.Update)
		appointments.POST("/:id/status", h.SetStatus)
		appointments.POST("/:id/cancel", h.Cancel)
		appointments.POST("/:id/before_image", h.AttachBeforeImage)
		appointments.POST("/:id/after_image", h.AttachAfterImage)
		appointments.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	businessID, err := handler.BusinessID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request", err))
		return
	}

	apt, err := h.service.Create(c.Request.Context(), businessID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, apt)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	apt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) List(c *gin.Context) {
	businessID, err := handler.BusinessID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	filters := &model.AppointmentFilters{BusinessID: businessID}

	if from := c.Query("from_date"); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid from_date", err))
			return
		}
		filters.FromDate = t
	}
	if to := c.Query("to_date"); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid to_date", err))
			return
		}
		// Inclusive upper bound: cover the whole day.
		filters.ToDate = t.Add(24 * time.Hour)
	}
	if status := c.Query("status"); status != "" {
		filters.Status = model.AppointmentStatus(status)
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid limit", err))
			return
		}
		filters.Limit = n
	}

	appointments, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request", err))
		return
	}

	apt, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) SetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	var req struct {
		Status model.AppointmentStatus `json:"status" binding:"required,oneof=scheduled in_progress completed cancelled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request", err))
		return
	}

	apt, err := h.service.Transition(c.Request.Context(), id, req.Status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	apt, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

type attachImageRequest struct {
	URL string `json:"url" binding:"required,url"`
}

func (h *Handler) AttachBeforeImage(c *gin.Context) {
	h.attachImage(c, h.service.AttachBeforeImage)
}

func (h *Handler) AttachAfterImage(c *gin.Context) {
	h.attachImage(c, h.service.AttachAfterImage)
}

func (h *Handler) attachImage(c *gin.Context, attach func(context.Context, uuid.UUID, string) (*model.Appointment, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	var req attachImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request", err))
		return
	}

	apt, err := attach(c.Request.Context(), id, req.URL)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}

// Availability lists the open slots for one day, derived from business hours,
// disabled-slot rules and existing bookings.
func (h *Handler) Availability(c *gin.Context) {
	businessID, err := handler.BusinessID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid or missing date", err))
		return
	}

	biz, err := h.business.Get(c.Request.Context(), businessID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	settings, err := h.business.GetCalendarSettings(c.Request.Context(), businessID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	dayEnd := date.Add(24 * time.Hour)
	appointments, err := h.service.List(c.Request.Context(), &model.AppointmentFilters{
		BusinessID: businessID,
		FromDate:   date,
		ToDate:     dayEnd,
	})
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	slots := calendar.Availability(date, biz.Hours, settings.DisabledSlots, appointments, settings.SlotDurationMin)
	httputil.RespondWithSuccess(c, gin.H{"date": c.Query("date"), "slots": slots})
}
