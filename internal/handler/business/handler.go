package business

import (
	"github.com/gin-gonic/gin"

	"github.com/nillow/booking-api/internal/handler"
	"github.com/nillow/booking-api/internal/model"
	"github.com/nillow/booking-api/internal/service/business"
	apperrors "github.com/nillow/booking-api/pkg/errors"
	"github.com/nillow/booking-api/pkg/httputil"
)

type Handler struct {
	service *business.Service
}

func NewHandler(service *business.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/business/me", h.Me)
	rg.GET("/businesses", h.List)
	rg.POST("/business/update", h.Update)
	rg.GET("/business-category", h.ListCategories)
	rg.POST("/business-category", h.CreateCategory)
	rg.GET("/calendar-settings", h.GetCalendarSettings)
	rg.POST("/calendar-settings", h.SaveCalendarSettings)
}

func (h *Handler) Me(c *gin.Context) {
	businessID, err := handler.BusinessID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	biz, err := h.service.Get(c.Request.Context(), businessID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, biz)
}

func (h *Handler) List(c *gin.Context) {
	businesses, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, businesses)
}

func (h *Handler) Update(c *gin.Context) {
	businessID, err := handler.BusinessID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request", err))
		return
	}

	biz, err := h.service.Update(c.Request.Context(), businessID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, biz)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, categories)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request", err))
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, category)
}

func (h *Handler) GetCalendarSettings(c *gin.Context) {
	businessID, err := handler.BusinessID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	settings, err := h.service.GetCalendarSettings(c.Request.Context(), businessID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, settings)
}

func (h *Handler) SaveCalendarSettings(c *gin.Context) {
	businessID, err := handler.BusinessID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var settings model.CalendarSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request", err))
		return
	}
	settings.BusinessID = businessID

	if err := h.service.SaveCalendarSettings(c.Request.Context(), &settings); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, settings)
}
