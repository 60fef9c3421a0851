package customer

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nillow/booking-api/internal/handler"
	"github.com/nillow/booking-api/internal/model"
	"github.com/nillow/booking-api/internal/service/customer"
	apperrors "github.com/nillow/booking-api/pkg/errors"
	"github.com/nillow/booking-api/pkg/httputil"
)

type Handler struct {
	directory customer.Directory
}

func NewHandler(directory customer.Directory) *Handler {
	return &Handler{directory: directory}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/customers", h.Search)
	rg.GET("/customers/:id", h.Get)
	rg.POST("/customers", h.Create)
}

func (h *Handler) Search(c *gin.Context) {
	businessID, err := handler.BusinessID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	customers, err := h.directory.Search(c.Request.Context(), businessID, c.Query("query"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, customers)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid customer ID", err))
		return
	}

	cust, err := h.directory.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, cust)
}

func (h *Handler) Create(c *gin.Context) {
	businessID, err := handler.BusinessID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request", err))
		return
	}

	cust, err := h.directory.Create(c.Request.Context(), businessID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, cust)
}
