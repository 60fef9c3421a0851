package image

import (
	"github.com/gin-gonic/gin"

	"github.com/nillow/booking-api/internal/handler"
	"github.com/nillow/booking-api/internal/service/image"
	apperrors "github.com/nillow/booking-api/pkg/errors"
	"github.com/nillow/booking-api/pkg/httputil"
)

type Handler struct {
	service *image.Service
}

func NewHandler(service *image.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/images/multiple", h.UploadMultiple)
}

func (h *Handler) UploadMultiple(c *gin.Context) {
	businessID, err := handler.BusinessID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid multipart form", err))
		return
	}

	files := form.File["images"]
	images, err := h.service.UploadMultiple(c.Request.Context(), businessID, files)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, images)
}
