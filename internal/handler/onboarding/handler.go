package onboarding

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/nillow/booking-api/internal/handler"
	"github.com/nillow/booking-api/internal/model"
	"github.com/nillow/booking-api/internal/service/onboarding"
	apperrors "github.com/nillow/booking-api/pkg/errors"
	"github.com/nillow/booking-api/pkg/httputil"
)

type Handler struct {
	service *onboarding.Service
}

func NewHandler(service *onboarding.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	wizard := rg.Group("/onboarding")
	{
		wizard.GET("/steps", h.Steps)
		wizard.GET("/draft", h.Draft)
		wizard.POST("/back", h.Back)
		wizard.POST("/:step", h.Submit)
	}
}

func (h *Handler) Steps(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Steps())
}

func (h *Handler) Draft(c *gin.Context) {
	businessID, err := handler.BusinessID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, h.service.Draft(businessID))
}

func (h *Handler) Submit(c *gin.Context) {
	businessID, err := handler.BusinessID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	step := model.OnboardingStep(c.Param("step"))
	draft, err := h.service.Submit(c.Request.Context(), businessID, step, json.RawMessage(body))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{
		"draft":    draft,
		"progress": h.service.Progress(draft.Step),
	})
}

func (h *Handler) Back(c *gin.Context) {
	businessID, err := handler.BusinessID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	draft, err := h.service.Back(businessID)
	if err != nil {
		if errors.Is(err, onboarding.ErrNoPreviousStep) {
			httputil.RespondWithError(c, apperrors.BadRequest("already at the first step", err))
			return
		}
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{
		"draft":    draft,
		"progress": h.service.Progress(draft.Step),
	})
}
