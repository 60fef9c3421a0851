package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/nillow/booking-api/internal/model"
	"github.com/nillow/booking-api/internal/service/auth"
	apperrors "github.com/nillow/booking-api/pkg/errors"
	"github.com/nillow/booking-api/pkg/httputil"
)

type Handler struct {
	service *auth.Service

	// sendLimiter throttles code issuance harder than the global limiter.
	sendLimiter gin.HandlerFunc
}

func NewHandler(service *auth.Service, sendLimiter gin.HandlerFunc) *Handler {
	return &Handler{service: service, sendLimiter: sendLimiter}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	if h.sendLimiter != nil {
		rg.POST("/send_token_auth", h.sendLimiter, h.SendToken)
	} else {
		rg.POST("/send_token_auth", h.SendToken)
	}
	rg.POST("/validate_token_auth", h.ValidateToken)
	rg.POST("/refresh_token", h.RefreshToken)
	rg.POST("/check_phone_number_exist", h.CheckPhone)
	rg.POST("/check_username_exist", h.CheckUsername)
}

func (h *Handler) SendToken(c *gin.Context) {
	var req model.SendTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request", err))
		return
	}

	if err := h.service.SendToken(c.Request.Context(), &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"sent": true})
}

func (h *Handler) ValidateToken(c *gin.Context) {
	var req model.ValidateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request", err))
		return
	}

	tokens, err := h.service.ValidateToken(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, tokens)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request", err))
		return
	}

	tokens, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, tokens)
}

func (h *Handler) CheckPhone(c *gin.Context) {
	var req model.CheckPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request", err))
		return
	}

	exists, err := h.service.CheckPhoneExists(c.Request.Context(), req.Phone)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, model.ExistsResponse{Exists: exists})
}

func (h *Handler) CheckUsername(c *gin.Context) {
	var req model.CheckUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request", err))
		return
	}

	exists, err := h.service.CheckUsernameExists(c.Request.Context(), req.Username)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, model.ExistsResponse{Exists: exists})
}
