package profile

import (
	"errors"
	"net/http"

	"funcity/internal/domain"
	"funcity/internal/middleware"
	"funcity/internal/pkg/response"
	"funcity/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile/me", h.GetMe)
	rg.PUT("/profile/me", h.UpdateMe)
}

// GetMe godoc
// @Summary      Current user's profile
// @Tags         Profile
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /profile/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.GetInt64(middleware.ContextUserID))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profile": p})
}

func (h *Handler) UpdateMe(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid profile", errs)
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.GetInt64(middleware.ContextUserID), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profile": p})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrUserNotFound) {
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "Profile not found")
		return
	}
	h.log.Error("profile_store_failed", zap.Int64("user_id", c.GetInt64(middleware.ContextUserID)), zap.Error(err))
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load profile")
}
