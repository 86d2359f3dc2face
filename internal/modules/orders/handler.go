package orders

import (
	"errors"
	"net/http"
	"strconv"

	"funcity/internal/domain"
	"funcity/internal/middleware"
	"funcity/internal/pkg/response"

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
	rg.GET("/orders", h.List)
	rg.GET("/orders/:txnid", h.Get)
}

// location falls back to the token's location hint.
func location(c *gin.Context) string {
	if v := c.Query("location"); v != "" {
		return v
	}
	return c.GetString(middleware.ContextLocation)
}

// List godoc
// @Summary      Order history
// @Tags         Orders
// @Security     BearerAuth
// @Produce      json
// @Param        location query string false "e3 or e4"
// @Param        page query int false "Page"
// @Param        limit query int false "Page size"
// @Success      200 {object} map[string]interface{}
// @Router       /orders [get]
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.service.ListMine(c.Request.Context(), c.GetInt64(middleware.ContextUserID), location(c), page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"orders": items})
}

func (h *Handler) Get(c *gin.Context) {
	o, err := h.service.GetMine(c.Request.Context(), c.GetInt64(middleware.ContextUserID), location(c), c.Param("txnid"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": o})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		response.Error(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
	default:
		h.log.Error("orders_store_failed", zap.Int64("user_id", c.GetInt64(middleware.ContextUserID)), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load orders")
	}
}
