package booking

import (
	"errors"
	"net/http"

	"funcity/internal/domain"
	"funcity/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/slots", h.GetSlots)
	rg.GET("/slots/check", h.CheckSlot)
}

// GetSlots godoc
// @Summary      Hourly slot availability
// @Tags         Slots
// @Produce      json
// @Param        date query string true "YYYY-MM-DD"
// @Param        location query string false "e3 or e4"
// @Success      200 {object} SlotsResponse
// @Failure      400 {object} map[string]interface{}
// @Router       /slots [get]
func (h *Handler) GetSlots(c *gin.Context) {
	var q SlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	resp, err := h.service.GetSlots(c.Request.Context(), q.Date, q.Location)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CheckSlot answers from the baseline pattern only.
func (h *Handler) CheckSlot(c *gin.Context) {
	var q CheckQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	ok, err := h.service.IsAvailable(q.Date, q.StartTime, q.Location)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": ok})
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load slots")
}
