package catalog

import (
	"errors"
	"net/http"

	"funcity/internal/domain"
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
	rg.GET("/catalog/rides", h.ListRides)
	rg.GET("/catalog/dine", h.ListDineItems)
}

// RegisterAdminRoutes expects rg to be behind JWTAuth and AdminOnly.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/catalog/rides", h.CreateRide)
	rg.POST("/catalog/dine", h.CreateDineItem)
}

/* ---------- RIDES ---------- */

// ListRides godoc
// @Summary      Active rides at a location
// @Tags         Catalog
// @Produce      json
// @Param        location query string false "e3 or e4"
// @Success      200 {object} map[string]interface{}
// @Router       /catalog/rides [get]
func (h *Handler) ListRides(c *gin.Context) {
	rides, err := h.service.ListRides(c.Request.Context(), c.Query("location"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rides": rides})
}

func (h *Handler) CreateRide(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ride", errs)
		return
	}

	ride, err := h.service.CreateRide(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"ride": ride})
}

/* ---------- DINE ---------- */

// ListDineItems godoc
// @Summary      Active dine menu at a location
// @Tags         Catalog
// @Produce      json
// @Param        location query string false "e3 or e4"
// @Success      200 {object} map[string]interface{}
// @Router       /catalog/dine [get]
func (h *Handler) ListDineItems(c *gin.Context) {
	items, err := h.service.ListDineItems(c.Request.Context(), c.Query("location"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

func (h *Handler) CreateDineItem(c *gin.Context) {
	var req CreateDineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid dine item", errs)
		return
	}

	item, err := h.service.CreateDineItem(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"item": item})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	h.log.Error("catalog_store_failed", zap.String("path", c.FullPath()), zap.Error(err))
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load catalog")
}
