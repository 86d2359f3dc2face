package admin

import (
	"net/http"
	"strconv"

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

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	// payment ledger
	admin.GET("/payments", h.ListPayments)
}

// ListPayments godoc
// @Summary      Payment ledger entries
// @Tags         Admin
// @Security     BearerAuth
// @Produce      json
// @Param        txnid query string false "Transaction id"
// @Param        limit query int false "Max entries when txnid is empty"
// @Success      200 {object} map[string]interface{}
// @Failure      403 {object} map[string]interface{}
// @Router       /admin/payments [get]
func (h *Handler) ListPayments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.service.ListPayments(c.Request.Context(), c.Query("txnid"), limit)
	if err != nil {
		h.log.Error("ledger_list_failed", zap.String("txnid", c.Query("txnid")), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load payments")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": entries, "count": len(entries)})
}
