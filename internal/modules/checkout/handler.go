package checkout

import (
	"errors"
	"net/http"

	"funcity/internal/domain"
	"funcity/internal/middleware"
	"funcity/internal/modules/payment"
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
	rg.POST("/checkout", h.Checkout)
}

// Checkout godoc
// @Summary      Place an order and start payment
// @Tags         Checkout
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body CheckoutRequest true "Cart"
// @Success      200 {object} CheckoutResponse
// @Failure      400 {object} map[string]interface{}
// @Failure      402 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Failure      502 {object} map[string]interface{}
// @Router       /checkout [post]
func (h *Handler) Checkout(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing user")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if req.Location == "" {
		req.Location = c.GetString(middleware.ContextLocation)
	}

	resp, err := h.service.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"paymentUrl":  resp.PaymentURL,
		"accessKey":   resp.AccessKey,
		"txnid":       resp.TxnID,
		"mode":        resp.Mode,
		"merchantKey": resp.MerchantKey,
		"env":         resp.Env,
	})
}

func writeError(c *gin.Context, err error) {
	var verr *ValidationError
	var rejected *payment.RejectedError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid cart", verr.Fields)
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "Profile not found")
	case errors.As(err, &rejected):
		response.Error(c, http.StatusPaymentRequired, "GATEWAY_REJECTED", rejected.Reason)
	case errors.Is(err, domain.ErrGatewayUnavailable):
		response.Error(c, http.StatusBadGateway, "GATEWAY_UNAVAILABLE", "Payment gateway unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to place order")
	}
}
