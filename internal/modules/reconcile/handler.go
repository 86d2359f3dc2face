package reconcile

import (
	"errors"
	"net/http"

	"funcity/internal/domain"
	"funcity/internal/modules/payment"

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

// RegisterRoutes mounts the gateway return URLs. They are public: the
// success path is authenticated by the callback hash alone.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/payments/success", h.Success)
	rg.POST("/payments/success", h.Success)
	rg.GET("/payments/failure", h.Failure)
	rg.POST("/payments/failure", h.Failure)
}

// Success godoc
// @Summary      Gateway success return URL
// @Description  Verifies the callback hash, marks the order paid and redirects to the frontend
// @Tags         Payments
// @Accept       x-www-form-urlencoded,json
// @Produce      plain
// @Success      302 {string} string "redirect"
// @Failure      400 {string} string "authentication failed"
// @Failure      500 {string} string "internal error"
// @Router       /payments/success [post]
func (h *Handler) Success(c *gin.Context) {
	p, ok := h.bind(c)
	if !ok {
		return
	}
	res, err := h.service.HandleSuccess(c.Request.Context(), p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Redirect(http.StatusFound, res.RedirectURL)
}

// Failure godoc
// @Summary      Gateway failure return URL
// @Tags         Payments
// @Accept       x-www-form-urlencoded,json
// @Produce      plain
// @Success      302 {string} string "redirect"
// @Failure      500 {string} string "internal error"
// @Router       /payments/failure [post]
func (h *Handler) Failure(c *gin.Context) {
	p, ok := h.bind(c)
	if !ok {
		return
	}
	res, err := h.service.HandleFailure(c.Request.Context(), p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Redirect(http.StatusFound, res.RedirectURL)
}

// bind accepts form bodies, query strings and JSON alike.
func (h *Handler) bind(c *gin.Context) (payment.CallbackPayload, bool) {
	var p payment.CallbackPayload
	if err := c.ShouldBind(&p); err != nil {
		h.log.Warn("callback_bind_failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.String(http.StatusBadRequest, "bad request")
		return p, false
	}
	if p.TxnID == "" {
		// JSON bodies leave query parameters unbound
		_ = c.ShouldBindQuery(&p)
	}
	return p, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAuthenticationFailure):
		c.String(http.StatusBadRequest, "authentication failed")
	case errors.Is(err, domain.ErrInvalidInput):
		c.String(http.StatusBadRequest, "bad request")
	default:
		c.String(http.StatusInternalServerError, "internal error")
	}
}
