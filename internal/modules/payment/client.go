package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"funcity/internal/config"
	"funcity/internal/domain"

	"go.uber.org/zap"
)

const (
	initiatePath = "/payment/initiateLink"
	payPath      = "/pay/"

	SuccessCallbackPath = "/api/v1/payments/success"
	FailureCallbackPath = "/api/v1/payments/failure"
)

// Client talks to the payment gateway with a single merchant key/salt pair.
type Client struct {
	cfg        config.GatewayConfig
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(cfg config.GatewayConfig, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{cfg: cfg, httpClient: httpClient, log: log}
}

func (c *Client) MerchantKey() string { return c.cfg.MerchantKey }
func (c *Client) Env() string         { return c.cfg.Env }
func (c *Client) IframeMode() bool    { return c.cfg.IframeMode }

func (c *Client) SuccessURL() string { return c.cfg.BackendURL + SuccessCallbackPath }
func (c *Client) FailureURL() string { return c.cfg.BackendURL + FailureCallbackPath }

// VerifyCallback checks p against the merchant salt.
func (c *Client) VerifyCallback(p CallbackPayload) bool {
	if p.Key == "" {
		p.Key = c.cfg.MerchantKey
	}
	return VerifyCallback(p, c.cfg.MerchantSalt)
}

// Initiate signs req and asks the gateway for a payment access key.
// Transport failures wrap domain.ErrGatewayUnavailable; a declined request
// returns *RejectedError. Nothing is retried here.
func (c *Client) Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error) {
	if c.cfg.MerchantKey == "" || c.cfg.MerchantSalt == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrGatewayUnavailable, ErrNotConfigured)
	}

	fields := req.HashFields()
	form := url.Values{}
	form.Set("key", c.cfg.MerchantKey)
	form.Set("txnid", fields.TxnID)
	form.Set("amount", fields.Amount)
	form.Set("productinfo", fields.ProductInfo)
	form.Set("firstname", fields.FirstName)
	form.Set("email", fields.Email)
	form.Set("phone", req.Phone)
	form.Set("surl", c.SuccessURL())
	form.Set("furl", c.FailureURL())
	for i, v := range fields.UDF {
		form.Set(fmt.Sprintf("udf%d", i+1), v)
	}
	form.Set("hash", RequestHash(c.cfg.MerchantKey, fields, c.cfg.MerchantSalt))

	endpoint := c.cfg.GatewayBaseURL() + initiatePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrGatewayUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	c.log.Info("gateway_initiate_request",
		zap.String("txnid", fields.TxnID),
		zap.String("amount", fields.Amount),
		zap.String("env", c.cfg.Env))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Error("gateway_initiate_transport_failed", zap.String("txnid", fields.TxnID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrGatewayUnavailable, err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		c.log.Error("gateway_initiate_server_error", zap.String("txnid", fields.TxnID), zap.Int("http_status", resp.StatusCode))
		return nil, fmt.Errorf("%w: http status %d", domain.ErrGatewayUnavailable, resp.StatusCode)
	}

	var out initiateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		c.log.Error("gateway_initiate_bad_response", zap.String("txnid", fields.TxnID), zap.Int("http_status", resp.StatusCode), zap.Error(err))
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrGatewayUnavailable, err)
	}

	accessKey, _ := out.Data.(string)
	if out.Status != 1 || accessKey == "" {
		reason := rejectionReason(out)
		c.log.Warn("gateway_initiate_rejected", zap.String("txnid", fields.TxnID), zap.String("reason", reason))
		return nil, &RejectedError{Reason: reason}
	}

	c.log.Info("gateway_initiate_ok", zap.String("txnid", fields.TxnID))
	return &InitiateResult{
		AccessKey:  accessKey,
		PaymentURL: c.cfg.GatewayBaseURL() + payPath + accessKey,
	}, nil
}

func rejectionReason(r initiateResponse) string {
	if r.ErrorDesc != "" {
		return r.ErrorDesc
	}
	if r.Error != "" {
		return r.Error
	}
	if s, ok := r.Data.(string); ok && s != "" {
		return s
	}
	return "payment initiation failed"
}
