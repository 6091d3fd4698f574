package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/idolyst/mentorship-api/internal/httperr"
	"github.com/idolyst/mentorship-api/internal/httpresp"
	"github.com/idolyst/mentorship-api/internal/middleware"
	"github.com/idolyst/mentorship-api/internal/models"
	"github.com/idolyst/mentorship-api/internal/payment"
)

type reconcilePaymentService interface {
	Execute(ctx context.Context, reference string, outcome string) (*models.MentorSession, error)
}

type PaymentHandler struct {
	gateway   payment.Gateway
	reconcile reconcilePaymentService
	log       *zap.Logger
}

func NewPaymentHandler(
	gateway payment.Gateway,
	reconcile reconcilePaymentService,
	log *zap.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		gateway:   gateway,
		reconcile: reconcile,
		log:       log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateOrderRequest struct {
	Provider    string            `json:"provider" binding:"required"`
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
}

type CapturePayPalRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// ======================================================
// CREATE ORDER
// ======================================================

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payment payload.")
		return
	}

	order, err := h.gateway.CreateOrder(c.Request.Context(), callerID, payment.OrderRequest{
		Provider:    payment.Provider(req.Provider),
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.OK(c, order)
}

// ======================================================
// RAZORPAY WEBHOOK
// ======================================================

type razorpayWebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// RazorpayWebhook is unauthenticated; trust comes from the HMAC signature
// header alone.
func (h *PaymentHandler) RazorpayWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Unreadable webhook body.")
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if !h.gateway.VerifyWebhookSignature(body, signature) {
		httperr.Unauthorized(c, "invalid_signature", "Webhook signature verification failed.")
		return
	}

	var ev razorpayWebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed webhook payload.")
		return
	}

	var outcome string
	switch ev.Event {
	case "payment.captured":
		outcome = payment.StatusCompleted
	case "payment.failed":
		outcome = payment.StatusFailed
	default:
		// Unhandled event types are acknowledged so the provider stops
		// redelivering them.
		c.Status(http.StatusOK)
		return
	}

	if _, err := h.reconcile.Execute(c.Request.Context(), ev.Payload.Payment.Entity.OrderID, outcome); err != nil {
		h.log.Warn("webhook reconciliation failed",
			zap.String("event", ev.Event),
			zap.String("order_id", ev.Payload.Payment.Entity.OrderID),
			zap.Error(err),
		)
		respondBusiness(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// ======================================================
// PAYPAL CAPTURE
// ======================================================

func (h *PaymentHandler) CapturePayPal(c *gin.Context) {
	var req CapturePayPalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "An order id is required.")
		return
	}

	status, err := h.gateway.CaptureOrder(c.Request.Context(), payment.ProviderPayPal, req.OrderID)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	outcome := payment.StatusFailed
	if status == "COMPLETED" {
		outcome = payment.StatusCompleted
	}

	s, err := h.reconcile.Execute(c.Request.Context(), req.OrderID, outcome)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"capture_status": status,
		"session":        s,
	})
}
