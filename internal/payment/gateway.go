package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/idolyst/mentorship-api/internal/config"
	"github.com/idolyst/mentorship-api/internal/httperr"
)

// ===============================
// Providers / statuses
// ===============================

type Provider string

const (
	ProviderFree     Provider = "free"
	ProviderRazorpay Provider = "razorpay"
	ProviderPayPal   Provider = "paypal"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusRefunded  = "refunded"
)

const DefaultCurrency = "INR"

// ===============================
// Contract
// ===============================

type OrderRequest struct {
	Provider    Provider
	Amount      float64
	Currency    string
	Description string
	Metadata    map[string]string
}

// Order is the handle returned to the client. Exactly one of OrderID /
// PaymentID is set: free charges settle immediately and get a payment id,
// provider charges get an order id awaiting capture.
type Order struct {
	OrderID     string   `json:"order_id,omitempty"`
	PaymentID   string   `json:"payment_id,omitempty"`
	Provider    Provider `json:"provider"`
	Status      string   `json:"status,omitempty"`
	ApprovalURL string   `json:"approval_url,omitempty"`
}

type Gateway interface {
	CreateOrder(ctx context.Context, callerID uint, req OrderRequest) (*Order, error)

	// CaptureOrder finalizes an approved paypal checkout order and returns
	// the capture status.
	CaptureOrder(ctx context.Context, provider Provider, orderID string) (string, error)

	// VerifyWebhookSignature checks a razorpay webhook payload against the
	// shared webhook secret.
	VerifyWebhookSignature(body []byte, signature string) bool
}

// ===============================
// Implementation
// ===============================

// ProviderGateway keeps no per-call state; every invocation stands alone and
// idempotency of retried initiations is the caller's problem.
type ProviderGateway struct {
	cfg *config.Config
	log *zap.Logger
}

func NewProviderGateway(cfg *config.Config, log *zap.Logger) *ProviderGateway {
	return &ProviderGateway{cfg: cfg, log: log}
}

func (g *ProviderGateway) CreateOrder(
	ctx context.Context,
	callerID uint,
	req OrderRequest,
) (*Order, error) {

	if req.Currency == "" {
		req.Currency = DefaultCurrency
	}

	// Zero-amount requests are free regardless of the provider asked for.
	if req.Provider == ProviderFree || req.Amount == 0 {
		if req.Amount != 0 {
			return nil, httperr.ErrBusiness("invalid_amount")
		}
		return g.createFreeOrder(callerID), nil
	}

	if req.Amount <= 0 {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	switch req.Provider {
	case ProviderRazorpay:
		return g.createRazorpayOrder(ctx, callerID, req)
	case ProviderPayPal:
		return g.createPayPalOrder(ctx, callerID, req)
	default:
		return nil, httperr.ErrBusiness("invalid_provider")
	}
}

func (g *ProviderGateway) createFreeOrder(callerID uint) *Order {
	return &Order{
		PaymentID: fmt.Sprintf("free_%d_%d", time.Now().Unix(), callerID),
		Provider:  ProviderFree,
		Status:    "success",
	}
}

func (g *ProviderGateway) CaptureOrder(
	ctx context.Context,
	provider Provider,
	orderID string,
) (string, error) {

	if strings.TrimSpace(orderID) == "" {
		return "", httperr.ErrBusiness("validation_error")
	}

	switch provider {
	case ProviderPayPal:
		return g.capturePayPalOrder(ctx, orderID)
	default:
		return "", httperr.ErrBusiness("invalid_provider")
	}
}

var _ Gateway = (*ProviderGateway)(nil)
