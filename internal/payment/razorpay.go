package payment

import (
	"context"
	"math"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	razorpayutils "github.com/razorpay/razorpay-go/utils"
	"go.uber.org/zap"

	"github.com/idolyst/mentorship-api/internal/httperr"
)

func (g *ProviderGateway) createRazorpayOrder(
	_ context.Context,
	callerID uint,
	req OrderRequest,
) (*Order, error) {

	if g.cfg.RazorpayKeyID == "" || g.cfg.RazorpayKeySecret == "" {
		return nil, httperr.ErrBusiness("payment_not_configured")
	}

	client := razorpay.NewClient(g.cfg.RazorpayKeyID, g.cfg.RazorpayKeySecret)

	notes := map[string]interface{}{
		"caller_id":   callerID,
		"description": req.Description,
	}
	for k, v := range req.Metadata {
		notes[k] = v
	}

	// Razorpay wants the smallest currency unit.
	data := map[string]interface{}{
		"amount":   int64(math.Round(req.Amount * 100)),
		"currency": req.Currency,
		"receipt":  "rcpt_" + uuid.NewString()[:8],
		"notes":    notes,
	}

	body, err := client.Order.Create(data, nil)
	if err != nil {
		g.log.Error("razorpay order creation failed",
			zap.Uint("caller_id", callerID),
			zap.Float64("amount", req.Amount),
			zap.Error(err),
		)
		return nil, httperr.ErrBusiness("gateway_error")
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		g.log.Error("razorpay order response missing id", zap.Any("body", body))
		return nil, httperr.ErrBusiness("gateway_error")
	}

	return &Order{
		OrderID:  orderID,
		Provider: ProviderRazorpay,
	}, nil
}

func (g *ProviderGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	if g.cfg.RazorpayWebhookSecret == "" || signature == "" {
		return false
	}
	return razorpayutils.VerifyWebhookSignature(string(body), signature, g.cfg.RazorpayWebhookSecret)
}
