package payment

import (
	"context"
	"strconv"

	"github.com/plutov/paypal/v4"
	"go.uber.org/zap"

	"github.com/idolyst/mentorship-api/internal/httperr"
)

func (g *ProviderGateway) paypalClient() (*paypal.Client, error) {
	if g.cfg.PayPalClientID == "" || g.cfg.PayPalSecret == "" {
		return nil, httperr.ErrBusiness("payment_not_configured")
	}

	client, err := paypal.NewClient(g.cfg.PayPalClientID, g.cfg.PayPalSecret, g.cfg.PayPalAPIBase)
	if err != nil {
		return nil, httperr.ErrBusiness("payment_not_configured")
	}
	return client, nil
}

func (g *ProviderGateway) createPayPalOrder(
	ctx context.Context,
	callerID uint,
	req OrderRequest,
) (*Order, error) {

	client, err := g.paypalClient()
	if err != nil {
		return nil, err
	}

	if _, err := client.GetAccessToken(ctx); err != nil {
		g.log.Error("paypal token exchange failed", zap.Error(err))
		return nil, httperr.ErrBusiness("authentication_error")
	}

	units := []paypal.PurchaseUnitRequest{
		{
			Amount: &paypal.PurchaseUnitAmount{
				Currency: req.Currency,
				Value:    strconv.FormatFloat(req.Amount, 'f', 2, 64),
			},
			Description: req.Description,
			CustomID:    strconv.FormatUint(uint64(callerID), 10),
		},
	}

	appCtx := &paypal.ApplicationContext{
		ReturnURL: g.cfg.PaymentReturnURL,
		CancelURL: g.cfg.PaymentCancelURL,
	}

	order, err := client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, appCtx)
	if err != nil {
		g.log.Error("paypal order creation failed",
			zap.Uint("caller_id", callerID),
			zap.Float64("amount", req.Amount),
			zap.Error(err),
		)
		return nil, httperr.ErrBusiness("gateway_error")
	}

	out := &Order{
		OrderID:  order.ID,
		Provider: ProviderPayPal,
	}
	for _, link := range order.Links {
		if link.Rel == "approve" {
			out.ApprovalURL = link.Href
			break
		}
	}

	return out, nil
}

func (g *ProviderGateway) capturePayPalOrder(ctx context.Context, orderID string) (string, error) {
	client, err := g.paypalClient()
	if err != nil {
		return "", err
	}

	if _, err := client.GetAccessToken(ctx); err != nil {
		g.log.Error("paypal token exchange failed", zap.Error(err))
		return "", httperr.ErrBusiness("authentication_error")
	}

	capture, err := client.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
	if err != nil {
		g.log.Error("paypal capture failed", zap.String("order_id", orderID), zap.Error(err))
		return "", httperr.ErrBusiness("gateway_error")
	}

	return capture.Status, nil
}
