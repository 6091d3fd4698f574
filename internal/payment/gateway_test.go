package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/idolyst/mentorship-api/internal/config"
	"github.com/idolyst/mentorship-api/internal/httperr"
)

func newGateway(cfg *config.Config) *ProviderGateway {
	return NewProviderGateway(cfg, zap.NewNop())
}

func TestCreateFreeOrder(t *testing.T) {
	g := newGateway(&config.Config{})

	order, err := g.CreateOrder(context.Background(), 42, OrderRequest{
		Provider: ProviderFree,
		Amount:   0,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.PaymentID, "free_"))
	assert.True(t, strings.HasSuffix(order.PaymentID, "_42"))
	assert.Equal(t, ProviderFree, order.Provider)
	assert.Equal(t, "success", order.Status)
	assert.Empty(t, order.OrderID)
}

func TestZeroAmountIsFreeRegardlessOfProvider(t *testing.T) {
	g := newGateway(&config.Config{})

	order, err := g.CreateOrder(context.Background(), 7, OrderRequest{
		Provider: ProviderRazorpay,
		Amount:   0,
	})
	require.NoError(t, err)
	assert.Equal(t, ProviderFree, order.Provider)
}

func TestCreateOrderValidation(t *testing.T) {
	g := newGateway(&config.Config{})
	ctx := context.Background()

	_, err := g.CreateOrder(ctx, 7, OrderRequest{Provider: ProviderRazorpay, Amount: -5})
	assert.True(t, httperr.IsBusiness(err, "invalid_amount"), "got %v", err)

	_, err = g.CreateOrder(ctx, 7, OrderRequest{Provider: ProviderFree, Amount: 10})
	assert.True(t, httperr.IsBusiness(err, "invalid_amount"))

	_, err = g.CreateOrder(ctx, 7, OrderRequest{Provider: "stripe", Amount: 10})
	assert.True(t, httperr.IsBusiness(err, "invalid_provider"))
}

func TestProvidersRequireCredentials(t *testing.T) {
	g := newGateway(&config.Config{})
	ctx := context.Background()

	_, err := g.CreateOrder(ctx, 7, OrderRequest{Provider: ProviderRazorpay, Amount: 10})
	assert.True(t, httperr.IsBusiness(err, "payment_not_configured"))

	_, err = g.CreateOrder(ctx, 7, OrderRequest{Provider: ProviderPayPal, Amount: 10})
	assert.True(t, httperr.IsBusiness(err, "payment_not_configured"))

	_, err = g.CaptureOrder(ctx, ProviderPayPal, "ORDER123")
	assert.True(t, httperr.IsBusiness(err, "payment_not_configured"))
}

func TestCaptureOrderValidation(t *testing.T) {
	g := newGateway(&config.Config{})
	ctx := context.Background()

	_, err := g.CaptureOrder(ctx, ProviderPayPal, "   ")
	assert.True(t, httperr.IsBusiness(err, "validation_error"))

	_, err = g.CaptureOrder(ctx, ProviderRazorpay, "order_abc")
	assert.True(t, httperr.IsBusiness(err, "invalid_provider"))
}

// fakePayPal stands in for the paypal REST API.
func fakePayPal(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{
			"id": "ORDER123",
			"status": "CREATED",
			"links": [
				{"href": "https://api.test/v2/checkout/orders/ORDER123", "rel": "self", "method": "GET"},
				{"href": "https://www.test/checkoutnow?token=ORDER123", "rel": "approve", "method": "GET"}
			]
		}`)
	})
	mux.HandleFunc("/v2/checkout/orders/ORDER123/capture", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"ORDER123","status":"COMPLETED"}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCreatePayPalOrder(t *testing.T) {
	srv := fakePayPal(t)
	g := newGateway(&config.Config{
		PayPalClientID:   "client-id",
		PayPalSecret:     "secret",
		PayPalAPIBase:    srv.URL,
		PaymentReturnURL: "https://app.test/payments/return",
		PaymentCancelURL: "https://app.test/payments/cancel",
	})

	order, err := g.CreateOrder(context.Background(), 42, OrderRequest{
		Provider:    ProviderPayPal,
		Amount:      49.99,
		Currency:    "USD",
		Description: "Pitch review",
	})
	require.NoError(t, err)

	assert.Equal(t, "ORDER123", order.OrderID)
	assert.Equal(t, ProviderPayPal, order.Provider)
	assert.Equal(t, "https://www.test/checkoutnow?token=ORDER123", order.ApprovalURL)
}

func TestCapturePayPalOrder(t *testing.T) {
	srv := fakePayPal(t)
	g := newGateway(&config.Config{
		PayPalClientID: "client-id",
		PayPalSecret:   "secret",
		PayPalAPIBase:  srv.URL,
	})

	status, err := g.CaptureOrder(context.Background(), ProviderPayPal, "ORDER123")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", status)
}

func TestVerifyWebhookSignature(t *testing.T) {
	const secret = "whsec_test"
	body := []byte(`{"event":"payment.captured"}`)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	signature := hex.EncodeToString(mac.Sum(nil))

	g := newGateway(&config.Config{RazorpayWebhookSecret: secret})
	assert.True(t, g.VerifyWebhookSignature(body, signature))
	assert.False(t, g.VerifyWebhookSignature(body, "deadbeef"))
	assert.False(t, g.VerifyWebhookSignature([]byte(`{"tampered":true}`), signature))
	assert.False(t, g.VerifyWebhookSignature(body, ""))

	// Without a configured secret nothing verifies.
	unconfigured := newGateway(&config.Config{})
	assert.False(t, unconfigured.VerifyWebhookSignature(body, signature))
}
