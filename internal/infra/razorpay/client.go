package razorpay

import (
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"

	"ngo-portal/config"
)

// Order is the provider-issued handle for a single payment attempt.
// It is consumed once by the hosted checkout; retries get a fresh order.
type Order struct {
	ID       string
	Amount   int64
	Currency string
}

// Gateway is the surface the payment services need from Razorpay. Tests
// substitute a fake; production uses Client.
type Gateway interface {
	CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (Order, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

// Client wraps the Razorpay SDK. Construct it once at bootstrap and share it;
// the SDK client is safe for concurrent use.
type Client struct {
	api       *razorpay.Client
	keySecret string
}

func NewClient(cfg config.RazorpayConfig) *Client {
	return &Client{
		api:       razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		keySecret: cfg.KeySecret,
	}
}

func (c *Client) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (Order, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	body, err := c.api.Order.Create(data, nil)
	if err != nil {
		return Order{}, fmt.Errorf("razorpay order create: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return Order{}, fmt.Errorf("razorpay order create: response missing order id")
	}

	return Order{
		ID:       id,
		Amount:   toInt64(body["amount"]),
		Currency: stringOr(body["currency"], currency),
	}, nil
}

// VerifyPaymentSignature recomputes the HMAC-SHA256 over "orderID|paymentID"
// with the key secret and compares in constant time (the SDK helper uses
// hmac.Equal internally).
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, c.keySecret)
}

// The SDK decodes JSON numbers as float64.
func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}

func stringOr(v interface{}, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}
