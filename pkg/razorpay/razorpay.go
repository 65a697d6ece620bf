// Package razorpay wraps the Razorpay SDK behind the narrow surface the
// checkout flow needs: order creation and callback signature checks.
package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Config holds the gateway API credentials.
type Config struct {
	KeyID     string
	KeySecret string
}

// Client talks to the payment gateway. The key secret doubles as the HMAC
// key for callback signature verification.
type Client struct {
	api    *razorpay.Client
	keyID  string
	secret []byte
}

// NewClient creates a gateway client from the given credentials.
func NewClient(cfg Config) *Client {
	return &Client{
		api:    razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		keyID:  cfg.KeyID,
		secret: []byte(cfg.KeySecret),
	}
}

// KeyID returns the public key id the checkout widget is initialized with.
func (c *Client) KeyID() string {
	return c.keyID
}

// CreateOrder creates a gateway-side order for the given amount in minor
// currency units and returns its id. payment_capture=1 asks the gateway
// to capture the payment immediately on authorization.
func (c *Client) CreateOrder(amount int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":          amount,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	body, err := c.api.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create gateway order: %w", err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("gateway order response is missing an order id")
	}
	return orderID, nil
}

// VerifySignature recomputes the callback signature as
// hex(HMAC-SHA256(secret, orderID + "|" + paymentID)) and compares it to
// the supplied one in constant time.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
