package models

import "time"

// Order statuses. PENDING is set at checkout, PROCESSING on verified
// payment; the rest are admin-driven. No status is ever reverted
// automatically.
const (
	OrderPending    = "PENDING"
	OrderProcessing = "PROCESSING"
	OrderShipped    = "SHIPPED"
	OrderDelivered  = "DELIVERED"
	OrderCancelled  = "CANCELLED"
)

// OrderStatuses is the set of valid order statuses. Admin updates are
// validated against membership only, not against a transition table.
var OrderStatuses = []string{
	OrderPending,
	OrderProcessing,
	OrderShipped,
	OrderDelivered,
	OrderCancelled,
}

// ValidOrderStatus reports whether s is one of the five order statuses.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Address is a denormalized shipping or billing address stored on the
// order itself. Name, Address and City are required for shipping.
type Address struct {
	Name    string `json:"name" gorm:"type:varchar(100)"`
	Address string `json:"address" gorm:"type:varchar(255)"`
	City    string `json:"city" gorm:"type:varchar(100)"`
	State   string `json:"state" gorm:"type:varchar(100)"`
	Zip     string `json:"zip" gorm:"type:varchar(20)"`
	Phone   string `json:"phone" gorm:"type:varchar(30)"`
}

// Complete reports whether the required shipping fields are present.
func (a Address) Complete() bool {
	return a.Name != "" && a.Address != "" && a.City != ""
}

// Order is a customer order. Addresses are embedded, items are immutable
// once created.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string      `json:"user_id" gorm:"index;type:varchar(36)"`
	User            *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Total           float64     `json:"total"`
	Status          string      `json:"status" gorm:"type:varchar(12);default:PENDING"`
	PaymentMethod   string      `json:"payment_method" gorm:"type:varchar(30)"`
	PaymentID       string      `json:"payment_id" gorm:"type:varchar(100)"`
	ShippingAddress Address     `json:"shipping_address" gorm:"embedded;embeddedPrefix:shipping_"`
	BillingAddress  Address     `json:"billing_address" gorm:"embedded;embeddedPrefix:billing_"`
	Items           []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem snapshots one purchased line: product, variant, quantity and
// the unit price at the time of purchase. Price must not change even if
// the catalog price later does.
type OrderItem struct {
	ID        string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string   `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string   `json:"product_id" gorm:"type:varchar(36)"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	VariantID string   `json:"variant_id" gorm:"type:varchar(36)"`
	Variant   *Variant `json:"variant,omitempty" gorm:"foreignKey:VariantID"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"` // unit price at the time of order
}

// CartItem is one line of the client-held cart as submitted at checkout.
// The claimed price is informational only; totals are recomputed from the
// catalog server-side.
type CartItem struct {
	ProductID string  `json:"productId" validate:"required"`
	VariantID string  `json:"variantId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Price     float64 `json:"price"`
}

// CheckoutRequest is the POST /checkout body.
type CheckoutRequest struct {
	Items           []CartItem `json:"items"`
	ShippingAddress Address    `json:"shippingAddress"`
	BillingAddress  *Address   `json:"billingAddress"`
}

// CheckoutResponse carries what the payment widget needs plus the local
// order id for the later verification call.
type CheckoutResponse struct {
	OrderID   string `json:"orderId"` // gateway order id
	Amount    int64  `json:"amount"`  // minor currency units
	Currency  string `json:"currency"`
	KeyID     string `json:"keyId"`
	DBOrderID string `json:"dbOrderId"`
}

// VerifyPaymentRequest is the POST /checkout/verify body. Field names
// follow the gateway's callback payload.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	DBOrderID         string `json:"dbOrderId"`
}
