package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"attire/internal/models"
	"attire/internal/repositories"
)

// All checkout amounts are charged in this currency, in minor units.
const checkoutCurrency = "INR"

// paymentMethod recorded on orders created through the gateway.
const paymentMethod = "RAZORPAY"

// PaymentGateway is the slice of the payment provider the checkout flow
// depends on. pkg/razorpay provides the real implementation.
type PaymentGateway interface {
	CreateOrder(amount int64, currency, receipt string) (string, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

// EventPublisher publishes order lifecycle events. pkg/rabbitmq provides
// the real implementation; a nil publisher disables events.
type EventPublisher interface {
	PublishOrderEvent(event string, payload map[string]interface{}) error
}

// CheckoutService orchestrates checkout and payment verification.
type CheckoutService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	gateway     PaymentGateway
	events      EventPublisher
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, gateway PaymentGateway, events EventPublisher) *CheckoutService {
	return &CheckoutService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		gateway:     gateway,
		events:      events,
	}
}

// Checkout validates the cart and shipping address, checks per-variant
// stock, creates a gateway order and persists a local PENDING order with
// snapshotted line items. Unit prices come from the catalog, not from the
// client payload.
//
// Known gap: if the local persist fails after the gateway order was
// created, the gateway order is orphaned. There is no compensation; the
// failure is logged and surfaced to the caller.
func (s *CheckoutService) Checkout(userID string, req models.CheckoutRequest) (*models.CheckoutResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("you must be signed in to place an order: %w", models.ErrAuthRequired)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("no items in cart: %w", models.ErrValidation)
	}
	if !req.ShippingAddress.Complete() {
		return nil, fmt.Errorf("shipping address requires name, address and city: %w", models.ErrValidation)
	}

	// Check stock and compute the total from authoritative catalog prices.
	// This read is advisory only; the hard guard is the conditional
	// decrement at verification time.
	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.VariantID == "" {
			return nil, fmt.Errorf("item %s has no variant: %w", item.ProductID, models.ErrValidation)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item %s has a non-positive quantity: %w", item.ProductID, models.ErrValidation)
		}

		variant, err := s.productRepo.GetVariantByID(item.VariantID)
		if err != nil {
			return nil, err
		}
		if variant.Stock < item.Quantity {
			return nil, fmt.Errorf("variant %s (available %d, requested %d): %w",
				variant.ID, variant.Stock, item.Quantity, models.ErrInsufficientStock)
		}

		product, err := s.productRepo.GetByID(variant.ProductID)
		if err != nil {
			return nil, err
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			VariantID: variant.ID,
			Quantity:  item.Quantity,
			Price:     product.Price, // unit price at the time of purchase
		})
		total += product.Price * float64(item.Quantity)
	}

	// The gateway charges in minor currency units.
	amount := int64(math.Round(total * 100))
	receipt := fmt.Sprintf("rcpt_%d", time.Now().UnixMilli())

	gatewayOrderID, err := s.gateway.CreateOrder(amount, checkoutCurrency, receipt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUpstream, err)
	}

	billing := req.ShippingAddress
	if req.BillingAddress != nil {
		billing = *req.BillingAddress
	}

	order := &models.Order{
		UserID:          userID,
		Total:           total,
		Status:          models.OrderPending,
		PaymentMethod:   paymentMethod,
		PaymentID:       gatewayOrderID,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  billing,
		Items:           items,
	}
	if err := s.orderRepo.Create(order); err != nil {
		log.Printf("Warning: gateway order %s has no local order after persist failure: %v", gatewayOrderID, err)
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishEvent("order.created", map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.Total,
	})

	return &models.CheckoutResponse{
		OrderID:   gatewayOrderID,
		Amount:    amount,
		Currency:  checkoutCurrency,
		KeyID:     s.gateway.KeyID(),
		DBOrderID: order.ID,
	}, nil
}

// VerifyPayment checks the gateway callback signature and, on a match,
// moves the order to PROCESSING and decrements the purchased variants'
// stock. A mismatch leaves the order and the stock untouched.
//
// Decrements run item by item; a crash mid-loop leaves the stock
// partially decremented with no automatic recovery. Each decrement is a
// guarded conditional update, so stock can never go negative.
func (s *CheckoutService) VerifyPayment(userID string, req models.VerifyPaymentRequest) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("you must be signed in to verify a payment: %w", models.ErrAuthRequired)
	}
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" || req.DBOrderID == "" {
		return "", fmt.Errorf("missing required payment verification data: %w", models.ErrValidation)
	}

	if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return "", fmt.Errorf("invalid signature: %w", models.ErrVerificationFailed)
	}

	order, err := s.orderRepo.GetByID(req.DBOrderID)
	if err != nil {
		return "", err
	}
	if order.UserID != userID {
		return "", fmt.Errorf("order %s belongs to another user: %w", order.ID, models.ErrForbidden)
	}

	if err := s.orderRepo.MarkPaid(order.ID, req.RazorpayPaymentID); err != nil {
		return "", err
	}

	// Reduce inventory for the purchased items.
	for _, item := range order.Items {
		if item.VariantID == "" {
			continue
		}
		if err := s.productRepo.DecrementVariantStock(item.VariantID, item.Quantity); err != nil {
			// The payment is already verified and the order marked paid;
			// a failed decrement leaves this item for manual stock
			// correction.
			log.Printf("Warning: failed to decrement stock for variant %s on order %s: %v",
				item.VariantID, order.ID, err)
		}
	}

	s.publishEvent("order.status_updated", map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  models.OrderProcessing,
	})

	return order.ID, nil
}

// publishEvent publishes an order event best-effort; failures are logged,
// never surfaced to the caller.
func (s *CheckoutService) publishEvent(event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
