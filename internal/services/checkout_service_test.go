package services_test

import (
	"fmt"
	"testing"

	"attire/internal/models"
	"attire/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func validShipping() models.Address {
	return models.Address{
		Name:    "Asha Rao",
		Address: "12 Lakeview Road",
		City:    "Bengaluru",
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	gateway := new(MockPaymentGateway)
	service := services.NewCheckoutService(orderRepo, productRepo, gateway, nil)

	resp, err := service.Checkout("user-1", models.CheckoutRequest{
		Items:           []models.CartItem{},
		ShippingAddress: validShipping(),
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Nil(t, resp)
	// The gateway must never be reached for an empty cart
	gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_IncompleteShippingAddress(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	gateway := new(MockPaymentGateway)
	service := services.NewCheckoutService(orderRepo, productRepo, gateway, nil)

	resp, err := service.Checkout("user-1", models.CheckoutRequest{
		Items: []models.CartItem{
			{ProductID: "p1", VariantID: "v1", Quantity: 1},
		},
		ShippingAddress: models.Address{Name: "Asha Rao", City: "Bengaluru"}, // missing street address
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Nil(t, resp)
	// Validation must fail before any stock lookup happens
	productRepo.AssertNotCalled(t, "GetVariantByID", mock.Anything)
	gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_Unauthenticated(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	gateway := new(MockPaymentGateway)
	service := services.NewCheckoutService(orderRepo, productRepo, gateway, nil)

	resp, err := service.Checkout("", models.CheckoutRequest{
		Items:           []models.CartItem{{ProductID: "p1", VariantID: "v1", Quantity: 1}},
		ShippingAddress: validShipping(),
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAuthRequired)
	assert.Nil(t, resp)
}

func TestCheckout_InsufficientStock(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	gateway := new(MockPaymentGateway)
	service := services.NewCheckoutService(orderRepo, productRepo, gateway, nil)

	productRepo.On("GetVariantByID", "v2").Return(&models.Variant{
		ID: "v2", ProductID: "p2", Stock: 2,
	}, nil).Once()

	resp, err := service.Checkout("user-1", models.CheckoutRequest{
		Items: []models.CartItem{
			{ProductID: "p2", VariantID: "v2", Quantity: 10},
		},
		ShippingAddress: validShipping(),
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)
	assert.Nil(t, resp)
	// No gateway order and no local order when stock is short
	gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
	productRepo.AssertExpectations(t)
}

func TestCheckout_VariantNotFound(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	gateway := new(MockPaymentGateway)
	service := services.NewCheckoutService(orderRepo, productRepo, gateway, nil)

	productRepo.On("GetVariantByID", "missing").
		Return(nil, fmt.Errorf("variant missing: %w", models.ErrNotFound)).Once()

	resp, err := service.Checkout("user-1", models.CheckoutRequest{
		Items: []models.CartItem{
			{ProductID: "p1", VariantID: "missing", Quantity: 1},
		},
		ShippingAddress: validShipping(),
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Nil(t, resp)
	productRepo.AssertExpectations(t)
}

func TestCheckout_Success(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	gateway := new(MockPaymentGateway)
	events := new(MockEventPublisher)
	service := services.NewCheckoutService(orderRepo, productRepo, gateway, events)

	productRepo.On("GetVariantByID", "v1").Return(&models.Variant{
		ID: "v1", ProductID: "p1", Size: "M", Color: "Black", Stock: 5,
	}, nil).Once()
	// The catalog price is authoritative; the client's claimed price is ignored
	productRepo.On("GetByID", "p1").Return(&models.Product{
		ID: "p1", Name: "Classic Crew Tee", Price: 300,
	}, nil).Once()

	// 2 x 300 = 600, charged as 60000 minor units in INR
	gateway.On("CreateOrder", int64(60000), "INR", mock.AnythingOfType("string")).
		Return("order_gw_123", nil).Once()
	gateway.On("KeyID").Return("rzp_test_key").Once()

	var created *models.Order
	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.Order)
			created.ID = "db-order-1"
		}).
		Return(nil).Once()

	events.On("PublishOrderEvent", "order.created", mock.Anything).Return(nil).Once()

	resp, err := service.Checkout("user-1", models.CheckoutRequest{
		Items: []models.CartItem{
			{ProductID: "p1", VariantID: "v1", Quantity: 2, Price: 300},
		},
		ShippingAddress: validShipping(),
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, "order_gw_123", resp.OrderID)
	assert.Equal(t, int64(60000), resp.Amount)
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "rzp_test_key", resp.KeyID)
	assert.Equal(t, "db-order-1", resp.DBOrderID)

	// The persisted order is PENDING with purchase-time prices snapshotted
	assert.NotNil(t, created)
	assert.Equal(t, models.OrderPending, created.Status)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, 600.0, created.Total)
	assert.Equal(t, "RAZORPAY", created.PaymentMethod)
	assert.Equal(t, "order_gw_123", created.PaymentID)
	assert.Len(t, created.Items, 1)
	assert.Equal(t, 300.0, created.Items[0].Price)
	assert.Equal(t, 2, created.Items[0].Quantity)
	// Billing defaults to shipping when absent
	assert.Equal(t, created.ShippingAddress, created.BillingAddress)

	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	gateway.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCheckout_ClientPriceIgnored(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	gateway := new(MockPaymentGateway)
	service := services.NewCheckoutService(orderRepo, productRepo, gateway, nil)

	productRepo.On("GetVariantByID", "v1").Return(&models.Variant{
		ID: "v1", ProductID: "p1", Stock: 5,
	}, nil).Once()
	productRepo.On("GetByID", "p1").Return(&models.Product{
		ID: "p1", Name: "Classic Crew Tee", Price: 300,
	}, nil).Once()

	// The client claims a 1 rupee price; the charge is still based on 300
	gateway.On("CreateOrder", int64(30000), "INR", mock.AnythingOfType("string")).
		Return("order_gw_124", nil).Once()
	gateway.On("KeyID").Return("rzp_test_key").Once()
	orderRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	resp, err := service.Checkout("user-1", models.CheckoutRequest{
		Items: []models.CartItem{
			{ProductID: "p1", VariantID: "v1", Quantity: 1, Price: 1},
		},
		ShippingAddress: validShipping(),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(30000), resp.Amount)
	gateway.AssertExpectations(t)
}

func TestCheckout_GatewayFailure(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	gateway := new(MockPaymentGateway)
	service := services.NewCheckoutService(orderRepo, productRepo, gateway, nil)

	productRepo.On("GetVariantByID", "v1").Return(&models.Variant{
		ID: "v1", ProductID: "p1", Stock: 5,
	}, nil).Once()
	productRepo.On("GetByID", "p1").Return(&models.Product{
		ID: "p1", Price: 300,
	}, nil).Once()
	gateway.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything).
		Return("", fmt.Errorf("gateway unreachable")).Once()

	resp, err := service.Checkout("user-1", models.CheckoutRequest{
		Items: []models.CartItem{
			{ProductID: "p1", VariantID: "v1", Quantity: 1},
		},
		ShippingAddress: validShipping(),
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUpstream)
	assert.Nil(t, resp)
	// No local order is written when the gateway call fails
	orderRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestVerifyPayment_Success(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	gateway := new(MockPaymentGateway)
	events := new(MockEventPublisher)
	service := services.NewCheckoutService(orderRepo, productRepo, gateway, events)

	gateway.On("VerifySignature", "order_gw_123", "pay_456", "good-signature").Return(true).Once()
	orderRepo.On("GetByID", "db-order-1").Return(&models.Order{
		ID:     "db-order-1",
		UserID: "user-1",
		Status: models.OrderPending,
		Items: []models.OrderItem{
			{ID: "item-1", VariantID: "v1", ProductID: "p1", Quantity: 2, Price: 300},
		},
	}, nil).Once()
	orderRepo.On("MarkPaid", "db-order-1", "pay_456").Return(nil).Once()
	productRepo.On("DecrementVariantStock", "v1", 2).Return(nil).Once()
	events.On("PublishOrderEvent", "order.status_updated", mock.Anything).Return(nil).Once()

	orderID, err := service.VerifyPayment("user-1", models.VerifyPaymentRequest{
		RazorpayOrderID:   "order_gw_123",
		RazorpayPaymentID: "pay_456",
		RazorpaySignature: "good-signature",
		DBOrderID:         "db-order-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "db-order-1", orderID)
	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	gateway.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestVerifyPayment_TamperedSignature(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	gateway := new(MockPaymentGateway)
	service := services.NewCheckoutService(orderRepo, productRepo, gateway, nil)

	gateway.On("VerifySignature", "order_gw_123", "pay_456", "forged").Return(false).Once()

	orderID, err := service.VerifyPayment("user-1", models.VerifyPaymentRequest{
		RazorpayOrderID:   "order_gw_123",
		RazorpayPaymentID: "pay_456",
		RazorpaySignature: "forged",
		DBOrderID:         "db-order-1",
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, models.ErrVerificationFailed)
	assert.Empty(t, orderID)
	// Order and stock must be left untouched on a signature mismatch
	orderRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
	productRepo.AssertNotCalled(t, "DecrementVariantStock", mock.Anything, mock.Anything)
	gateway.AssertExpectations(t)
}

func TestVerifyPayment_WrongUser(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	gateway := new(MockPaymentGateway)
	service := services.NewCheckoutService(orderRepo, productRepo, gateway, nil)

	gateway.On("VerifySignature", "order_gw_123", "pay_456", "good-signature").Return(true).Once()
	orderRepo.On("GetByID", "db-order-1").Return(&models.Order{
		ID:     "db-order-1",
		UserID: "user-a",
		Items: []models.OrderItem{
			{ID: "item-1", VariantID: "v1", Quantity: 1},
		},
	}, nil).Once()

	orderID, err := service.VerifyPayment("user-b", models.VerifyPaymentRequest{
		RazorpayOrderID:   "order_gw_123",
		RazorpayPaymentID: "pay_456",
		RazorpaySignature: "good-signature",
		DBOrderID:         "db-order-1",
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.Empty(t, orderID)
	// No state change for a cross-user verification attempt
	orderRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
	productRepo.AssertNotCalled(t, "DecrementVariantStock", mock.Anything, mock.Anything)
}

func TestVerifyPayment_MissingFields(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	gateway := new(MockPaymentGateway)
	service := services.NewCheckoutService(orderRepo, productRepo, gateway, nil)

	orderID, err := service.VerifyPayment("user-1", models.VerifyPaymentRequest{
		RazorpayOrderID: "order_gw_123",
		// payment id, signature and db order id missing
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, orderID)
	gateway.AssertNotCalled(t, "VerifySignature", mock.Anything, mock.Anything, mock.Anything)
}
