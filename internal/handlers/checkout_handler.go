package handlers

import (
	"log"

	"attire/internal/middleware"
	"attire/internal/models"
	"attire/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles HTTP requests for checkout and payment
// verification. Both routes sit behind the auth guard.
type CheckoutHandler struct {
	checkout *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkout *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Post("/", h.HandleCheckout)
	checkoutRoutes.Post("/verify", h.HandleVerifyPayment)
}

// HandleCheckout validates the submitted cart, creates the gateway order
// and the local PENDING order, and returns what the payment widget needs.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var req models.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	resp, err := h.checkout.Checkout(middleware.UserID(c), req)
	if err != nil {
		log.Printf("Checkout error: %v", err)
		return errorResponse(c, "Checkout failed", err)
	}

	return c.JSON(resp)
}

// HandleVerifyPayment verifies the gateway callback signature and, on a
// match, transitions the order to PROCESSING and reduces stock.
func (h *CheckoutHandler) HandleVerifyPayment(c *fiber.Ctx) error {
	var req models.VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing verification request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	orderID, err := h.checkout.VerifyPayment(middleware.UserID(c), req)
	if err != nil {
		log.Printf("Payment verification error: %v", err)
		return errorResponse(c, "Payment verification failed", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"orderId": orderID,
		"message": "Payment verified and order processed successfully",
	})
}
