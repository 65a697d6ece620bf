package handlers

import (
	"log"

	"attire/internal/middleware"
	"attire/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for the customer's own orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
}

// HandleGetOrders retrieves the authenticated user's order history,
// newest first, with item, product and variant details.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetOrdersForUser(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return errorResponse(c, "Could not retrieve orders", err)
	}

	return c.JSON(fiber.Map{
		"orders": orders,
	})
}
