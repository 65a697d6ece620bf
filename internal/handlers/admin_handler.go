package handlers

import (
	"fmt"
	"log"

	"attire/internal/models"
	"attire/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the back office routes. The whole group sits
// behind the auth and admin guards; handlers do not re-check roles.
type AdminHandler struct {
	orders   *services.OrderService
	catalog  *services.CatalogService
	auth     *services.AuthService
	validate *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(orders *services.OrderService, catalog *services.CatalogService, auth *services.AuthService) *AdminHandler {
	return &AdminHandler{
		orders:   orders,
		catalog:  catalog,
		auth:     auth,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the admin routes with the Fiber app.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin")
	adminRoutes.Get("/dashboard", h.HandleDashboard)
	adminRoutes.Get("/orders", h.HandleGetAllOrders)
	adminRoutes.Patch("/orders/:id", h.HandleUpdateOrderStatus)
	adminRoutes.Get("/products", h.HandleGetAllProducts)
	adminRoutes.Post("/users", h.HandleCreateAdmin)
	adminRoutes.Post("/users/promote", h.HandlePromoteUser)
}

// HandleDashboard returns the order/product aggregates and the most
// recent orders.
func (h *AdminHandler) HandleDashboard(c *fiber.Ctx) error {
	dashboard, err := h.orders.GetDashboard()
	if err != nil {
		log.Printf("Error computing dashboard stats: %v", err)
		return errorResponse(c, "Failed to load dashboard statistics", err)
	}

	return c.JSON(dashboard)
}

// HandleGetAllOrders retrieves every order with user and item details.
func (h *AdminHandler) HandleGetAllOrders(c *fiber.Ctx) error {
	orders, err := h.orders.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return errorResponse(c, "Could not retrieve orders", err)
	}

	return c.JSON(fiber.Map{
		"orders": orders,
	})
}

// HandleUpdateOrderStatus updates the status of an existing order. The
// status must be one of the five order statuses; any member-to-member
// change is accepted.
func (h *AdminHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var updateData struct {
		Status string `json:"status"`
	}

	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}

	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	if err := h.orders.UpdateOrderStatus(orderID, updateData.Status); err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		return errorResponse(c, "Could not update order status", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Order %s status updated successfully to %s", orderID, updateData.Status),
	})
}

// HandleGetAllProducts retrieves every product regardless of status, with
// category and variants, for the back office product list.
func (h *AdminHandler) HandleGetAllProducts(c *fiber.Ctx) error {
	products, err := h.catalog.ListAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return errorResponse(c, "Could not retrieve products", err)
	}

	return c.JSON(fiber.Map{
		"products": products,
	})
}

// HandleCreateAdmin creates a new user holding the ADMIN role.
func (h *AdminHandler) HandleCreateAdmin(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create admin request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	user := models.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := h.auth.CreateAdmin(&user); err != nil {
		log.Printf("Error creating admin user: %v", err)
		return errorResponse(c, "Could not create admin user", err)
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Admin user created successfully",
		"user":    user,
	})
}

// HandlePromoteUser grants the ADMIN role to an existing user by email.
func (h *AdminHandler) HandlePromoteUser(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing promote request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.auth.PromoteToAdmin(req.Email); err != nil {
		log.Printf("Error promoting user %s: %v", req.Email, err)
		return errorResponse(c, "Could not promote user to admin", err)
	}

	return c.JSON(fiber.Map{
		"email":   req.Email,
		"message": "User promoted to ADMIN",
	})
}
