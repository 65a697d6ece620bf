package services

import (
	"fmt"
	"log"

	"attire/internal/models"
	"attire/internal/repositories"
)

// Dashboard bundles the admin dashboard aggregates with the most recent
// orders.
type Dashboard struct {
	repositories.DashboardStats
	RecentOrders []models.Order `json:"recentOrders"`
}

// OrderService handles business logic related to orders, including the
// admin back office operations.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	events      EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, events EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		events:      events,
	}
}

// GetOrdersForUser retrieves a user's order history, newest first.
func (s *OrderService) GetOrdersForUser(userID string) ([]models.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", models.ErrAuthRequired)
	}
	return s.orderRepo.GetByUser(userID)
}

// GetAllOrders retrieves every order for the admin order list.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// UpdateOrderStatus updates the status of an existing order. The status
// is validated against the five-value set only; any member-to-member
// change is accepted, there is no transition table.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("invalid order status %q: %w", status, models.ErrValidation)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	if s.events != nil {
		err := s.events.PublishOrderEvent("order.status_updated", map[string]interface{}{
			"orderID": id,
			"status":  status,
		})
		if err != nil {
			log.Printf("Warning: failed to publish status update event for order %s: %v", id, err)
		}
	}

	return nil
}

// GetDashboard computes the admin dashboard: order counts, active product
// count, revenue over non-cancelled orders and the five most recent
// orders. Everything is aggregated fresh on each call.
func (s *OrderService) GetDashboard() (*Dashboard, error) {
	totalOrders, err := s.orderRepo.Count()
	if err != nil {
		return nil, err
	}
	pendingOrders, err := s.orderRepo.CountByStatus(models.OrderPending)
	if err != nil {
		return nil, err
	}
	totalProducts, err := s.productRepo.CountActive()
	if err != nil {
		return nil, err
	}
	revenue, err := s.orderRepo.RevenueTotal()
	if err != nil {
		return nil, err
	}
	recent, err := s.orderRepo.GetRecent(5)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		DashboardStats: repositories.DashboardStats{
			TotalOrders:   totalOrders,
			PendingOrders: pendingOrders,
			TotalProducts: totalProducts,
			TotalRevenue:  revenue,
		},
		RecentOrders: recent,
	}, nil
}
