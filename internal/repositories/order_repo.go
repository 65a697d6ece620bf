package repositories

import "attire/internal/models"

// DashboardStats holds the admin dashboard aggregates, recomputed by
// full-table aggregation on every request.
type DashboardStats struct {
	TotalOrders   int64   `json:"totalOrders"`
	PendingOrders int64   `json:"pendingOrders"`
	TotalProducts int64   `json:"totalProducts"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	GetAll() ([]models.Order, error)
	GetRecent(limit int) ([]models.Order, error)
	UpdateStatus(id string, status string) error
	// MarkPaid sets the order to PROCESSING and stores the gateway
	// payment id in one update.
	MarkPaid(id string, paymentID string) error

	Count() (int64, error)
	CountByStatus(status string) (int64, error)
	// RevenueTotal sums order totals over all non-cancelled orders.
	RevenueTotal() (float64, error)
}
