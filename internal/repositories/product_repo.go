package repositories

import (
	"attire/internal/models"
)

// ProductRepository defines the interface for catalog data access.
type ProductRepository interface {
	GetAll(filter models.CatalogFilter) ([]models.Product, error)
	GetAllAdmin() ([]models.Product, error) // every status, for the back office
	GetByID(id string) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	Search(query string, limit int) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	CountActive() (int64, error)

	GetCategories() ([]models.Category, error)
	CreateCategory(category *models.Category) error

	GetVariantByID(id string) (*models.Variant, error)
	// DecrementVariantStock atomically subtracts quantity from the
	// variant's stock, refusing when the remaining stock is insufficient.
	DecrementVariantStock(variantID string, quantity int) error
}
