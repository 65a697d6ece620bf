package services

import (
	"fmt"
	"strings"

	"attire/internal/models"
	"attire/internal/repositories"
)

// searchResultLimit caps the quick-search result set.
const searchResultLimit = 3

// minSearchLength is the minimum trimmed query length; shorter queries
// return an empty result without touching the store.
const minSearchLength = 2

// CatalogService handles business logic for the product catalog.
type CatalogService struct {
	repo repositories.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// ListProducts retrieves storefront products matching the filter.
func (s *CatalogService) ListProducts(filter models.CatalogFilter) ([]models.Product, error) {
	return s.repo.GetAll(filter)
}

// GetProductBySlug retrieves a single ACTIVE product for the detail page.
func (s *CatalogService) GetProductBySlug(slug string) (*models.Product, error) {
	if slug == "" {
		return nil, fmt.Errorf("slug is required: %w", models.ErrValidation)
	}
	return s.repo.GetBySlug(slug)
}

// SearchProducts performs the header quick search: top matches by name,
// description or category name. Queries shorter than two characters yield
// an empty result set without a store query.
func (s *CatalogService) SearchProducts(query string) ([]models.Product, error) {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < minSearchLength {
		return []models.Product{}, nil
	}
	return s.repo.Search(trimmed, searchResultLimit)
}

// ListCategories retrieves all categories for the filter sidebar.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.repo.GetCategories()
}

// ListAllProducts retrieves every product regardless of status for the
// admin product list.
func (s *CatalogService) ListAllProducts() ([]models.Product, error) {
	return s.repo.GetAllAdmin()
}

// CreateProduct creates a new catalog entry.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}

// UpdateProduct updates an existing catalog entry.
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *CatalogService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
