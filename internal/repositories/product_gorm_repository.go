package repositories

import (
	"fmt"
	"strings"

	"attire/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves ACTIVE products matching the storefront filter, with
// category, variants and review ratings preloaded. All matches are
// returned; the storefront does not paginate.
func (r *GORMProductRepository) GetAll(filter models.CatalogFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{}).Where("status = ?", models.ProductActive)

	// Gender filter also shows unisex products.
	if filter.Gender != "" {
		query = query.Where("gender IN ?", []string{strings.ToUpper(filter.Gender), models.GenderUnisex})
	}

	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", pattern, pattern)
	}

	if filter.SaleOnly {
		query = query.Where("compare_price IS NOT NULL")
	}

	switch filter.Sort {
	case "price-asc":
		query = query.Order("price ASC")
	case "price-desc":
		query = query.Order("price DESC")
	case "name":
		query = query.Order("products.name ASC")
	default:
		query = query.Order("products.created_at DESC")
	}

	var products []models.Product
	err := query.
		Preload("Category").
		Preload("Variants").
		Preload("Reviews").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetAllAdmin retrieves every product regardless of status, newest first,
// with category and variants for the back office listing.
func (r *GORMProductRepository) GetAllAdmin() ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Preload("Category").
		Preload("Variants").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products for admin: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetBySlug retrieves a single ACTIVE product by its slug with category,
// variants and reviews preloaded.
func (r *GORMProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.
		Preload("Category").
		Preload("Variants").
		Preload("Reviews").
		First(&product, "slug = ? AND status = ?", slug, models.ProductActive).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product %s: %w", slug, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by slug %s: %w", slug, err)
	}
	return &product, nil
}

// Search finds the newest ACTIVE products whose name, description or
// category name contains the query, case-insensitively.
func (r *GORMProductRepository) Search(query string, limit int) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var products []models.Product
	err := r.db.Model(&models.Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("products.status = ?", models.ProductActive).
		Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(categories.name) LIKE ?",
			pattern, pattern, pattern).
		Order("products.created_at DESC").
		Limit(limit).
		Preload("Category").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	for i := range product.Variants {
		if product.Variants[i].ID == "" {
			product.Variants[i].ID = uuid.New().String()
		}
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s for update: %w", product.ID, models.ErrNotFound)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s for deletion: %w", id, models.ErrNotFound)
	}
	return nil
}

// CountActive counts products visible in the storefront.
func (r *GORMProductRepository) CountActive() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("status = ?", models.ProductActive).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active products: %w", err)
	}
	return count, nil
}

// GetCategories retrieves all categories ordered by name.
func (r *GORMProductRepository) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory creates a new category.
func (r *GORMProductRepository) CreateCategory(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetVariantByID retrieves a single variant by its ID.
func (r *GORMProductRepository) GetVariantByID(id string) (*models.Variant, error) {
	var variant models.Variant
	if err := r.db.First(&variant, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("variant %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get variant by ID %s: %w", id, err)
	}
	return &variant, nil
}

// DecrementVariantStock subtracts quantity from the variant's stock as a
// single conditional update. The stock >= quantity guard makes oversell
// impossible even under concurrent verifications: the losing request sees
// zero rows affected and gets ErrInsufficientStock.
func (r *GORMProductRepository) DecrementVariantStock(variantID string, quantity int) error {
	res := r.db.Model(&models.Variant{}).
		Where("id = ? AND stock >= ?", variantID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to decrement stock for variant %s: %w", variantID, res.Error)
	}
	if res.RowsAffected == 0 {
		// Either the variant is gone or its stock dropped below the
		// requested quantity since checkout.
		var count int64
		if err := r.db.Model(&models.Variant{}).Where("id = ?", variantID).Count(&count).Error; err == nil && count == 0 {
			return fmt.Errorf("variant %s: %w", variantID, models.ErrNotFound)
		}
		return fmt.Errorf("variant %s (requested %d): %w", variantID, quantity, models.ErrInsufficientStock)
	}
	return nil
}
