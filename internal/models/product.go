package models

import "time"

// Product statuses. Only ACTIVE products are visible in the storefront.
const (
	ProductActive   = "ACTIVE"
	ProductInactive = "INACTIVE"
	ProductArchived = "ARCHIVED"
)

// Gender targeting for a product. UNISEX products appear under every
// gender filter.
const (
	GenderMen    = "MEN"
	GenderWomen  = "WOMEN"
	GenderUnisex = "UNISEX"
)

// Category groups products for browsing and filtering.
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;type:varchar(100)" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product is a catalog entry. Purchasable stock lives on its variants,
// not on the product itself.
type Product struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name         string    `json:"name" gorm:"type:varchar(200)" validate:"required,min=3,max=200"`
	Slug         string    `json:"slug" gorm:"uniqueIndex;type:varchar(200)" validate:"required"`
	Description  string    `json:"description" validate:"omitempty,max=2000"`
	Price        float64   `json:"price" validate:"required,gt=0"`
	ComparePrice *float64  `json:"compare_price"` // non-nil marks the product as on sale
	Status       string    `json:"status" gorm:"type:varchar(10);default:ACTIVE" validate:"omitempty,oneof=ACTIVE INACTIVE ARCHIVED"`
	Gender       string    `json:"gender" gorm:"type:varchar(10);default:UNISEX" validate:"omitempty,oneof=MEN WOMEN UNISEX"`
	Images       []string  `json:"images" gorm:"serializer:json"` // ordered image URIs
	CategoryID   string    `json:"category_id" gorm:"type:varchar(36)"`
	Category     *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Variants     []Variant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
	Reviews      []Review  `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Variant is a purchasable size/color combination of a product with its
// own stock counter. Stock must never go negative; decrements go through
// ProductRepository.DecrementVariantStock which enforces the guard.
type Variant struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID string    `json:"product_id" gorm:"index;type:varchar(36)" validate:"required"`
	Size      string    `json:"size" gorm:"type:varchar(20)"`
	Color     string    `json:"color" gorm:"type:varchar(50)"`
	SKU       string    `json:"sku" gorm:"type:varchar(100)"`
	Stock     int       `json:"stock" validate:"gte=0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Review is a customer rating for a product.
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID string    `json:"product_id" gorm:"index;type:varchar(36)" validate:"required"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36)" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" validate:"omitempty,max=1000"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CatalogFilter holds the optional storefront listing filters. The zero
// value lists every ACTIVE product, newest first.
type CatalogFilter struct {
	Gender       string // matches the given gender OR UNISEX
	CategorySlug string
	Search       string // case-insensitive substring over name/description
	SaleOnly     bool   // restrict to products with a compare price
	Sort         string // "price-asc", "price-desc", "name"; default newest first
}
