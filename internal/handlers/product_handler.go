package handlers

import (
	"log"

	"attire/internal/models"
	"attire/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the storefront catalog.
type ProductHandler struct {
	catalog *services.CatalogService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app. The
// static /products/categories route is registered before the slug route
// so it is not captured by the :slug parameter.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/categories", h.HandleListCategories)
	productRoutes.Get("/:slug", h.HandleGetProductBySlug)

	router.Get("/search", h.HandleSearch)
}

// HandleListProducts lists ACTIVE products filtered and sorted by the
// query parameters: gender, category, search, sale, sort.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := models.CatalogFilter{
		Gender:       c.Query("gender"),
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
		SaleOnly:     c.Query("sale") == "true",
		Sort:         c.Query("sort"),
	}

	products, err := h.catalog.ListProducts(filter)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return errorResponse(c, "Could not retrieve products", err)
	}

	return c.JSON(fiber.Map{
		"products": products,
	})
}

// HandleListCategories lists every category for the filter sidebar.
func (h *ProductHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return errorResponse(c, "Could not retrieve categories", err)
	}

	return c.JSON(fiber.Map{
		"categories": categories,
	})
}

// HandleGetProductBySlug returns a single ACTIVE product for the detail
// page, with category, variants and reviews.
func (h *ProductHandler) HandleGetProductBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	product, err := h.catalog.GetProductBySlug(slug)
	if err != nil {
		log.Printf("Error getting product by slug %s: %v", slug, err)
		return errorResponse(c, "Could not retrieve product", err)
	}

	return c.JSON(product)
}

// HandleSearch serves the header quick search. Queries shorter than two
// characters return an empty list without querying the store.
func (h *ProductHandler) HandleSearch(c *fiber.Ctx) error {
	products, err := h.catalog.SearchProducts(c.Query("q"))
	if err != nil {
		log.Printf("Error searching products: %v", err)
		return errorResponse(c, "Failed to search products", err)
	}

	return c.JSON(fiber.Map{
		"products": products,
	})
}
