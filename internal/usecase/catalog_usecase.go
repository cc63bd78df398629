package usecase

import "storefront/internal/domain/entity"

// Sort keys accepted by Browse.
const (
	SortDefault   = "default"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortNewest    = "newest"
	SortPopular   = "popular"
)

// BrowseFilter is the products page filter state. Zero values mean "no filter"
// except where Browse applies the page defaults.
type BrowseFilter struct {
	Category     entity.CategoryKey
	MinPrice     *int64
	MaxPrice     *int64
	MinRating    float64
	InStockOnly  bool
	FeaturedOnly bool
	Search       string
	Sort         string
	Page         int
}

// BrowseResult is one "load more" window over the filtered products.
type BrowseResult struct {
	Products []entity.Product `json:"products"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	HasMore  bool             `json:"hasMore"`
}

// PriceRange is the lowest and highest price of a product set.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// CatalogUsecase defines the interface for browsing the product catalog.
type CatalogUsecase interface {
	GetByID(id int) (*entity.Product, error)
	ByCategory(category entity.CategoryKey) []entity.Product
	Search(text string) []entity.Product
	Featured(limit int) []entity.Product
	Browse(filter *BrowseFilter) *BrowseResult
	PriceRange(category entity.CategoryKey) PriceRange
	Categories() []entity.Category
}
