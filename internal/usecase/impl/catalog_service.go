package impl

import (
	"slices"
	"strings"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"
)

const (
	defaultFeaturedLimit  = 6
	browsePageSize        = 12
	browseDefaultMinPrice = 799
	browseDefaultMaxPrice = 2499
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	catalog repository.ProductCatalog
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(catalog repository.ProductCatalog) usecase.CatalogUsecase {
	return &catalogService{catalog: catalog}
}

func (srv *catalogService) GetByID(id int) (*entity.Product, error) {
	product, ok := srv.catalog.GetByID(id)
	if !ok {
		return nil, domainerrors.ErrProductNotFound
	}

	return product, nil
}

// ByCategory returns every product of category; "" and "all" return the whole catalog.
func (srv *catalogService) ByCategory(category entity.CategoryKey) []entity.Product {
	return filterProducts(srv.catalog.All(), func(p *entity.Product) bool {
		return matchesCategory(p, category)
	})
}

// Search matches title, description or category name, case-insensitively.
func (srv *catalogService) Search(text string) []entity.Product {
	needle := strings.ToLower(strings.TrimSpace(text))

	return filterProducts(srv.catalog.All(), func(p *entity.Product) bool {
		return matchesSearch(p, needle)
	})
}

// Featured returns up to limit featured products; limit <= 0 means the home page default.
func (srv *catalogService) Featured(limit int) []entity.Product {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}

	featured := filterProducts(srv.catalog.All(), func(p *entity.Product) bool { return p.Featured })
	if len(featured) > limit {
		featured = featured[:limit]
	}

	return featured
}

// Browse applies the products page filters, sort and "load more" paging.
func (srv *catalogService) Browse(filter *usecase.BrowseFilter) *usecase.BrowseResult {
	minPrice := int64(browseDefaultMinPrice)
	if filter.MinPrice != nil {
		minPrice = *filter.MinPrice
	}
	maxPrice := int64(browseDefaultMaxPrice)
	if filter.MaxPrice != nil {
		maxPrice = *filter.MaxPrice
	}
	needle := strings.ToLower(strings.TrimSpace(filter.Search))

	products := filterProducts(srv.catalog.All(), func(p *entity.Product) bool {
		switch {
		case !matchesCategory(p, filter.Category):
			return false
		case p.Price < minPrice || p.Price > maxPrice:
			return false
		case p.Rating < filter.MinRating:
			return false
		case filter.InStockOnly && !p.InStock:
			return false
		case filter.FeaturedOnly && !p.Featured:
			return false
		default:
			return matchesSearch(p, needle)
		}
	})

	sortProducts(products, filter.Sort)

	page := max(filter.Page, 1)
	shown := min(page*browsePageSize, len(products))

	return &usecase.BrowseResult{
		Products: products[:shown],
		Total:    len(products),
		Page:     page,
		HasMore:  shown < len(products),
	}
}

// PriceRange returns the lowest and highest price in the category.
func (srv *catalogService) PriceRange(category entity.CategoryKey) usecase.PriceRange {
	products := srv.ByCategory(category)
	if len(products) == 0 {
		return usecase.PriceRange{}
	}

	r := usecase.PriceRange{Min: products[0].Price, Max: products[0].Price}
	for _, p := range products[1:] {
		r.Min = min(r.Min, p.Price)
		r.Max = max(r.Max, p.Price)
	}

	return r
}

func (srv *catalogService) Categories() []entity.Category {
	return entity.Categories()
}

func filterProducts(products []entity.Product, keep func(*entity.Product) bool) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for i := range products {
		if keep(&products[i]) {
			out = append(out, products[i])
		}
	}

	return out
}

func matchesCategory(p *entity.Product, category entity.CategoryKey) bool {
	return category == "" || category == entity.CategoryAll || p.Category == category
}

func matchesSearch(p *entity.Product, needle string) bool {
	if needle == "" {
		return true
	}

	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) ||
		strings.Contains(strings.ToLower(p.Category.Name()), needle)
}

// sortProducts orders in place. The default puts featured products first, then ascending id.
func sortProducts(products []entity.Product, key string) {
	switch key {
	case usecase.SortPriceLow:
		slices.SortStableFunc(products, func(a, b entity.Product) int { return cmpInt64(a.Price, b.Price) })
	case usecase.SortPriceHigh:
		slices.SortStableFunc(products, func(a, b entity.Product) int { return cmpInt64(b.Price, a.Price) })
	case usecase.SortRating:
		slices.SortStableFunc(products, func(a, b entity.Product) int { return cmpFloat(b.Rating, a.Rating) })
	case usecase.SortNewest:
		slices.SortStableFunc(products, func(a, b entity.Product) int { return b.ID - a.ID })
	case usecase.SortPopular:
		slices.SortStableFunc(products, func(a, b entity.Product) int { return b.Reviews - a.Reviews })
	default:
		slices.SortStableFunc(products, func(a, b entity.Product) int {
			if a.Featured != b.Featured {
				if a.Featured {
					return -1
				}

				return 1
			}

			return a.ID - b.ID
		})
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
