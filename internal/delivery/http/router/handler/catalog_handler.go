package handler

import (
	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CatalogHandler serves the read-only product catalog.
type CatalogHandler struct {
	catalog usecase.CatalogUsecase
}

func NewCatalogHandler(catalog usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// CategoriesResponse lists the categories with the price range of the whole catalog.
type CategoriesResponse struct {
	Categories []entity.Category   `json:"categories"`
	PriceRange usecase.PriceRange `json:"priceRange"`
}

func (h *CatalogHandler) Categories(c echo.Context) error {
	return response.OK(c, CategoriesResponse{
		Categories: h.catalog.Categories(),
		PriceRange: h.catalog.PriceRange(entity.CategoryAll),
	})
}

// Browse accepts category, minPrice, maxPrice, minRating, inStock, featured,
// q, sort and page query parameters.
func (h *CatalogHandler) Browse(c echo.Context) error {
	filter, err := browseFilterFrom(c)
	if err != nil {
		return err
	}

	return response.OK(c, h.catalog.Browse(filter))
}

func (h *CatalogHandler) Featured(c echo.Context) error {
	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return response.OK(c, h.catalog.Featured(limit))
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.catalog.GetByID(id)
	if err != nil {
		return err
	}

	return response.OK(c, product)
}

func browseFilterFrom(c echo.Context) (*usecase.BrowseFilter, error) {
	var (
		filter   usecase.BrowseFilter
		category string
	)
	// The products page lists in-stock products unless asked otherwise.
	filter.InStockOnly = true

	binder := echo.QueryParamsBinder(c).
		String("category", &category).
		Float64("minRating", &filter.MinRating).
		Bool("inStock", &filter.InStockOnly).
		Bool("featured", &filter.FeaturedOnly).
		String("q", &filter.Search).
		String("sort", &filter.Sort).
		Int("page", &filter.Page)

	query := c.QueryParams()
	if query.Has("minPrice") {
		filter.MinPrice = new(int64)
		binder = binder.Int64("minPrice", filter.MinPrice)
	}
	if query.Has("maxPrice") {
		filter.MaxPrice = new(int64)
		binder = binder.Int64("maxPrice", filter.MaxPrice)
	}

	if err := binder.BindError(); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	filter.Category = entity.CategoryKey(category)
	if filter.Category != "" && filter.Category != entity.CategoryAll && !filter.Category.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown category " + category)
	}

	return &filter, nil
}

func intParam(c echo.Context, name string) (int, error) {
	var v int
	if err := echo.PathParamsBinder(c).Int(name, &v).BindError(); err != nil {
		return 0, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return v, nil
}
