package repository

import "storefront/internal/domain/entity"

// ProductCatalog is the read-only product data source.
type ProductCatalog interface {
	// All returns every product in catalog order. Callers may reorder the slice.
	All() []entity.Product

	// GetByID looks a product up by id.
	GetByID(id int) (*entity.Product, bool)
}
