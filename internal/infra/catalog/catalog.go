// Package catalog serves the embedded, read-only product database.
package catalog

import (
	_ "embed"
	"encoding/json"
	"slices"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"go.uber.org/fx"
)

//go:embed products.json
var productsJSON []byte

type staticCatalog struct {
	products []entity.Product
	byID     map[int]int
}

// New decodes the embedded product table.
func New() (repository.ProductCatalog, error) {
	return Load(productsJSON)
}

// Load builds a catalog from a JSON product array. Ids must be unique and categories known.
func Load(data []byte) (repository.ProductCatalog, error) {
	var products []entity.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, errors.Wrap(err, "failed to decode product catalog")
	}

	byID := make(map[int]int, len(products))
	for i, p := range products {
		if _, dup := byID[p.ID]; dup {
			return nil, errors.Errorf("duplicate product id %d", p.ID)
		}
		if !p.Category.Valid() {
			return nil, errors.Errorf("product %d has unknown category %q", p.ID, p.Category)
		}
		if p.Discount == 0 {
			products[i].Discount = p.DiscountPercent()
		}
		byID[p.ID] = i
	}

	return &staticCatalog{products: products, byID: byID}, nil
}

func (c *staticCatalog) All() []entity.Product {
	return slices.Clone(c.products)
}

func (c *staticCatalog) GetByID(id int) (*entity.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	p := c.products[i]

	return &p, true
}

// Module provides the product catalog FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
