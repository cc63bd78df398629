// Package entity contains the core business objects of the storefront.
package entity

import "math"

// CategoryKey identifies a product category.
type CategoryKey string

const (
	CategoryStorage  CategoryKey = "storage"
	CategoryCookware CategoryKey = "cookware"
	CategoryBathroom CategoryKey = "bathroom"
	CategoryKids     CategoryKey = "kids"
	CategoryMats     CategoryKey = "mats"
	CategorySofa     CategoryKey = "sofa"
	CategoryTrash    CategoryKey = "trash"

	// CategoryAll is the pseudo category used by filters to mean "no filter".
	CategoryAll CategoryKey = "all"
)

// Category pairs a key with the name shown to shoppers.
type Category struct {
	Key  CategoryKey `json:"key"`
	Name string      `json:"name"`
}

//nolint:gochecknoglobals
var categories = []Category{
	{Key: CategoryStorage, Name: "Storage Organizers"},
	{Key: CategoryCookware, Name: "Cookware"},
	{Key: CategoryBathroom, Name: "Bathroom Essentials"},
	{Key: CategoryKids, Name: "Kids Products"},
	{Key: CategoryMats, Name: "Floor Mats"},
	{Key: CategorySofa, Name: "Sofa Covers"},
	{Key: CategoryTrash, Name: "Trash Solutions"},
}

// Categories returns the category table in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)

	return out
}

// Name returns the display name of the category, or the raw key when unknown.
func (k CategoryKey) Name() string {
	for _, c := range categories {
		if c.Key == k {
			return c.Name
		}
	}

	return string(k)
}

// Valid reports whether k is one of the known categories.
func (k CategoryKey) Valid() bool {
	for _, c := range categories {
		if c.Key == k {
			return true
		}
	}

	return false
}

// Product is a read-only catalog record.
type Product struct {
	ID            int         `json:"id"`            // Unique catalog id.
	Title         string      `json:"title"`         // Display title.
	Category      CategoryKey `json:"category"`      // Category key.
	Price         int64       `json:"price"`         // Current price in rupees.
	OriginalPrice int64       `json:"originalPrice"` // Price before discount.
	Description   string      `json:"description"`   // Long description.
	Image         string      `json:"image"`         // Image URL or asset path.
	Rating        float64     `json:"rating"`        // Average rating, 0 to 5.
	Reviews       int         `json:"reviews"`       // Number of reviews.
	InStock       bool        `json:"inStock"`       // Availability flag.
	Featured      bool        `json:"featured"`      // Shown on the home page.
	Discount      int         `json:"discount"`      // Display-only discount percent.
}

// DiscountPercent is round((original - price) / original * 100), or 0 without an original price.
func (p *Product) DiscountPercent() int {
	if p.OriginalPrice <= 0 {
		return 0
	}

	return int(math.Round(float64(p.OriginalPrice-p.Price) / float64(p.OriginalPrice) * 100))
}
