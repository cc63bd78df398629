package entity

import (
	"math"

	"storefront/internal/errors"
)

// MaxCartSubtotal bounds the cart subtotal so delivery and tax still fit in an int64.
const MaxCartSubtotal int64 = math.MaxInt64 / 4

// ErrCartOutOfRange is returned when a quantity or the totals it implies would
// not fit the cart's integer arithmetic.
var ErrCartOutOfRange = errors.New("cart quantity out of range")

// CartLineItem is one product-and-quantity pair in the cart. The product fields
// are a snapshot taken when the product was first added.
type CartLineItem struct {
	ProductID int         `json:"id"`                 // Product id, unique within a cart.
	Title     string      `json:"title"`              // Product title at add time.
	Category  CategoryKey `json:"category,omitempty"` // Product category at add time.
	Price     int64       `json:"price"`              // Unit price at add time.
	Image     string      `json:"image"`              // Product image at add time.
	Quantity  int         `json:"quantity"`           // Always >= 1.
}

// LineTotal is price x quantity.
func (i CartLineItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// NewCartLineItem snapshots a product into a line item.
func NewCartLineItem(product *Product, quantity int) CartLineItem {
	return CartLineItem{
		ProductID: product.ID,
		Title:     product.Title,
		Category:  product.Category,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  quantity,
	}
}

// Cart is the ordered list of line items; insertion order is display order.
type Cart struct {
	Items []CartLineItem
}

// NewCart wraps persisted items, rejecting data that breaks the cart invariants.
func NewCart(items []CartLineItem) (*Cart, error) {
	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, errors.Errorf("line item %d has quantity %d", item.ProductID, item.Quantity)
		}
		if _, dup := seen[item.ProductID]; dup {
			return nil, errors.Errorf("duplicate line item for product %d", item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
	}
	if err := checkRange(items); err != nil {
		return nil, err
	}

	return &Cart{Items: items}, nil
}

// checkRange reports whether the item count and subtotal are representable.
func checkRange(items []CartLineItem) error {
	var (
		subtotal int64
		count    int
	)
	for _, item := range items {
		if item.Quantity < 1 || item.Price < 0 || count > math.MaxInt-item.Quantity {
			return ErrCartOutOfRange
		}
		count += item.Quantity

		if item.Price > 0 && int64(item.Quantity) > MaxCartSubtotal/item.Price {
			return ErrCartOutOfRange
		}
		line := item.LineTotal()
		if subtotal > MaxCartSubtotal-line {
			return ErrCartOutOfRange
		}
		subtotal += line
	}

	return nil
}

func (c *Cart) indexOf(productID int) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}

	return -1
}

// Add increments the line for product, or appends a new one. The cart is left
// untouched when the result would be out of range.
func (c *Cart) Add(product *Product, quantity int) error {
	if quantity < 1 {
		return ErrCartOutOfRange
	}

	next := c.Clone()
	if idx := next.indexOf(product.ID); idx >= 0 {
		if next.Items[idx].Quantity > math.MaxInt-quantity {
			return ErrCartOutOfRange
		}
		next.Items[idx].Quantity += quantity
	} else {
		next.Items = append(next.Items, NewCartLineItem(product, quantity))
	}
	if err := checkRange(next.Items); err != nil {
		return err
	}
	c.Items = next.Items

	return nil
}

// Remove deletes the line for productID and reports whether one existed.
func (c *Cart) Remove(productID int) bool {
	idx := c.indexOf(productID)
	if idx < 0 {
		return false
	}

	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)

	return true
}

// SetQuantity sets the quantity of an existing line. A quantity of zero or less
// removes the line. It reports whether the cart changed.
func (c *Cart) SetQuantity(productID, quantity int) (bool, error) {
	if quantity <= 0 {
		return c.Remove(productID), nil
	}

	idx := c.indexOf(productID)
	if idx < 0 {
		return false, nil
	}

	next := c.Clone()
	next.Items[idx].Quantity = quantity
	if err := checkRange(next.Items); err != nil {
		return false, err
	}
	c.Items = next.Items

	return true, nil
}

// RemoveOrdered takes ordered quantities out of the cart. A line left with no
// units is removed; units added after the order snapshot stay.
func (c *Cart) RemoveOrdered(ordered []CartLineItem) {
	for _, o := range ordered {
		idx := c.indexOf(o.ProductID)
		if idx < 0 {
			continue
		}
		if c.Items[idx].Quantity <= o.Quantity {
			c.Remove(o.ProductID)

			continue
		}
		c.Items[idx].Quantity -= o.Quantity
	}
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.Items = []CartLineItem{}
}

// Subtotal is the sum of price x quantity.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.LineTotal()
	}

	return total
}

// ItemCount is the sum of quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}

	return count
}

// Clone returns a deep copy.
func (c *Cart) Clone() *Cart {
	items := make([]CartLineItem, len(c.Items))
	copy(items, c.Items)

	return &Cart{Items: items}
}

// Summary builds the view the pages render.
func (c *Cart) Summary() CartSummary {
	items := make([]CartLineItem, len(c.Items))
	copy(items, c.Items)
	total := c.Subtotal()

	return CartSummary{
		Items:          items,
		ItemCount:      c.ItemCount(),
		Total:          total,
		FormattedTotal: FormatPrice(total),
	}
}

// CartSummary is the derived cart view: items, count, total and formatted total.
type CartSummary struct {
	Items          []CartLineItem `json:"items"`
	ItemCount      int            `json:"itemCount"`
	Total          int64          `json:"total"`
	FormattedTotal string         `json:"formattedTotal"`
}
