package entity

// Address is a saved shipping address.
type Address struct {
	ID        int64  `json:"id"`        // Sequential id within the address book.
	Type      string `json:"type"`      // Free-text label, e.g. "Home" or "Office".
	Name      string `json:"name"`      // Recipient.
	Phone     string `json:"phone"`     // Recipient phone.
	Address   string `json:"address"`   // Street lines.
	City      string `json:"city"`      // City.
	State     string `json:"state"`     // State.
	Pincode   string `json:"pincode"`   // 6-digit PIN code.
	IsDefault bool   `json:"isDefault"` // Preferred address.
}
