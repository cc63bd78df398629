package impl

import "storefront/internal/domain/entity"

const (
	demoUserID    int64 = 1
	demoFirstName       = "John"
	demoLastName        = "Doe"
	demoPhone           = "+91 98765 43210"
	demoJoinDate        = "2024-01-15"
)

func demoShippingAddress() entity.ShippingAddress {
	return entity.ShippingAddress{
		Name:    "John Doe",
		Phone:   demoPhone,
		Address: "123 Main Street, Apartment 4B",
		City:    "New Delhi",
		State:   "Delhi",
		Pincode: "110001",
	}
}

func strPtr(s string) *string {
	return &s
}

// demoOrders is what an empty ledger reads as.
func demoOrders() []entity.Order {
	return []entity.Order{
		{
			ID:     "HE001",
			Date:   "2025-01-10",
			Status: entity.OrderStatusDelivered,
			Items: []entity.OrderItem{
				{ProductID: 1, Name: "Multi-Tier Storage Rack", Price: 2499, Quantity: 1, Image: "assets/images/storage-rack.jpg"},
				{ProductID: 2, Name: "Non-Stick Cookware Set", Price: 3499, Quantity: 1, Image: "assets/images/cookware-set.jpg"},
			},
			Total:           5998,
			Shipping:        0,
			Tax:             1079,
			GrandTotal:      7077,
			ShippingAddress: demoShippingAddress(),
			TrackingNumber:  strPtr("HE2025001234567"),
		},
		{
			ID:     "HE002",
			Date:   "2025-01-08",
			Status: entity.OrderStatusShipped,
			Items: []entity.OrderItem{
				{ProductID: 3, Name: "Bathroom Organizer Set", Price: 1299, Quantity: 2, Image: "assets/images/bathroom-organizer.jpg"},
			},
			Total:           2598,
			Shipping:        99,
			Tax:             486,
			GrandTotal:      3183,
			ShippingAddress: demoShippingAddress(),
			TrackingNumber:  strPtr("HE2025001234568"),
		},
		{
			ID:     "HE003",
			Date:   "2025-01-05",
			Status: entity.OrderStatusProcessing,
			Items: []entity.OrderItem{
				{ProductID: 4, Name: "Kids Safety Mat", Price: 899, Quantity: 1, Image: "assets/images/kids-mat.jpg"},
			},
			Total:           899,
			Shipping:        0,
			Tax:             162,
			GrandTotal:      1061,
			ShippingAddress: demoShippingAddress(),
		},
	}
}

// demoAddresses is what an empty address book reads as.
func demoAddresses() []entity.Address {
	return []entity.Address{
		{
			ID:        1,
			Type:      "Home",
			Name:      "John Doe",
			Phone:     demoPhone,
			Address:   "123 Main Street, Apartment 4B",
			City:      "New Delhi",
			State:     "Delhi",
			Pincode:   "110001",
			IsDefault: true,
		},
		{
			ID:        2,
			Type:      "Office",
			Name:      "John Doe",
			Phone:     demoPhone,
			Address:   "456 Business Park, Floor 3",
			City:      "Gurgaon",
			State:     "Haryana",
			Pincode:   "122001",
			IsDefault: false,
		},
	}
}
