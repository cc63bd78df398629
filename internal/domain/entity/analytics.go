package entity

// PurchaseRecord is one order.placed event as recorded by the analytics worker.
type PurchaseRecord struct {
	TransactionID string `json:"transactionId"`
	Value         int64  `json:"value"`
	Currency      string `json:"currency"`
	ItemCount     int    `json:"itemCount"`
	PlacedAt      string `json:"placedAt"`
	RequestID     string `json:"requestId,omitempty"`
}

// PurchaseSummary aggregates recorded purchases.
type PurchaseSummary struct {
	Orders       int    `json:"orders"`
	Revenue      int64  `json:"revenue"`
	Items        int    `json:"items"`
	AverageOrder int64  `json:"averageOrder"`
	Currency     string `json:"currency"`
}
