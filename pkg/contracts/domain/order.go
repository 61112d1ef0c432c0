package domain

// OrderRow is one normalized, shipping-ready order line. Each row carries
// exactly one SKU; lines that encoded several SKUs in the export have been
// expanded into one row per SKU with the monetary fields split so the totals
// are preserved.
type OrderRow struct {
	OrderID        string        `json:"order_id"`
	Status         string        `json:"status"`
	TrackingNumber string        `json:"tracking_number"`
	CreatedAt      string        `json:"created_at"`
	PaymentMethod  string        `json:"payment_method"`
	SKU            string        `json:"sku"`
	Price          int64         `json:"price"`
	ShippingFee    int64         `json:"shipping_fee"`
	FinalPrice     int64         `json:"final_price"`
	Quantity       int           `json:"quantity"`
	City           string        `json:"city"`
	Province       string        `json:"province"`
	Platform       string        `json:"platform"`
	BuyerUsername  string        `json:"buyer_username"`
	Recipient      string        `json:"recipient"`
	Phone          string        `json:"phone"`
	Address        string        `json:"address"`
	OperatorTag    string        `json:"operator_tag"`
	Marketplace    MarketplaceID `json:"marketplace"`
}

// OrderResult is the outcome of one orders-pipeline invocation.
type OrderResult struct {
	Rows  []OrderRow `json:"rows"`
	Stats BatchStats `json:"stats"`
}
