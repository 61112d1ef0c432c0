package domain

// MarketplaceID identifies one of the supported e-commerce platforms.
type MarketplaceID string

const (
	MarketplaceShopee MarketplaceID = "shopee"
	MarketplaceTikTok MarketplaceID = "tiktok"
)

// Valid reports whether the ID names a supported marketplace.
func (id MarketplaceID) Valid() bool {
	return id == MarketplaceShopee || id == MarketplaceTikTok
}
