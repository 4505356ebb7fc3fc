package cache

const (
	// KeyProducts holds the full catalog listing.
	KeyProducts = "products"
	// KeyProduct is the cache key for a single product by sku.
	KeyProduct = "products:%s"
)
