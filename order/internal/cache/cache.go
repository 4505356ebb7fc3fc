package cache

// Checkout mutates cart and product rows that the cart and product services
// serve from their caches, so it has to drop the same entries they key.
const (
	// KeyCart is the cart service's cache key for a cart by its owner id.
	KeyCart = "carts:%s"
	// KeyProducts is the product service's full catalog listing.
	KeyProducts = "products"
	// KeyProduct is the product service's cache key for a single sku.
	KeyProduct = "products:%s"
)
