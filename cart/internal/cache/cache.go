package cache

// KeyCart is the cache key for a cart looked up by its owner id.
const KeyCart = "carts:%s"
