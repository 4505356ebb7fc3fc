package common

const (
	AppStorefront          = "storefront"
	AppCartService         = "cart-service"
	AppOrderService        = "order-service"
	AppProductService      = "product-service"
	AppUserService         = "user-service"
	AppShopService         = "shop-service"
	AppNotificationWorker  = "notification-worker"
	AudienceStorefrontUser = "storefront-user"

	UrlCartService    = "http://cart-service:8080/carts"
	UrlProductService = "http://product-service:8080/products"

	// Guest cart identity cookie, see the cart controller.
	CartCookieName   = "cartId"
	CartCookieMaxAge = 30 * 24 * 60 * 60
)
