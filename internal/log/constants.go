package log

const (
	KeyAppName       = "app"
	KeyRequestID     = "requestId"
	KeyProcess       = "process"
	KeyTag           = "tag"
	KeyConfig        = "config"
	KeyToken         = "token"
	KeyEmail         = "email"
	KeyUserID        = "userId"
	KeyCartID        = "cartId"
	KeyCartOwner     = "cartOwner"
	KeySku           = "sku"
	KeyQuantity      = "quantity"
	KeyCart          = "cart"
	KeyCartItems     = "cartItems"
	KeyOrder         = "order"
	KeyOrderID       = "orderId"
	KeyOrderNumber   = "orderNumber"
	KeyOrderItems    = "orderItems"
	KeyOrderStatus   = "orderStatus"
	KeyProduct       = "product"
	KeyProductSku    = "productSku"
	KeyInquiryID     = "inquiryId"
	KeyVisitPath     = "visitPath"
	KeyCacheKey      = "cacheKey"
	KeyDbURL         = "dbUrl"
	KeyPathValues    = "pathValues"
	KeyTraceID       = "traceId"
	KeySpanID        = "spanId"
	KeySubtotal      = "subtotal"
	KeyShippingFee   = "shippingFee"
	KeyDiscount      = "discountAmount"
	KeyTxnID         = "transactionId"
	KeyIdempotency   = "idempotencyKey"
	KeyCouponCode    = "couponCode"
	KeyMailTo        = "mailTo"
	KeyHeader        = "header"
	KeyBody          = "body"
	KeyRequest       = "request"
	KeyRequestHost   = "host"
	KeyRequestIp     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"
	KeyRequestBody   = "requestBody"
)
