package http

const (
	KeyHeaderContentType  = "Content-Type"
	KeyHeaderRequestID    = "X-Request-Id"
	ValueHeaderJson       = "application/json"
	KeyHeaderCorsOrigin   = "Access-Control-Allow-Origin"
	KeyHeaderCorsMethods  = "Access-Control-Allow-Methods"
	KeyHeaderCorsHeaders  = "Access-Control-Allow-Headers"
	KeyHeaderCorsMaxAge   = "Access-Control-Max-Age"
	ValueHeaderCorsOrigin = "*"
)
