package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/absrenew/storefront/internal/common"
)

var Tracer = otel.Tracer(common.AppOrderService)
