package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"

	commonErrors "github.com/absrenew/storefront/internal/errors"
	"github.com/absrenew/storefront/internal/log"
	"github.com/absrenew/storefront/internal/repository"
	"github.com/absrenew/storefront/notification/pkg/mail"
	"github.com/absrenew/storefront/order/internal/cache"
	"github.com/absrenew/storefront/order/internal/otel"
	"github.com/absrenew/storefront/order/internal/payment"
	"github.com/absrenew/storefront/order/pkg/request"
	"github.com/absrenew/storefront/order/pkg/response"
	"github.com/absrenew/storefront/order/pkg/status"
)

type OrderService struct {
	pool      *pgxpool.Pool
	queries   *repository.Queries
	cache     *redis.Client
	provider  payment.Provider
	mailQueue chan<- mail.Message
}

func NewOrderService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
	provider payment.Provider,
	mailQueue chan<- mail.Message,
) OrderService {
	return OrderService{
		pool:      pool,
		queries:   queries,
		cache:     cache,
		provider:  provider,
		mailQueue: mailQueue,
	}
}

// Checkout assembles an order from the checked cart lines, persists it with
// its items in one transaction, then drives the payment. Only when the
// payment completed do the follow-up side effects run, both best effort:
// marking units sold and the confirmation mail.
func (s OrderService) Checkout(
	c context.Context,
	userId uuid.UUID,
	param request.Checkout,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService Checkout").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyCartOwner, param.CartId).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("initialized transaction")
	defer s.rollback(c, tx, span, logger)

	queries := s.queries.WithTx(tx)

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	cart, err := queries.FindCartByOwner(c, param.CartId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrCartNotFound
		} else {
			err = fmt.Errorf("failed finding cart by owner=%s with error=%w", param.CartId, err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Info().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "finding checked cart items").Logger()
	logger.Info().Msg("finding checked cart items")
	items, err := queries.FindCheckedCartItems(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding checked cart items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if len(items) == 0 {
		err = commonErrors.ErrNoCheckedItems
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("found %d checked cart items", len(items))

	subtotal := decimal.Zero
	for _, item := range items {
		price := repository.DecimalFromNumeric(item.Price)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	shippingFee := ShippingFee(param.ShippingMethod, subtotal)
	discount := Discount(param.CouponCode, subtotal)
	total := Total(subtotal, shippingFee, discount)
	logger = logger.With().
		Str(log.KeySubtotal, subtotal.String()).
		Str(log.KeyShippingFee, shippingFee.String()).
		Str(log.KeyDiscount, discount.String()).
		Logger()
	logger.Info().Msgf("priced order total=%s", total.String())

	logger = logger.With().Str(log.KeyProcess, "inserting order").Logger()
	logger.Info().Msg("inserting order")
	order, err := queries.InsertOrder(c, repository.InsertOrderParams{
		ID:             uuid.New(),
		OrderNumber:    newOrderNumber(),
		UserID:         userId,
		Status:         status.Pending.String(),
		Subtotal:       repository.NumericFromDecimal(subtotal),
		ShippingFee:    repository.NumericFromDecimal(shippingFee),
		DiscountAmount: repository.NumericFromDecimal(discount),
		Total:          repository.NumericFromDecimal(total),
		CouponCode:     param.CouponCode,
		ShippingMethod: param.ShippingMethod,
		Recipient:      param.Recipient,
		Address:        param.Address,
		Phone:          param.Phone,
		PaymentMethod:  param.PaymentMethod,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting order with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger = logger.With().
		Str(log.KeyOrderID, order.ID.String()).
		Str(log.KeyOrderNumber, order.OrderNumber).
		Logger()
	logger.Info().Msg("inserted order")

	logger = logger.With().Str(log.KeyProcess, "inserting order items").Logger()
	logger.Info().Msg("inserting order items")
	orderItems := make([]repository.OrderItem, 0, len(items))
	for _, item := range items {
		orderItem := repository.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			Sku:        item.Sku,
			Name:       item.Name,
			Brand:      item.Brand,
			Model:      item.Model,
			Quantity:   item.Quantity,
			OrderPrice: item.Price,
		}
		err = queries.InsertOrderItem(c, repository.InsertOrderItemParams{
			ID:         orderItem.ID,
			OrderID:    orderItem.OrderID,
			Sku:        orderItem.Sku,
			Name:       orderItem.Name,
			Brand:      orderItem.Brand,
			Model:      orderItem.Model,
			Quantity:   orderItem.Quantity,
			OrderPrice: orderItem.OrderPrice,
		})
		if err != nil {
			err = fmt.Errorf("failed inserting order item sku=%s with error=%w", item.Sku, err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Order{}, err
		}
		orderItems = append(orderItems, orderItem)
	}
	logger.Info().Msgf("inserted %d order items", len(orderItems))

	logger = logger.With().Str(log.KeyProcess, "removing purchased cart items").Logger()
	logger.Info().Msg("removing purchased cart items")
	err = queries.DeleteCheckedCartItems(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed removing purchased cart items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("removed purchased cart items")

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("committed transaction")

	s.invalidateCartCache(c, param.CartId, logger)

	order, err = s.drivePayment(c, order, total, logger)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	if order.Status == status.PaymentCompleted.String() {
		s.markUnitsSold(c, orderItems, logger)
		s.enqueueConfirmation(c, order, logger)
	}

	return order.Response(orderItems), nil
}

// invalidateCartCache drops the cart service's cached snapshot after the
// checked lines were consumed. A stale snapshot would keep serving the
// pre-checkout cart until the TTL runs out.
func (s OrderService) invalidateCartCache(c context.Context, owner string, logger zerolog.Logger) {
	cacheKey := fmt.Sprintf(cache.KeyCart, owner)
	logger = logger.With().
		Str(log.KeyProcess, "invalidating cart cache").
		Str(log.KeyCacheKey, cacheKey).
		Logger()
	err := s.cache.Del(c, cacheKey).Err()
	if err != nil {
		err = fmt.Errorf("failed invalidating cart cache with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("invalidated cart cache")
}

// drivePayment walks the order through payment_pending into payment_completed.
// The order id doubles as the idempotency key so a retried request can never
// charge the same order twice.
func (s OrderService) drivePayment(
	c context.Context,
	order repository.Order,
	total decimal.Decimal,
	logger zerolog.Logger,
) (repository.Order, error) {
	logger = logger.With().Str(log.KeyProcess, "requesting payment").Logger()
	logger.Info().Msg("requesting payment")

	err := s.queries.UpdateOrderTransaction(c, repository.UpdateOrderTransactionParams{
		ID:     order.ID,
		Status: status.PaymentPending.String(),
	})
	if err != nil {
		return repository.Order{}, fmt.Errorf(
			"failed updating order to %s with error=%w",
			status.PaymentPending,
			err,
		)
	}
	order.Status = status.PaymentPending.String()

	result, err := s.provider.RequestPayment(c, payment.Request{
		IdempotencyKey: order.ID.String(),
		OrderNumber:    order.OrderNumber,
		Amount:         total,
		Method:         order.PaymentMethod,
	})
	if err != nil {
		return repository.Order{}, fmt.Errorf("failed requesting payment with error=%w", err)
	}
	if !result.Approved {
		logger.Info().
			Str(log.KeyTxnID, result.TransactionID).
			Msgf("payment not approved: %s", result.Message)
		return order, nil
	}
	logger = logger.With().Str(log.KeyTxnID, result.TransactionID).Logger()
	logger.Info().Msg("payment approved")

	err = s.queries.UpdateOrderTransaction(c, repository.UpdateOrderTransactionParams{
		ID:            order.ID,
		TransactionID: result.TransactionID,
		Status:        status.PaymentCompleted.String(),
	})
	if err != nil {
		return repository.Order{}, fmt.Errorf(
			"failed updating order to %s with error=%w",
			status.PaymentCompleted,
			err,
		)
	}
	order.Status = status.PaymentCompleted.String()
	order.TransactionID = result.TransactionID
	return order, nil
}

// markUnitsSold flags each purchased sku as sold out. Remanufactured units
// are one of a kind, so a sold sku leaves the catalog. A failure here only
// logs; the order already committed.
func (s OrderService) markUnitsSold(
	c context.Context,
	items []repository.OrderItem,
	logger zerolog.Logger,
) {
	logger = logger.With().Str(log.KeyProcess, "marking units sold").Logger()
	staleKeys := []string{}
	for _, item := range items {
		affected, err := s.queries.MarkProductSoldOut(c, item.Sku)
		if err != nil {
			err = fmt.Errorf("failed marking sku=%s sold out with error=%w", item.Sku, err)
			logger.Error().Err(err).Msg(err.Error())
			continue
		}
		if affected == 0 {
			logger.Info().Msgf("sku=%s has no catalog entry to mark sold", item.Sku)
			continue
		}
		staleKeys = append(staleKeys, fmt.Sprintf(cache.KeyProduct, item.Sku))
		logger.Info().Msgf("marked sku=%s sold out", item.Sku)
	}
	if len(staleKeys) == 0 {
		return
	}

	staleKeys = append(staleKeys, cache.KeyProducts)
	logger = logger.With().Str(log.KeyProcess, "invalidating product cache").Logger()
	err := s.cache.Del(c, staleKeys...).Err()
	if err != nil {
		err = fmt.Errorf("failed invalidating product cache with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msgf("invalidated %d product cache entries", len(staleKeys))
}

func (s OrderService) enqueueConfirmation(
	c context.Context,
	order repository.Order,
	logger zerolog.Logger,
) {
	logger = logger.With().Str(log.KeyProcess, "enqueueing confirmation mail").Logger()

	user, err := s.queries.FindUserById(c, order.UserID)
	if err != nil {
		err = fmt.Errorf("failed finding user for confirmation mail with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}

	msg := mail.Message{
		To:      user.Email,
		Subject: fmt.Sprintf("Order %s confirmed", order.OrderNumber),
		Body: fmt.Sprintf(
			"Hi %s,\r\n\r\nyour order %s for a total of %s is confirmed.\r\n",
			order.Recipient,
			order.OrderNumber,
			repository.DecimalFromNumeric(order.Total).String(),
		),
	}
	select {
	case s.mailQueue <- msg:
		logger.Info().Str(log.KeyMailTo, user.Email).Msg("enqueued confirmation mail")
	default:
		logger.Error().Msg("mail queue is full, dropping confirmation mail")
	}
}

func (s OrderService) FindOrderById(
	c context.Context,
	orderId uuid.UUID,
	userId uuid.UUID,
	isAdmin bool,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrderById").
		Str(log.KeyOrderID, orderId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	logger.Info().Msg("finding order")
	order, err := s.queries.FindOrderById(c, orderId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrOrderNotFound
		} else {
			err = fmt.Errorf("failed finding order with error=%w", err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	if order.UserID != userId && !isAdmin {
		err = commonErrors.ErrOrderNotFound
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("found order")

	logger = logger.With().Str(log.KeyProcess, "finding order items").Logger()
	logger.Info().Msg("finding order items")
	items, err := s.queries.FindOrderItems(c, order.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("found %d order items", len(items))

	return order.Response(items), nil
}

func (s OrderService) FindOrders(c context.Context, userId uuid.UUID) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService FindOrders").
		Str(log.KeyUserID, userId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding orders").Logger()
	logger.Info().Msg("finding orders")
	orders, err := s.queries.FindOrdersByUserId(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d orders", len(orders))

	responses := make([]response.Order, 0, len(orders))
	for _, order := range orders {
		items, err := s.queries.FindOrderItems(c, order.ID)
		if err != nil {
			err = fmt.Errorf("failed finding order items with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		responses = append(responses, order.Response(items))
	}
	return responses, nil
}

// UpdateStatus applies one lifecycle transition. Refunds and cancellations
// also notify the payment provider when a transaction exists.
func (s OrderService) UpdateStatus(
	c context.Context,
	orderId uuid.UUID,
	next status.Status,
) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderService UpdateStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "OrderService UpdateStatus").
		Str(log.KeyOrderID, orderId.String()).
		Str(log.KeyOrderStatus, next.String()).
		Logger()

	if !next.IsValid() {
		err := fmt.Errorf("unknown order status=%s: %w", next, commonErrors.ErrBadTransition)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "finding order").Logger()
	logger.Info().Msg("finding order")
	order, err := s.queries.FindOrderById(c, orderId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrOrderNotFound
		} else {
			err = fmt.Errorf("failed finding order with error=%w", err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msg("found order")

	current := status.Status(order.Status)
	if !current.CanTransitionTo(next) {
		err = fmt.Errorf(
			"order status=%s cannot transition to %s: %w",
			current,
			next,
			commonErrors.ErrBadTransition,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}

	switch next {
	case status.Refunded:
		if order.TransactionID != "" {
			logger.Info().Str(log.KeyTxnID, order.TransactionID).Msg("refunding payment")
			err = s.provider.RefundPayment(
				c,
				order.TransactionID,
				repository.DecimalFromNumeric(order.Total),
			)
			if err != nil {
				err = fmt.Errorf("failed refunding payment with error=%w", err)
				commonErrors.HandleError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return response.Order{}, err
			}
			logger.Info().Msg("refunded payment")
		}
	case status.Cancelled:
		// A captured payment stays on file so a later refund can still
		// reference the transaction.
		if order.TransactionID != "" && current == status.PaymentPending {
			logger.Info().Str(log.KeyTxnID, order.TransactionID).Msg("cancelling payment")
			err = s.provider.CancelPayment(c, order.TransactionID)
			if err != nil {
				err = fmt.Errorf("failed cancelling payment with error=%w", err)
				commonErrors.HandleError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return response.Order{}, err
			}
			logger.Info().Msg("cancelled payment")
		}
	}

	logger = logger.With().Str(log.KeyProcess, "updating order status").Logger()
	logger.Info().Msg("updating order status")
	updated, err := s.queries.UpdateOrderStatus(c, repository.UpdateOrderStatusParams{
		ID:     order.ID,
		Status: next.String(),
	})
	if err != nil {
		err = fmt.Errorf("failed updating order status with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Msgf("updated order status to %s", next)

	items, err := s.queries.FindOrderItems(c, updated.ID)
	if err != nil {
		err = fmt.Errorf("failed finding order items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	return updated.Response(items), nil
}

// newOrderNumber is date-prefixed so support can eyeball when an order was
// placed.
func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}

func (s OrderService) rollback(
	c context.Context,
	tx pgx.Tx,
	span trace.Span,
	logger zerolog.Logger,
) {
	logger = logger.With().Str(log.KeyProcess, "rolling back transaction").Logger()
	err := tx.Rollback(c)
	if err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return
		}
		err = fmt.Errorf("failed rolling back transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("rolled back transaction")
}
