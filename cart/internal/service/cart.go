package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/absrenew/storefront/cart/internal/cache"
	"github.com/absrenew/storefront/cart/internal/otel"
	"github.com/absrenew/storefront/cart/pkg/request"
	"github.com/absrenew/storefront/cart/pkg/response"
	commonErrors "github.com/absrenew/storefront/internal/errors"
	"github.com/absrenew/storefront/internal/log"
	"github.com/absrenew/storefront/internal/repository"
)

type CartService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewCartService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) CartService {
	return CartService{pool: pool, queries: queries, cache: cache}
}

func (s CartService) GetCart(c context.Context, owner string) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService GetCart")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KeyCart, owner)

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService GetCart").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart in cache").Logger()
	logger.Info().Msg("finding cart in cache")
	cached, err := s.cache.Get(c, cacheKey).Result()
	if err == nil {
		cart := response.Cart{}
		err = json.Unmarshal([]byte(cached), &cart)
		if err == nil {
			logger.Info().Msg("found cart in cache")
			return cart, nil
		}
		err = fmt.Errorf("failed unmarshaling cached cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart in db").Logger()
	logger.Info().Msg("finding cart in db")
	cart, err := s.queries.FindCartByOwner(c, owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info().Msg("cart not found, returning empty cart")
			return response.Cart{Items: []response.CartItem{}}, nil
		}
		err = fmt.Errorf("failed finding cart by owner=%s with error=%w", owner, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Info().Msg("found cart in db")

	logger = logger.With().Str(log.KeyProcess, "finding cart items in db").Logger()
	logger.Info().Msg("finding cart items in db")
	items, err := s.queries.FindCartItems(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("found %d cart items in db", len(items))

	cartResponse := cart.Response(items)

	logger = logger.With().Str(log.KeyProcess, "inserting cart to cache").Logger()
	logger.Info().Msg("inserting cart to cache")
	marshaled, err := json.Marshal(cartResponse)
	if err != nil {
		err = fmt.Errorf("failed marshaling cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return cartResponse, nil
	}
	err = s.cache.Set(c, cacheKey, marshaled, time.Hour).Err()
	if err != nil {
		err = fmt.Errorf("failed inserting cart to cache with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return cartResponse, nil
	}
	logger.Info().Msg("inserted cart to cache")

	return cartResponse, nil
}

func (s CartService) AddItem(
	c context.Context,
	owner string,
	param request.AddItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddItem").
		Str(log.KeySku, param.Sku).
		Int32(log.KeyQuantity, param.Quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("initialized transaction")
	defer s.rollback(c, tx, span, logger)

	queries := s.queries.WithTx(tx)

	cart, err := s.findOrCreateCart(c, queries, owner, logger)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "upserting cart item").Logger()
	logger.Info().Msg("upserting cart item")
	_, err = queries.UpsertCartItem(c, repository.UpsertCartItemParams{
		ID:       uuid.New(),
		CartID:   cart.ID,
		Sku:      param.Sku,
		Quantity: param.Quantity,
		Price:    repository.NumericFromDecimal(param.PriceAtAdd),
		Name:     param.Name,
		Brand:    param.Brand,
		Model:    param.Model,
		ImageUrl: param.ImageUrl,
		InStock:  param.InStock,
	})
	if err != nil {
		err = fmt.Errorf("failed upserting cart item sku=%s with error=%w", param.Sku, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("upserted cart item")

	return s.finishMutation(c, tx, queries, cart, span, logger)
}

func (s CartService) UpdateItem(
	c context.Context,
	owner string,
	param request.UpdateItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateItem").
		Str(log.KeySku, param.Sku).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("initialized transaction")
	defer s.rollback(c, tx, span, logger)

	queries := s.queries.WithTx(tx)

	cart, err := s.findCart(c, queries, owner, logger)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()

	if param.Qty != nil {
		if *param.Qty <= 0 {
			logger = logger.With().Str(log.KeyProcess, "removing cart item").Logger()
			logger.Info().Msgf("qty=%d is not positive, removing cart item", *param.Qty)
			affected, err := queries.DeleteCartItem(
				c,
				repository.DeleteCartItemParams{CartID: cart.ID, Sku: param.Sku},
			)
			if err != nil {
				err = fmt.Errorf("failed removing cart item sku=%s with error=%w", param.Sku, err)
				commonErrors.HandleError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return response.Cart{}, err
			}
			if affected == 0 {
				err = commonErrors.ErrItemNotFound
				commonErrors.HandleError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return response.Cart{}, err
			}
			logger.Info().Msg("removed cart item")
		} else {
			logger = logger.With().Str(log.KeyProcess, "updating cart item quantity").Logger()
			logger.Info().Msgf("updating cart item quantity to %d", *param.Qty)
			affected, err := queries.UpdateCartItemQuantity(
				c,
				repository.UpdateCartItemQuantityParams{
					CartID:   cart.ID,
					Sku:      param.Sku,
					Quantity: *param.Qty,
				},
			)
			if err != nil {
				err = fmt.Errorf("failed updating cart item sku=%s with error=%w", param.Sku, err)
				commonErrors.HandleError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return response.Cart{}, err
			}
			if affected == 0 {
				err = commonErrors.ErrItemNotFound
				commonErrors.HandleError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				return response.Cart{}, err
			}
			logger.Info().Msg("updated cart item quantity")
		}
	}

	if param.Checked != nil {
		logger = logger.With().Str(log.KeyProcess, "updating cart item checked").Logger()
		logger.Info().Msgf("updating cart item checked to %t", *param.Checked)
		affected, err := queries.UpdateCartItemChecked(
			c,
			repository.UpdateCartItemCheckedParams{
				CartID:  cart.ID,
				Sku:     param.Sku,
				Checked: *param.Checked,
			},
		)
		if err != nil {
			err = fmt.Errorf("failed updating cart item sku=%s with error=%w", param.Sku, err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		if affected == 0 && (param.Qty == nil || *param.Qty > 0) {
			err = commonErrors.ErrItemNotFound
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		logger.Info().Msg("updated cart item checked")
	}

	return s.finishMutation(c, tx, queries, cart, span, logger)
}

func (s CartService) RemoveItem(
	c context.Context,
	owner string,
	param request.RemoveItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveItem").
		Str(log.KeySku, param.Sku).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("initialized transaction")
	defer s.rollback(c, tx, span, logger)

	queries := s.queries.WithTx(tx)

	cart, err := s.findCart(c, queries, owner, logger)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "removing cart item").Logger()
	logger.Info().Msg("removing cart item")
	affected, err := queries.DeleteCartItem(
		c,
		repository.DeleteCartItemParams{CartID: cart.ID, Sku: param.Sku},
	)
	if err != nil {
		err = fmt.Errorf("failed removing cart item sku=%s with error=%w", param.Sku, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if affected == 0 {
		err = commonErrors.ErrItemNotFound
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("removed cart item")

	return s.finishMutation(c, tx, queries, cart, span, logger)
}

func (s CartService) ClearCart(c context.Context, owner string) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing transaction").Logger()
	logger.Info().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("initialized transaction")
	defer s.rollback(c, tx, span, logger)

	queries := s.queries.WithTx(tx)

	cart, err := queries.FindCartByOwner(c, owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info().Msg("cart not found, nothing to clear")
			return response.Cart{Items: []response.CartItem{}}, nil
		}
		err = fmt.Errorf("failed finding cart by owner=%s with error=%w", owner, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "removing cart items").Logger()
	logger.Info().Msg("removing cart items")
	err = queries.DeleteCartItems(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed removing cart items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("removed cart items")

	return s.finishMutation(c, tx, queries, cart, span, logger)
}

func (s CartService) findCart(
	c context.Context,
	queries *repository.Queries,
	owner string,
	logger zerolog.Logger,
) (repository.Cart, error) {
	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Info().Msg("finding cart")
	cart, err := queries.FindCartByOwner(c, owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.Cart{}, commonErrors.ErrCartNotFound
		}
		return repository.Cart{}, fmt.Errorf(
			"failed finding cart by owner=%s with error=%w",
			owner,
			err,
		)
	}
	logger.Info().Msg("found cart")
	return cart, nil
}

func (s CartService) findOrCreateCart(
	c context.Context,
	queries *repository.Queries,
	owner string,
	logger zerolog.Logger,
) (repository.Cart, error) {
	cart, err := s.findCart(c, queries, owner, logger)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, commonErrors.ErrCartNotFound) {
		return repository.Cart{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "inserting cart").Logger()
	logger.Info().Msg("cart not found, inserting cart")
	cart, err = queries.InsertCart(c, owner)
	if err != nil {
		return repository.Cart{}, fmt.Errorf(
			"failed inserting cart for owner=%s with error=%w",
			owner,
			err,
		)
	}
	logger.Info().Msg("inserted cart")
	return cart, nil
}

// finishMutation touches the cart, commits the transaction, invalidates the
// cache entry, and returns the fresh cart snapshot.
func (s CartService) finishMutation(
	c context.Context,
	tx pgx.Tx,
	queries *repository.Queries,
	cart repository.Cart,
	span trace.Span,
	logger zerolog.Logger,
) (response.Cart, error) {
	logger = logger.With().Str(log.KeyProcess, "touching cart").Logger()
	logger.Info().Msg("touching cart")
	err := queries.TouchCart(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed touching cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("touched cart")

	logger = logger.With().Str(log.KeyProcess, "finding cart items").Logger()
	logger.Info().Msg("finding cart items")
	items, err := queries.FindCartItems(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("found %d cart items", len(items))

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	logger.Info().Msg("committing transaction")
	err = tx.Commit(c)
	if err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("committed transaction")

	s.invalidateCache(c, cart.Owner, logger)

	return cart.Response(items), nil
}

func (s CartService) invalidateCache(c context.Context, owner string, logger zerolog.Logger) {
	cacheKey := fmt.Sprintf(cache.KeyCart, owner)
	logger = logger.With().
		Str(log.KeyProcess, "invalidating cart cache").
		Str(log.KeyCacheKey, cacheKey).
		Logger()
	logger.Info().Msg("invalidating cart cache")
	err := s.cache.Del(c, cacheKey).Err()
	if err != nil {
		err = fmt.Errorf("failed invalidating cart cache with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("invalidated cart cache")
}

func (s CartService) rollback(
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
