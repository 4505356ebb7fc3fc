package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/absrenew/storefront/cart/internal/otel"
	"github.com/absrenew/storefront/cart/pkg/request"
	"github.com/absrenew/storefront/cart/pkg/response"
	commonErrors "github.com/absrenew/storefront/internal/errors"
	"github.com/absrenew/storefront/internal/log"
	"github.com/absrenew/storefront/internal/repository"
)

// MergeCarts folds the guest cart into the signed-in user's cart and deletes
// the guest cart. Matching skus add their quantities, the user line keeps its
// price and metadata. The whole routine runs in one transaction so a retried
// merge never double counts. An absent or empty guest cart is a no-op.
func (s CartService) MergeCarts(
	c context.Context,
	param request.MergeCart,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService MergeCarts")
	defer span.End()

	userOwner := param.UserId

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService MergeCarts").
		Str(log.KeyCartOwner, param.CartId).
		Str(log.KeyUserID, userOwner).
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

	logger = logger.With().Str(log.KeyProcess, "finding guest cart").Logger()
	logger.Info().Msg("finding guest cart")
	guestCart, err := queries.FindCartByOwner(c, param.CartId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info().Msg("guest cart not found, nothing to merge")
			return s.GetCart(c, userOwner)
		}
		err = fmt.Errorf("failed finding guest cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("found guest cart")

	logger = logger.With().Str(log.KeyProcess, "finding guest cart items").Logger()
	logger.Info().Msg("finding guest cart items")
	guestItems, err := queries.FindCartItems(c, guestCart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding guest cart items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	if len(guestItems) == 0 {
		logger.Info().Msg("guest cart is empty, nothing to merge")
		return s.GetCart(c, userOwner)
	}
	logger.Info().Msgf("found %d guest cart items", len(guestItems))

	userCart, err := s.findOrCreateCart(c, queries, userOwner, logger)
	if err != nil {
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, userCart.ID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user cart items").Logger()
	logger.Info().Msg("finding user cart items")
	userItems, err := queries.FindCartItems(c, userCart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding user cart items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msgf("found %d user cart items", len(userItems))

	logger = logger.With().Str(log.KeyProcess, "merging cart items").Logger()
	logger.Info().Msg("merging cart items")
	span.AddEvent("merging cart items")
	merged := mergeItems(userItems, guestItems)
	logger.Info().Msgf("merged into %d cart items", len(merged))
	span.AddEvent("merged cart items")

	logger = logger.With().Str(log.KeyProcess, "writing merged cart items").Logger()
	logger.Info().Msg("writing merged cart items")
	err = queries.DeleteCartItems(c, userCart.ID)
	if err != nil {
		err = fmt.Errorf("failed clearing user cart items with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	appendedAt := time.Now().UTC()
	for i, item := range merged {
		createdAt := item.CreatedAt
		if i >= len(userItems) {
			// Appended guest lines get a fresh timestamp so the created_at
			// ordering of reads keeps them after every user line. The offset
			// preserves their relative guest order.
			createdAt = pgtype.Timestamptz{
				Time:  appendedAt.Add(time.Duration(i) * time.Microsecond),
				Valid: true,
			}
		}
		err = queries.InsertCartItem(c, repository.InsertCartItemParams{
			ID:        uuid.New(),
			CartID:    userCart.ID,
			Sku:       item.Sku,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Name:      item.Name,
			Brand:     item.Brand,
			Model:     item.Model,
			ImageUrl:  item.ImageUrl,
			InStock:   item.InStock,
			Checked:   item.Checked,
			CreatedAt: createdAt,
		})
		if err != nil {
			err = fmt.Errorf("failed writing merged cart item sku=%s with error=%w", item.Sku, err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
	}
	logger.Info().Msg("wrote merged cart items")

	logger = logger.With().Str(log.KeyProcess, "deleting guest cart").Logger()
	logger.Info().Msg("deleting guest cart")
	err = queries.DeleteCart(c, guestCart.ID)
	if err != nil {
		err = fmt.Errorf("failed deleting guest cart with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("deleted guest cart")

	cartResponse, err := s.finishMutation(c, tx, queries, userCart, span, logger)
	if err != nil {
		return response.Cart{}, err
	}
	s.invalidateCache(c, param.CartId, logger)

	return cartResponse, nil
}

// mergeItems combines guest items into user items. On a sku collision the
// quantities add up and the user line wins everything else. Guest-only skus
// append after the user's items in their original order.
func mergeItems(userItems, guestItems []repository.CartItem) []repository.CartItem {
	merged := make([]repository.CartItem, len(userItems))
	copy(merged, userItems)

	index := make(map[string]int, len(merged))
	for i, item := range merged {
		index[item.Sku] = i
	}

	for _, guest := range guestItems {
		i, ok := index[guest.Sku]
		if ok {
			merged[i].Quantity += guest.Quantity
			continue
		}
		index[guest.Sku] = len(merged)
		merged = append(merged, guest)
	}
	return merged
}
