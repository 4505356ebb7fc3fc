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

	commonErrors "github.com/absrenew/storefront/internal/errors"
	"github.com/absrenew/storefront/internal/log"
	"github.com/absrenew/storefront/internal/repository"
	"github.com/absrenew/storefront/product/internal/cache"
	"github.com/absrenew/storefront/product/internal/otel"
	"github.com/absrenew/storefront/product/pkg/request"
	"github.com/absrenew/storefront/product/pkg/response"
)

type ProductService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewProductService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) ProductService {
	return ProductService{pool: pool, queries: queries, cache: cache}
}

func (s ProductService) FindProducts(c context.Context) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProducts").
		Str(log.KeyCacheKey, cache.KeyProducts).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding products in cache").Logger()
	logger.Info().Msg("finding products in cache")
	cached, err := s.cache.Get(c, cache.KeyProducts).Result()
	if err == nil {
		products := []response.Product{}
		err = json.Unmarshal([]byte(cached), &products)
		if err == nil {
			logger.Info().Msgf("found %d products in cache", len(products))
			return products, nil
		}
		err = fmt.Errorf("failed unmarshaling cached products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}

	logger = logger.With().Str(log.KeyProcess, "finding products in db").Logger()
	logger.Info().Msg("finding products in db")
	products, err := s.queries.FindProducts(c)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d products in db", len(products))

	responses := make([]response.Product, 0, len(products))
	for _, product := range products {
		responses = append(responses, product.Response())
	}

	logger = logger.With().Str(log.KeyProcess, "inserting products to cache").Logger()
	marshaled, err := json.Marshal(responses)
	if err == nil {
		err = s.cache.Set(c, cache.KeyProducts, marshaled, time.Minute*10).Err()
	}
	if err != nil {
		err = fmt.Errorf("failed inserting products to cache with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return responses, nil
	}
	logger.Info().Msg("inserted products to cache")

	return responses, nil
}

func (s ProductService) FindProductBySku(c context.Context, sku string) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductBySku")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KeyProduct, sku)

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductBySku").
		Str(log.KeySku, sku).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in cache").Logger()
	logger.Info().Msg("finding product in cache")
	cached, err := s.cache.Get(c, cacheKey).Result()
	if err == nil {
		product := response.Product{}
		err = json.Unmarshal([]byte(cached), &product)
		if err == nil {
			logger.Info().Msg("found product in cache")
			return product, nil
		}
		err = fmt.Errorf("failed unmarshaling cached product with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}

	logger = logger.With().Str(log.KeyProcess, "finding product in db").Logger()
	logger.Info().Msg("finding product in db")
	product, err := s.queries.FindProductBySku(c, sku)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrProductNotFound
		} else {
			err = fmt.Errorf("failed finding product sku=%s with error=%w", sku, err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("found product in db")

	productResponse := product.Response()

	logger = logger.With().Str(log.KeyProcess, "inserting product to cache").Logger()
	marshaled, err := json.Marshal(productResponse)
	if err == nil {
		err = s.cache.Set(c, cacheKey, marshaled, time.Minute*10).Err()
	}
	if err != nil {
		err = fmt.Errorf("failed inserting product to cache with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return productResponse, nil
	}
	logger.Info().Msg("inserted product to cache")

	return productResponse, nil
}

// UpsertProduct inserts the sku or, when it already exists, overwrites the
// listing fields. Admin only at the HTTP boundary.
func (s ProductService) UpsertProduct(
	c context.Context,
	param request.UpsertProduct,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService UpsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpsertProduct").
		Str(log.KeySku, param.Sku).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "updating product").Logger()
	logger.Info().Msg("updating product")
	product, err := s.queries.UpdateProduct(c, repository.UpdateProductParams{
		Sku:         param.Sku,
		Name:        param.Name,
		Brand:       param.Brand,
		Model:       param.Model,
		ImageUrl:    param.ImageUrl,
		Description: param.Description,
		Price:       repository.NumericFromDecimal(param.Price),
		InStock:     param.InStock,
	})
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("failed updating product sku=%s with error=%w", param.Sku, err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Product{}, err
		}

		logger = logger.With().Str(log.KeyProcess, "inserting product").Logger()
		logger.Info().Msg("product not found, inserting product")
		product, err = s.queries.InsertProduct(c, repository.InsertProductParams{
			ID:          uuid.New(),
			Sku:         param.Sku,
			Name:        param.Name,
			Brand:       param.Brand,
			Model:       param.Model,
			ImageUrl:    param.ImageUrl,
			Description: param.Description,
			Price:       repository.NumericFromDecimal(param.Price),
			InStock:     param.InStock,
		})
		if err != nil {
			err = fmt.Errorf("failed inserting product sku=%s with error=%w", param.Sku, err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Product{}, err
		}
		logger.Info().Msg("inserted product")
	} else {
		logger.Info().Msg("updated product")
	}

	s.invalidateCache(c, param.Sku, logger)

	return product.Response(), nil
}

// MarkSoldOut takes a sold unit off the listing.
func (s ProductService) MarkSoldOut(c context.Context, sku string) error {
	c, span := otel.Tracer.Start(c, "ProductService MarkSoldOut")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService MarkSoldOut").
		Str(log.KeySku, sku).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "marking product sold out").Logger()
	logger.Info().Msg("marking product sold out")
	affected, err := s.queries.MarkProductSoldOut(c, sku)
	if err != nil {
		err = fmt.Errorf("failed marking product sku=%s sold out with error=%w", sku, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if affected == 0 {
		err = commonErrors.ErrProductNotFound
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("marked product sold out")

	s.invalidateCache(c, sku, logger)

	return nil
}

func (s ProductService) invalidateCache(c context.Context, sku string, logger zerolog.Logger) {
	logger = logger.With().Str(log.KeyProcess, "invalidating product cache").Logger()
	logger.Info().Msg("invalidating product cache")
	err := s.cache.Del(c, cache.KeyProducts, fmt.Sprintf(cache.KeyProduct, sku)).Err()
	if err != nil {
		err = fmt.Errorf("failed invalidating product cache with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("invalidated product cache")
}
