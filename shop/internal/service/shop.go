package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	commonErrors "github.com/absrenew/storefront/internal/errors"
	"github.com/absrenew/storefront/internal/log"
	"github.com/absrenew/storefront/internal/repository"
	"github.com/absrenew/storefront/shop/internal/otel"
	"github.com/absrenew/storefront/shop/pkg/request"
	"github.com/absrenew/storefront/shop/pkg/response"
)

// keyVisits is a redis hash per day, field per path, incremented on every
// recorded page view.
const keyVisits = "visits:%s"

// visitsTTL keeps roughly three months of daily counters around.
const visitsTTL = 90 * 24 * time.Hour

type ShopService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewShopService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) ShopService {
	return ShopService{pool: pool, queries: queries, cache: cache}
}

func (s ShopService) SubmitInquiry(
	c context.Context,
	param request.SubmitInquiry,
) (response.Inquiry, error) {
	c, span := otel.Tracer.Start(c, "ShopService SubmitInquiry")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopService SubmitInquiry").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "inserting inquiry").Logger()
	logger.Info().Msg("inserting inquiry")
	inquiry, err := s.queries.InsertInquiry(c, repository.InsertInquiryParams{
		ID:         uuid.New(),
		Name:       param.Name,
		Email:      param.Email,
		Phone:      param.Phone,
		Message:    param.Message,
		ProductSku: param.ProductSku,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting inquiry with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Inquiry{}, err
	}
	logger = logger.With().Str(log.KeyInquiryID, inquiry.ID.String()).Logger()
	logger.Info().Msg("inserted inquiry")

	return inquiry.Response(), nil
}

func (s ShopService) FindInquiries(c context.Context) ([]response.Inquiry, error) {
	c, span := otel.Tracer.Start(c, "ShopService FindInquiries")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopService FindInquiries").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding inquiries").Logger()
	logger.Info().Msg("finding inquiries")
	inquiries, err := s.queries.FindInquiries(c)
	if err != nil {
		err = fmt.Errorf("failed finding inquiries with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d inquiries", len(inquiries))

	responses := make([]response.Inquiry, 0, len(inquiries))
	for _, inquiry := range inquiries {
		responses = append(responses, inquiry.Response())
	}
	return responses, nil
}

func (s ShopService) AnswerInquiry(
	c context.Context,
	inquiryId uuid.UUID,
	answer string,
) (response.Inquiry, error) {
	c, span := otel.Tracer.Start(c, "ShopService AnswerInquiry")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopService AnswerInquiry").
		Str(log.KeyInquiryID, inquiryId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "answering inquiry").Logger()
	logger.Info().Msg("answering inquiry")
	inquiry, err := s.queries.AnswerInquiry(c, repository.AnswerInquiryParams{
		ID:     inquiryId,
		Answer: answer,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrInquiryNotFound
		} else {
			err = fmt.Errorf("failed answering inquiry with error=%w", err)
		}
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Inquiry{}, err
	}
	logger.Info().Msg("answered inquiry")

	return inquiry.Response(), nil
}

// RecordVisit bumps the per-path counter in today's visit hash.
func (s ShopService) RecordVisit(c context.Context, path string) error {
	c, span := otel.Tracer.Start(c, "ShopService RecordVisit")
	defer span.End()

	cacheKey := fmt.Sprintf(keyVisits, time.Now().UTC().Format("2006-01-02"))

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopService RecordVisit").
		Str(log.KeyVisitPath, path).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "recording visit").Logger()
	logger.Info().Msg("recording visit")
	err := s.cache.HIncrBy(c, cacheKey, path, 1).Err()
	if err != nil {
		err = fmt.Errorf("failed recording visit with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	err = s.cache.Expire(c, cacheKey, visitsTTL).Err()
	if err != nil {
		err = fmt.Errorf("failed setting visit counter expiry with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("recorded visit")

	return nil
}

// FindVisits returns the counters of one day. A day with no recorded visits
// comes back empty, not as an error.
func (s ShopService) FindVisits(c context.Context, date string) (response.Visits, error) {
	c, span := otel.Tracer.Start(c, "ShopService FindVisits")
	defer span.End()

	cacheKey := fmt.Sprintf(keyVisits, date)

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ShopService FindVisits").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding visits").Logger()
	logger.Info().Msg("finding visits")
	counters, err := s.cache.HGetAll(c, cacheKey).Result()
	if err != nil {
		err = fmt.Errorf("failed finding visits with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Visits{}, err
	}
	logger.Info().Msgf("found %d visited paths", len(counters))

	visits := response.Visits{Date: date, Paths: map[string]int64{}}
	for path, raw := range counters {
		count, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		visits.Paths[path] = count
		visits.Total += count
	}
	return visits, nil
}
