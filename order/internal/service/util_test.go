package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/absrenew/storefront/internal/repository"
	"github.com/absrenew/storefront/order/internal/payment"
)

type (
	setupFunc    func(context.Context) (*redis.Client, *pgxpool.Pool, *postgres.PostgresContainer, *testRedis.RedisContainer, *repository.Queries)
	teardownFunc func(*redis.Client, *pgxpool.Pool, *postgres.PostgresContainer, *testRedis.RedisContainer)
)

func setup(t *testing.T) setupFunc {
	return func(c context.Context) (*redis.Client, *pgxpool.Pool, *postgres.PostgresContainer, *testRedis.RedisContainer, *repository.Queries) {
		pgContainer, err := postgres.Run(
			c,
			"postgres:16.6-alpine3.21",
			testcontainers.WithEnv(map[string]string{
				"POSTGRES_DB":       "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_PORT":     "5432",
				"POSTGRES_USER":     "postgres",
			}),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			postgres.WithDatabase("postgres"),
			postgres.BasicWaitStrategies(),
			postgres.WithInitScripts(
				filepath.Join("..", "..", "..", "migrations", "000001_init.up.sql"),
			),
		)
		if err != nil {
			t.Fatalf("failed running postgres container with error: %s", err)
		}

		pgConnStr, err := pgContainer.ConnectionString(c)
		if err != nil {
			t.Fatalf("failed getting postgres connection string with error: %s", err)
		}

		pgConfig, err := pgxpool.ParseConfig(pgConnStr)
		if err != nil {
			t.Fatalf("failed parsing pgxpool config with error: %s", err)
		}

		pool, err := pgxpool.NewWithConfig(c, pgConfig)
		if err != nil {
			t.Fatalf("failed creating postgres pool with error: %s", err)
		}

		if err = pool.Ping(c); err != nil {
			t.Fatalf("failed ping postgres pool with error: %s", err)
		}

		redisContainer, err := testRedis.Run(
			c,
			"redis:7.4.2-alpine3.21",
			testRedis.WithLogLevel(testRedis.LogLevelVerbose),
		)
		if err != nil {
			t.Fatalf("failed running redis container with error: %s", err)
		}

		redisConnStr, err := redisContainer.ConnectionString(c)
		if err != nil {
			t.Fatalf("failed getting redis connection string with error: %s", err)
		}

		redisOpt, err := redis.ParseURL(redisConnStr)
		if err != nil {
			t.Fatalf("failed parsing redis connection string with error: %s", err)
		}

		redisClient := redis.NewClient(redisOpt)
		if err = redisClient.Ping(c).Err(); err != nil {
			t.Fatalf("failed ping redis client with error: %s", err)
		}

		queries := repository.New(pool)
		return redisClient, pool, pgContainer, redisContainer, queries
	}
}

func teardown(t *testing.T) teardownFunc {
	return func(redis *redis.Client, pool *pgxpool.Pool, pgContainer *postgres.PostgresContainer, redisContainer *testRedis.RedisContainer) {
		redis.Close()
		pool.Close()
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
		if err := testcontainers.TerminateContainer(redisContainer); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}
}

// decliningProvider rejects every charge, for exercising the not-approved
// checkout path.
type decliningProvider struct{}

func (decliningProvider) Initialize(context.Context) error { return nil }

func (decliningProvider) RequestPayment(context.Context, payment.Request) (payment.Result, error) {
	return payment.Result{Approved: false, Message: "card declined"}, nil
}

func (decliningProvider) VerifyPayment(context.Context, string) (payment.Result, error) {
	return payment.Result{}, nil
}

func (decliningProvider) CancelPayment(context.Context, string) error { return nil }

func (decliningProvider) RefundPayment(context.Context, string, decimal.Decimal) error { return nil }

func seedUser(t *testing.T, c context.Context, queries *repository.Queries) repository.User {
	user, err := queries.InsertUser(c, repository.InsertUserParams{
		ID:       uuid.New(),
		Email:    "buyer@example.com",
		Name:     "Buyer",
		Password: "not-a-real-hash",
	})
	if err != nil {
		t.Fatalf("failed seeding user with error: %s", err)
	}
	return user
}

func seedCheckedCart(
	t *testing.T,
	c context.Context,
	queries *repository.Queries,
	owner string,
	sku string,
	price decimal.Decimal,
) repository.Cart {
	cart, err := queries.InsertCart(c, owner)
	if err != nil {
		t.Fatalf("failed seeding cart with error: %s", err)
	}
	_, err = queries.UpsertCartItem(c, repository.UpsertCartItemParams{
		ID:       uuid.New(),
		CartID:   cart.ID,
		Sku:      sku,
		Quantity: 1,
		Price:    repository.NumericFromDecimal(price),
		Name:     "ATE MK60 ABS Module",
		InStock:  true,
	})
	if err != nil {
		t.Fatalf("failed seeding cart item with error: %s", err)
	}
	return cart
}

func seedProduct(t *testing.T, c context.Context, queries *repository.Queries, sku string, price decimal.Decimal) {
	_, err := queries.InsertProduct(c, repository.InsertProductParams{
		ID:      uuid.New(),
		Sku:     sku,
		Name:    "ATE MK60 ABS Module",
		Price:   repository.NumericFromDecimal(price),
		InStock: true,
	})
	if err != nil {
		t.Fatalf("failed seeding product with error: %s", err)
	}
}
