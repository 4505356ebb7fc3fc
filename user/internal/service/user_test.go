package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartClient "github.com/absrenew/storefront/cart/pkg/client"
	"github.com/absrenew/storefront/internal/config"
	commonErrors "github.com/absrenew/storefront/internal/errors"
	"github.com/absrenew/storefront/user/pkg/request"
)

func TestLoginSucceedsWhenCartMergeIsRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c := context.Background()
	pool, pgContainer, queries := setup(t)(c)
	defer teardown(t)(pool, pgContainer)

	cartServer := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"ok":false,"statusCode":500,"message":"cart service down"}`))
		}),
	)
	defer cartServer.Close()

	userService := NewUserService(
		pool,
		queries,
		config.Application{SecretKey: "test-secret"},
		cartClient.New(cartServer.URL),
	)

	_, err := userService.Register(c, request.Register{
		Email:    "jordan@example.com",
		Name:     "Jordan Blake",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	login, err := userService.Login(c, request.Login{
		Email:    "jordan@example.com",
		Password: "correct-horse",
		CartId:   uuid.NewString(),
	})
	require.NoError(t, err, "a failed guest cart merge must not fail the login")
	assert.NotEmpty(t, login.Token)
}

func TestLoginSucceedsWhenCartServiceIsUnreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c := context.Background()
	pool, pgContainer, queries := setup(t)(c)
	defer teardown(t)(pool, pgContainer)

	userService := NewUserService(
		pool,
		queries,
		config.Application{SecretKey: "test-secret"},
		cartClient.New("http://127.0.0.1:1"),
	)

	_, err := userService.Register(c, request.Register{
		Email:    "jordan@example.com",
		Name:     "Jordan Blake",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	login, err := userService.Login(c, request.Login{
		Email:    "jordan@example.com",
		Password: "correct-horse",
		CartId:   uuid.NewString(),
	})
	require.NoError(t, err, "an unreachable cart service must not fail the login")
	assert.NotEmpty(t, login.Token)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c := context.Background()
	pool, pgContainer, queries := setup(t)(c)
	defer teardown(t)(pool, pgContainer)

	userService := NewUserService(
		pool,
		queries,
		config.Application{SecretKey: "test-secret"},
		cartClient.New("http://127.0.0.1:1"),
	)

	_, err := userService.Register(c, request.Register{
		Email:    "jordan@example.com",
		Name:     "Jordan Blake",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = userService.Login(c, request.Login{
		Email:    "jordan@example.com",
		Password: "wrong-horse",
	})
	assert.ErrorIs(t, err, commonErrors.ErrBadCredential)
}
