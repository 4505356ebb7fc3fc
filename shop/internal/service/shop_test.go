package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonErrors "github.com/absrenew/storefront/internal/errors"
	"github.com/absrenew/storefront/shop/pkg/request"
)

func TestInquiryLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c := context.Background()
	redisClient, pool, pgContainer, redisContainer, _, shopService := setup(t)(c)
	defer teardown(t)(redisClient, pool, pgContainer, redisContainer)

	inquiry, err := shopService.SubmitInquiry(c, request.SubmitInquiry{
		Name:       "Jordan Blake",
		Email:      "jordan@example.com",
		Phone:      "555-0147",
		Message:    "Does the MK60 exchange unit fit a 2003 330i?",
		ProductSku: "ATE-MK60-BMW-E46",
	})
	require.NoError(t, err)
	assert.Empty(t, inquiry.Answer)
	assert.Nil(t, inquiry.AnsweredAt)

	inquiries, err := shopService.FindInquiries(c)
	require.NoError(t, err)
	require.Len(t, inquiries, 1)

	answered, err := shopService.AnswerInquiry(
		c,
		inquiry.ID,
		"Yes, the E46 MK60 unit covers all 330i model years.",
	)
	require.NoError(t, err)
	assert.Equal(t, "Yes, the E46 MK60 unit covers all 330i model years.", answered.Answer)
	assert.NotNil(t, answered.AnsweredAt)
}

func TestAnswerInquiryNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c := context.Background()
	redisClient, pool, pgContainer, redisContainer, _, shopService := setup(t)(c)
	defer teardown(t)(redisClient, pool, pgContainer, redisContainer)

	_, err := shopService.AnswerInquiry(c, uuid.New(), "no such inquiry")
	assert.ErrorIs(t, err, commonErrors.ErrInquiryNotFound)
}

func TestVisitCountersGroupByPath(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c := context.Background()
	redisClient, pool, pgContainer, redisContainer, _, shopService := setup(t)(c)
	defer teardown(t)(redisClient, pool, pgContainer, redisContainer)

	require.NoError(t, shopService.RecordVisit(c, "/"))
	require.NoError(t, shopService.RecordVisit(c, "/"))
	require.NoError(t, shopService.RecordVisit(c, "/products/ATE-MK60-BMW-E46"))

	today := time.Now().UTC().Format("2006-01-02")
	visits, err := shopService.FindVisits(c, today)
	require.NoError(t, err)
	assert.EqualValues(t, 3, visits.Total)
	assert.EqualValues(t, 2, visits.Paths["/"])
	assert.EqualValues(t, 1, visits.Paths["/products/ATE-MK60-BMW-E46"])
}

func TestVisitsEmptyDayReturnsZero(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	c := context.Background()
	redisClient, pool, pgContainer, redisContainer, _, shopService := setup(t)(c)
	defer teardown(t)(redisClient, pool, pgContainer, redisContainer)

	visits, err := shopService.FindVisits(c, "2020-01-01")
	require.NoError(t, err)
	assert.Zero(t, visits.Total)
	assert.Empty(t, visits.Paths)
}
