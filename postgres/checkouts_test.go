package postgres_test

import (
	"context"
	"fmt"
	"os"
	"registration/entity"
	"registration/postgres"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *sqlx.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("POSTGRES_URL")
	if dsn == "" {
		fmt.Println("POSTGRES_URL not set, skipping postgres tests")
		os.Exit(0)
	}

	var err error
	db, err = sqlx.Open("postgres", dsn)
	if err != nil {
		fmt.Printf("failed to connect to db: %s\n", err)
		os.Exit(1)
	}

	if err := postgres.CreateCheckoutsTable(context.Background(), db); err != nil {
		fmt.Printf("failed to create checkouts table: %s\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := db.Close(); err != nil {
		fmt.Printf("failed to close db connection: %s\n", err)
		os.Exit(1)
	}

	os.Exit(code)
}

func TestCheckoutRepo_Add_is_idempotent(t *testing.T) {
	ctx := context.Background()
	checkout := entity.Checkout{
		Provider:             "stripe",
		ReservationHash:      uuid.NewString(),
		OrderNumber:          "ORD-1",
		Amount:               decimal.RequireFromString("20.50"),
		Currency:             "USD",
		TransactionReference: "pi_123",
		CompletedAt:          time.Now().UTC().Truncate(time.Second),
	}

	r := postgres.NewCheckoutRepo(db)
	require.NoError(t, r.Add(ctx, checkout))
	require.NoError(t, r.Add(ctx, checkout))

	checkouts, err := r.List(ctx)
	require.NoError(t, err)

	var matching []entity.Checkout
	for _, c := range checkouts {
		if c.ReservationHash == checkout.ReservationHash {
			matching = append(matching, c)
		}
	}
	require.Len(t, matching, 1)
	assert.True(t, checkout.Amount.Equal(matching[0].Amount))
	assert.True(t, checkout.CompletedAt.Equal(matching[0].CompletedAt))
	assert.Equal(t, "pi_123", matching[0].TransactionReference)
}
