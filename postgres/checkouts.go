package postgres

import (
	"context"
	"fmt"
	"registration/entity"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

func CreateCheckoutsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS checkouts (
		reservation_hash VARCHAR(255) PRIMARY KEY,
		provider VARCHAR(64) NOT NULL,
		order_number VARCHAR(255) NOT NULL,
		amount NUMERIC(12, 2) NOT NULL,
		currency CHAR(3) NOT NULL,
		transaction_reference VARCHAR(255) NOT NULL,
		completed_at TIMESTAMP WITH TIME ZONE NOT NULL
		);`)
	return err
}

type checkoutRow struct {
	ReservationHash      string          `db:"reservation_hash"`
	Provider             string          `db:"provider"`
	OrderNumber          string          `db:"order_number"`
	Amount               decimal.Decimal `db:"amount"`
	Currency             string          `db:"currency"`
	TransactionReference string          `db:"transaction_reference"`
	CompletedAt          time.Time       `db:"completed_at"`
}

// CheckoutRepo is the ledger of completed purchases, one row per
// reservation.
type CheckoutRepo struct {
	db *sqlx.DB
}

func NewCheckoutRepo(db *sqlx.DB) CheckoutRepo {
	return CheckoutRepo{
		db: db,
	}
}

func (r CheckoutRepo) Add(ctx context.Context, c entity.Checkout) error {
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO checkouts
		(reservation_hash, provider, order_number, amount, currency, transaction_reference, completed_at)
		VALUES (:reservation_hash, :provider, :order_number, :amount, :currency, :transaction_reference, :completed_at)
		ON CONFLICT DO NOTHING;`,
		checkoutRow{
			ReservationHash:      c.ReservationHash,
			Provider:             c.Provider,
			OrderNumber:          c.OrderNumber,
			Amount:               c.Amount,
			Currency:             c.Currency,
			TransactionReference: c.TransactionReference,
			CompletedAt:          c.CompletedAt,
		})
	if err != nil {
		return fmt.Errorf("inserting checkout: %w", err)
	}

	return nil
}

func (r CheckoutRepo) List(ctx context.Context) ([]entity.Checkout, error) {
	var rows []checkoutRow
	err := r.db.SelectContext(ctx, &rows, `SELECT
		reservation_hash, provider, order_number, amount, currency, transaction_reference, completed_at
		FROM checkouts ORDER BY completed_at`)
	if err != nil {
		return nil, fmt.Errorf("querying checkouts: %w", err)
	}

	checkouts := make([]entity.Checkout, 0, len(rows))
	for _, row := range rows {
		checkouts = append(checkouts, entity.Checkout{
			Provider:             row.Provider,
			ReservationHash:      row.ReservationHash,
			OrderNumber:          row.OrderNumber,
			Amount:               row.Amount,
			Currency:             row.Currency,
			TransactionReference: row.TransactionReference,
			CompletedAt:          row.CompletedAt,
		})
	}

	return checkouts, nil
}
