// Package repository stores storefront orders, in memory or in PostgreSQL.
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/themizzi/storefront-e2e/internal/models"
)

// ErrDuplicateReference is returned when an order reference is already taken.
var ErrDuplicateReference = errors.New("duplicate order reference")

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

const orderColumns = `id, reference, amount, currency, status, customer_email, description,
	shipping_method, COALESCE(psp_reference, ''), created_at, updated_at`

// OrderRepository is the PostgreSQL order store.
type OrderRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db, now: time.Now}
}

func (r *OrderRepository) Insert(order *models.Order) error {
	const query = `
		INSERT INTO orders (id, reference, amount, currency, status, customer_email, description,
		                    shipping_method, psp_reference, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $10)`

	shipping := order.ShippingMethod
	if shipping == "" {
		shipping = string(models.ShippingStandard)
	}
	now := r.now()
	_, err := r.db.Exec(query,
		order.ID, order.Reference, order.Amount, order.Currency, order.Status,
		order.CustomerEmail, order.Description, shipping, order.PSPReference, now,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicateReference, order.Reference)
	}
	if err != nil {
		return fmt.Errorf("insert order %s: %w", order.Reference, err)
	}

	order.ShippingMethod = shipping
	order.CreatedAt = now
	order.UpdatedAt = now
	return nil
}

func (r *OrderRepository) FindByReference(reference string) (*models.Order, error) {
	row := r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE reference = $1`, reference)

	var o models.Order
	err := row.Scan(&o.ID, &o.Reference, &o.Amount, &o.Currency, &o.Status, &o.CustomerEmail,
		&o.Description, &o.ShippingMethod, &o.PSPReference, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrOrderNotFound, reference)
	}
	if err != nil {
		return nil, fmt.Errorf("select order %s: %w", reference, err)
	}
	return &o, nil
}

func (r *OrderRepository) SaveStatus(order *models.Order) error {
	const query = `
		UPDATE orders
		SET status = $1, psp_reference = NULLIF($2, ''), updated_at = $3
		WHERE reference = $4`

	now := r.now()
	result, err := r.db.Exec(query, order.Status, order.PSPReference, now, order.Reference)
	if err != nil {
		return fmt.Errorf("update order %s: %w", order.Reference, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order %s: %w", order.Reference, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", models.ErrOrderNotFound, order.Reference)
	}
	order.UpdatedAt = now
	return nil
}
