package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/coffee-passport/internal/domain"
)

// CustomerFilter narrows customer counting queries.
type CustomerFilter struct {
	ActiveSince *time.Time
}

// CustomerRepository encapsulates passport persistence. All stamp and reward
// mutations are single conditional statements so concurrent commands cannot
// lose updates.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	GetByCustomerID(ctx context.Context, customerID string) (*domain.Customer, error)
	SetName(ctx context.Context, phone, name string, at time.Time) error
	AddStamp(ctx context.Context, customerID string, at time.Time) (int, error)
	GrantReward(ctx context.Context, phone string, stampTarget int, at time.Time) (int, error)
	RedeemReward(ctx context.Context, customerID string, at time.Time) (int, error)
	List(ctx context.Context, limit, offset int) ([]domain.Customer, error)
	Count(ctx context.Context, filter CustomerFilter) (int64, error)
	SumStamps(ctx context.Context) (int64, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a Postgres-backed implementation.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerColumns = `id, phone_number, customer_id, name, state, stamps, rewards, created_at, last_activity, reset_date, is_active`

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (phone_number, customer_id, name, state, stamps, rewards, last_activity, reset_date, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		customer.PhoneNumber,
		customer.CustomerID,
		customer.Name,
		customer.State,
		customer.Stamps,
		customer.Rewards,
		customer.LastActivity,
		customer.ResetDate,
		customer.IsActive,
	).Scan(&customer.ID, &customer.CreatedAt)
	return translateError(err)
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE phone_number=$1`
	return r.fetchSingle(ctx, query, phone)
}

func (r *customerRepository) GetByCustomerID(ctx context.Context, customerID string) (*domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE customer_id=$1`
	return r.fetchSingle(ctx, query, customerID)
}

func (r *customerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Customer, error) {
	var customer domain.Customer
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&customer.ID,
		&customer.PhoneNumber,
		&customer.CustomerID,
		&customer.Name,
		&customer.State,
		&customer.Stamps,
		&customer.Rewards,
		&customer.CreatedAt,
		&customer.LastActivity,
		&customer.ResetDate,
		&customer.IsActive,
	); err != nil {
		return nil, translateError(err)
	}
	return &customer, nil
}

func (r *customerRepository) SetName(ctx context.Context, phone, name string, at time.Time) error {
	const query = `
        UPDATE customers SET name=$2, state=$3, last_activity=$4
        WHERE phone_number=$1`
	cmd, err := r.pool.Exec(ctx, query, phone, name, domain.CustomerStateActive, at)
	if err != nil {
		return translateError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepository) AddStamp(ctx context.Context, customerID string, at time.Time) (int, error) {
	const query = `
        UPDATE customers SET stamps = stamps + 1, last_activity=$2
        WHERE customer_id=$1
        RETURNING stamps`
	var stamps int
	if err := r.pool.QueryRow(ctx, query, customerID, at).Scan(&stamps); err != nil {
		return 0, translateError(err)
	}
	return stamps, nil
}

func (r *customerRepository) GrantReward(ctx context.Context, phone string, stampTarget int, at time.Time) (int, error) {
	const query = `
        UPDATE customers SET rewards = rewards + 1, last_activity=$3
        WHERE phone_number=$1 AND stamps >= $2
        RETURNING rewards`
	var rewards int
	err := r.pool.QueryRow(ctx, query, phone, stampTarget, at).Scan(&rewards)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrConditionFailed
	}
	if err != nil {
		return 0, translateError(err)
	}
	return rewards, nil
}

func (r *customerRepository) RedeemReward(ctx context.Context, customerID string, at time.Time) (int, error) {
	const query = `
        UPDATE customers SET stamps = 0, rewards = rewards - 1, last_activity=$2
        WHERE customer_id=$1 AND rewards >= 1
        RETURNING rewards`
	var rewards int
	err := r.pool.QueryRow(ctx, query, customerID, at).Scan(&rewards)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrConditionFailed
	}
	if err != nil {
		return 0, translateError(err)
	}
	return rewards, nil
}

func (r *customerRepository) List(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(
			&customer.ID,
			&customer.PhoneNumber,
			&customer.CustomerID,
			&customer.Name,
			&customer.State,
			&customer.Stamps,
			&customer.Rewards,
			&customer.CreatedAt,
			&customer.LastActivity,
			&customer.ResetDate,
			&customer.IsActive,
		); err != nil {
			return nil, translateError(err)
		}
		result = append(result, customer)
	}
	return result, rows.Err()
}

func (r *customerRepository) Count(ctx context.Context, filter CustomerFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM customers`
	args := []any{}
	if filter.ActiveSince != nil {
		args = append(args, *filter.ActiveSince)
		query += ` WHERE last_activity >= $1`
	}
	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

func (r *customerRepository) SumStamps(ctx context.Context) (int64, error) {
	const query = `SELECT COALESCE(SUM(stamps), 0) FROM customers`
	var sum int64
	if err := r.pool.QueryRow(ctx, query).Scan(&sum); err != nil {
		return 0, translateError(err)
	}
	return sum, nil
}

// translateError maps driver errors onto repository sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
