package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/coffee-passport/internal/domain"
)

// StaffRepository handles persistence for staff members. Staff records are
// created and removed through the admin API only; the command interpreter
// just reads them.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) error
	GetAuthorizedByPhone(ctx context.Context, phone string) (*domain.Staff, error)
	List(ctx context.Context) ([]domain.Staff, error)
	DeleteByPhone(ctx context.Context, phone string) error
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	const query = `
        INSERT INTO staff (phone_number, name, is_authorized)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		staff.PhoneNumber,
		staff.Name,
		staff.IsAuthorized,
	).Scan(&staff.ID, &staff.CreatedAt)
	return translateError(err)
}

func (r *staffRepository) GetAuthorizedByPhone(ctx context.Context, phone string) (*domain.Staff, error) {
	const query = `
        SELECT id, phone_number, name, is_authorized, created_at
        FROM staff WHERE phone_number=$1 AND is_authorized=true`

	var staff domain.Staff
	if err := r.pool.QueryRow(ctx, query, phone).Scan(
		&staff.ID,
		&staff.PhoneNumber,
		&staff.Name,
		&staff.IsAuthorized,
		&staff.CreatedAt,
	); err != nil {
		return nil, translateError(err)
	}
	return &staff, nil
}

func (r *staffRepository) List(ctx context.Context) ([]domain.Staff, error) {
	const query = `
        SELECT id, phone_number, name, is_authorized, created_at
        FROM staff ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var result []domain.Staff
	for rows.Next() {
		var staff domain.Staff
		if err := rows.Scan(
			&staff.ID,
			&staff.PhoneNumber,
			&staff.Name,
			&staff.IsAuthorized,
			&staff.CreatedAt,
		); err != nil {
			return nil, translateError(err)
		}
		result = append(result, staff)
	}
	return result, rows.Err()
}

func (r *staffRepository) DeleteByPhone(ctx context.Context, phone string) error {
	const query = `DELETE FROM staff WHERE phone_number=$1`
	cmd, err := r.pool.Exec(ctx, query, phone)
	if err != nil {
		return translateError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
