package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/fleetops/fms/backend/internal/domain"
)

// CustomerRepo defines the persistence operations for Customers.
type CustomerRepo interface {
	Create(ctx context.Context, c domain.Customer) (domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, c domain.Customer) (domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgCustomerRepo is the Postgres implementation of CustomerRepo.
type pgCustomerRepo struct {
	db db
}

// NewCustomerRepo constructs a CustomerRepo backed by the provided db connection.
func NewCustomerRepo(db db) CustomerRepo {
	return &pgCustomerRepo{db: db}
}

const customerColumns = `customer_id, name, contact_name, contact_phone, created_at`

func (r *pgCustomerRepo) Create(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	const q = `
		INSERT INTO customers (name, contact_name, contact_phone)
		VALUES (@name, @contact_name, @contact_phone)
		RETURNING ` + customerColumns

	args := pgx.NamedArgs{
		"name":          c.Name,
		"contact_name":  c.ContactName,
		"contact_phone": c.ContactPhone,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCustomer(row)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("repo.CustomerRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	q := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = @customer_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"customer_id": id})
	result, err := scanCustomer(row)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("repo.CustomerRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgCustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	q := `SELECT ` + customerColumns + ` FROM customers ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CustomerRepo.List: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CustomerRepo.List: scan: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CustomerRepo.List: rows: %w", err)
	}

	return customers, nil
}

func (r *pgCustomerRepo) Update(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	const q = `
		UPDATE customers
		SET name          = @name,
		    contact_name  = @contact_name,
		    contact_phone = @contact_phone
		WHERE customer_id = @customer_id
		RETURNING ` + customerColumns

	args := pgx.NamedArgs{
		"customer_id":   c.ID,
		"name":          c.Name,
		"contact_name":  c.ContactName,
		"contact_phone": c.ContactPhone,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanCustomer(row)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("repo.CustomerRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM customers WHERE customer_id = @customer_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"customer_id": id})
	if err != nil {
		return fmt.Errorf("repo.CustomerRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CustomerRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanCustomer maps a single database row into a domain.Customer.
func scanCustomer(s scanner) (domain.Customer, error) {
	var (
		c     domain.Customer
		id    pgtype.UUID
		cname pgtype.Text
		phone pgtype.Text
	)

	err := s.Scan(&id, &c.Name, &cname, &phone, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, domain.ErrNotFound
		}
		return domain.Customer{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	if cname.Valid {
		c.ContactName = cname.String
	}
	if phone.Valid {
		c.ContactPhone = phone.String
	}

	return c, nil
}
