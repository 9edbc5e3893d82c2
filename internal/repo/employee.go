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

// EmployeeRepo defines the persistence operations for Employees.
type EmployeeRepo interface {
	// Create inserts a new employee and returns the persisted record.
	Create(ctx context.Context, emp domain.Employee) (domain.Employee, error)

	// GetByID retrieves a single employee by its UUID primary key.
	// Returns domain.ErrNotFound if no employee with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Employee, error)

	// List returns all employees ordered by last then first name. When role
	// is non-empty only employees with that role are returned.
	List(ctx context.Context, role domain.EmployeeRole) ([]domain.Employee, error)

	// Update overwrites the mutable fields of an existing employee.
	// Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, emp domain.Employee) (domain.Employee, error)

	// Delete removes an employee by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgEmployeeRepo is the Postgres implementation of EmployeeRepo.
type pgEmployeeRepo struct {
	db db
}

// NewEmployeeRepo constructs an EmployeeRepo backed by the provided db connection.
func NewEmployeeRepo(db db) EmployeeRepo {
	return &pgEmployeeRepo{db: db}
}

const employeeColumns = `employee_id, first_name, last_name, role, license_number, is_active`

func (r *pgEmployeeRepo) Create(ctx context.Context, emp domain.Employee) (domain.Employee, error) {
	const q = `
		INSERT INTO employees (first_name, last_name, role, license_number, is_active)
		VALUES (@first_name, @last_name, @role, @license_number, @is_active)
		RETURNING ` + employeeColumns

	args := pgx.NamedArgs{
		"first_name":     emp.FirstName,
		"last_name":      emp.LastName,
		"role":           emp.Role,
		"license_number": emp.LicenseNumber,
		"is_active":      emp.IsActive,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanEmployee(row)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("repo.EmployeeRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgEmployeeRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Employee, error) {
	q := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = @employee_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"employee_id": id})
	result, err := scanEmployee(row)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("repo.EmployeeRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgEmployeeRepo) List(ctx context.Context, role domain.EmployeeRole) ([]domain.Employee, error) {
	// An empty role filter matches every row.
	q := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE (@role = '' OR role = @role)
		ORDER BY last_name, first_name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"role": string(role)})
	if err != nil {
		return nil, fmt.Errorf("repo.EmployeeRepo.List: %w", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.EmployeeRepo.List: scan: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EmployeeRepo.List: rows: %w", err)
	}

	return employees, nil
}

func (r *pgEmployeeRepo) Update(ctx context.Context, emp domain.Employee) (domain.Employee, error) {
	const q = `
		UPDATE employees
		SET first_name     = @first_name,
		    last_name      = @last_name,
		    role           = @role,
		    license_number = @license_number,
		    is_active      = @is_active
		WHERE employee_id = @employee_id
		RETURNING ` + employeeColumns

	args := pgx.NamedArgs{
		"employee_id":    emp.ID,
		"first_name":     emp.FirstName,
		"last_name":      emp.LastName,
		"role":           emp.Role,
		"license_number": emp.LicenseNumber,
		"is_active":      emp.IsActive,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanEmployee(row)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("repo.EmployeeRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgEmployeeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM employees WHERE employee_id = @employee_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"employee_id": id})
	if err != nil {
		return fmt.Errorf("repo.EmployeeRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EmployeeRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanEmployee maps a single database row into a domain.Employee.
func scanEmployee(s scanner) (domain.Employee, error) {
	var (
		e       domain.Employee
		id      pgtype.UUID
		license pgtype.Text
	)

	err := s.Scan(&id, &e.FirstName, &e.LastName, &e.Role, &license, &e.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Employee{}, domain.ErrNotFound
		}
		return domain.Employee{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	if license.Valid {
		e.LicenseNumber = license.String
	}

	return e, nil
}
