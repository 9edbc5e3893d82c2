package domain

import "github.com/google/uuid"

// EmployeeRole is the job function of an employee.
type EmployeeRole string

const (
	RoleDriver  EmployeeRole = "Driver"
	RoleHelper  EmployeeRole = "Helper"
	RoleEncoder EmployeeRole = "Encoder"
)

// EmployeeRoles lists every valid employee role value.
var EmployeeRoles = []EmployeeRole{RoleDriver, RoleHelper, RoleEncoder}

// Employee is a crew member. Drivers are employees with role Driver and a
// license number; helpers and encoders have no license.
type Employee struct {
	ID            uuid.UUID    `json:"employee_id"`
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	Role          EmployeeRole `json:"role"`
	LicenseNumber string       `json:"license_number,omitempty"`
	IsActive      bool         `json:"is_active"`
}
