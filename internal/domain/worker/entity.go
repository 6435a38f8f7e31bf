package worker

import "time"

// Worker - read-only view of a staff profile owned by the HR flows
type Worker struct {
	ID           string
	TenantID     string
	Name         string
	EmployeeCode string
	// Role is the raw pay scheme name, e.g. "carwash", "mall", "camp".
	Role string
	// SubRole holds the camp sub role (helper, mason) or the outside-camp position.
	SubRole   string
	Location  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
