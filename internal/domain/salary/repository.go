package salary

import "context"

// SettingsRepository stores settings versions. At most one version per
// tenant is active; implementations enforce it with a unique index.
type SettingsRepository interface {
	// GetActive returns ErrSettingsNotFound when the tenant has no active version.
	GetActive(ctx context.Context, tenantID string) (Settings, error)
	// CreateActive inserts s as the active version and returns
	// ErrActiveSettingsExists when another active version won the race.
	CreateActive(ctx context.Context, s Settings) (Settings, error)
	// UpdateActive writes the listed categories of s onto the active version
	// identified by s.ID, together with LastModifiedBy.
	UpdateActive(ctx context.Context, s Settings, categories ...Category) (Settings, error)
	// Reset deactivates every version of the tenant and inserts s as the new
	// active version numbered one past the highest existing version.
	Reset(ctx context.Context, s Settings) (Settings, error)
}

type SlipRepository interface {
	// GetByPeriod returns ErrSlipNotFound when nothing is stored for the key.
	GetByPeriod(ctx context.Context, tenantID, workerID string, month, year int) (Slip, error)
	// Upsert replaces the whole slip stored under (tenant, worker, month, year).
	Upsert(ctx context.Context, slip Slip) (Slip, error)
	ListByPeriod(ctx context.Context, tenantID string, month, year int) ([]Slip, error)
}
