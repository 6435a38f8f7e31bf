package worker

import "context"

// WorkerRepository is the read side of the worker directory.
type WorkerRepository interface {
	GetByID(ctx context.Context, tenantID, id string) (Worker, error)
	ListActive(ctx context.Context, tenantID string) ([]Worker, error)
	// ListTenants returns every tenant that has at least one active worker.
	ListTenants(ctx context.Context) ([]string, error)
}
