package activity

import (
	"context"
	"time"
)

// ActivityRepository reads the wash logs. Both methods return the event
// timestamps in [from, to) for non-deleted records only.
type ActivityRepository interface {
	// OneWashTimes returns createdAt of the worker's one-off washes.
	OneWashTimes(ctx context.Context, tenantID, workerID string, from, to time.Time) ([]time.Time, error)
	// CompletedJobTimes returns completedDate of the worker's completed subscription jobs.
	CompletedJobTimes(ctx context.Context, tenantID, workerID string, from, to time.Time) ([]time.Time, error)
}
