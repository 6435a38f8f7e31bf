package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/activity"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/database"
)

type activityRepository struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) activity.ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) OneWashTimes(ctx context.Context, tenantID, workerID string, from, to time.Time) ([]time.Time, error) {
	query := `
		SELECT created_at FROM one_washes
		WHERE tenant_id = $1 AND worker_id = $2 AND NOT is_deleted
		  AND created_at >= $3 AND created_at < $4
	`
	times, err := r.times(ctx, query, tenantID, workerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list one-off washes: %w", err)
	}
	return times, nil
}

func (r *activityRepository) CompletedJobTimes(ctx context.Context, tenantID, workerID string, from, to time.Time) ([]time.Time, error) {
	query := `
		SELECT completed_date FROM jobs
		WHERE tenant_id = $1 AND worker_id = $2 AND NOT is_deleted
		  AND status = '` + activity.JobStatusCompleted + `'
		  AND completed_date >= $3 AND completed_date < $4
	`
	times, err := r.times(ctx, query, tenantID, workerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed jobs: %w", err)
	}
	return times, nil
}

func (r *activityRepository) times(ctx context.Context, query string, args ...interface{}) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}
