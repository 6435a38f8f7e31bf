package salary

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/activity"
	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
)

// Aggregator counts a worker's washes per calendar day of a month, with day
// boundaries taken in the business timezone.
type Aggregator struct {
	activityRepo activity.ActivityRepository
	loc          *time.Location
}

func NewAggregator(activityRepo activity.ActivityRepository, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{activityRepo: activityRepo, loc: loc}
}

// MonthRange returns [first instant of the month, first instant of the next month).
func (a *Aggregator) MonthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, a.loc)
	return start, start.AddDate(0, 1, 0)
}

func (a *Aggregator) Aggregate(ctx context.Context, tenantID, workerID string, month, year int) (activity.Aggregate, error) {
	if err := salary.ValidatePeriod(month, year); err != nil {
		return activity.Aggregate{}, err
	}
	from, to := a.MonthRange(month, year)

	washes, err := a.activityRepo.OneWashTimes(ctx, tenantID, workerID, from, to)
	if err != nil {
		return activity.Aggregate{}, fmt.Errorf("failed to load one-off washes: %w", err)
	}
	jobs, err := a.activityRepo.CompletedJobTimes(ctx, tenantID, workerID, from, to)
	if err != nil {
		return activity.Aggregate{}, fmt.Errorf("failed to load completed jobs: %w", err)
	}

	lastDay := to.AddDate(0, 0, -1).Day()
	daily := make(map[int]int, lastDay)
	for day := 1; day <= lastDay; day++ {
		daily[day] = 0
	}

	bucket := func(times []time.Time) int {
		n := 0
		for _, t := range times {
			if t.Before(from) || !t.Before(to) {
				continue
			}
			daily[t.In(a.loc).Day()]++
			n++
		}
		return n
	}

	agg := activity.Aggregate{
		WorkerID:          workerID,
		Month:             month,
		Year:              year,
		OneWashCount:      bucket(washes),
		SubscriptionCount: bucket(jobs),
		DailyCounts:       daily,
	}
	agg.TotalWashes = agg.OneWashCount + agg.SubscriptionCount
	for _, n := range daily {
		if n > 0 {
			agg.PresentDaysCount++
		}
	}
	return agg, nil
}
