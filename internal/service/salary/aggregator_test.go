package salary

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator_EveryDayPresent(t *testing.T) {
	t.Parallel()
	repo := newMemActivityRepo()
	repo.addWashes("w1", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), 4)
	repo.addJobs("w1", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), 2)
	repo.addJobs("w1", time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC), 5)

	// February 2024 has 29 days; month is 0-based
	agg, err := NewAggregator(repo, time.UTC).Aggregate(context.Background(), testTenant, "w1", 1, 2024)
	require.NoError(t, err)
	assert.Len(t, agg.DailyCounts, 29)
	assert.Equal(t, 0, agg.TotalWashes, "january activity must not count in february")

	agg, err = NewAggregator(repo, time.UTC).Aggregate(context.Background(), testTenant, "w1", 0, 2024)
	require.NoError(t, err)
	assert.Len(t, agg.DailyCounts, 31)
	assert.Equal(t, 6, agg.DailyCounts[3])
	assert.Equal(t, 5, agg.DailyCounts[17])
	assert.Equal(t, 0, agg.DailyCounts[31])
	assert.Equal(t, 4, agg.OneWashCount)
	assert.Equal(t, 7, agg.SubscriptionCount)
	assert.Equal(t, 11, agg.TotalWashes)
	assert.Equal(t, 2, agg.PresentDaysCount)
}

func TestAggregator_BusinessTimezoneBoundaries(t *testing.T) {
	t.Parallel()
	dubai, err := time.LoadLocation("Asia/Dubai")
	require.NoError(t, err)

	repo := newMemActivityRepo()
	repo.washes["w1"] = []time.Time{
		time.Date(2023, 12, 31, 20, 30, 0, 0, time.UTC), // Jan 1 00:30 local
		time.Date(2024, 1, 31, 19, 30, 0, 0, time.UTC),  // Jan 31 23:30 local
		time.Date(2024, 1, 31, 20, 30, 0, 0, time.UTC),  // Feb 1 00:30 local
		time.Date(2023, 12, 31, 19, 0, 0, 0, time.UTC),  // Dec 31 23:00 local
	}

	agg, err := NewAggregator(repo, dubai).Aggregate(context.Background(), testTenant, "w1", 0, 2024)
	require.NoError(t, err)

	assert.Equal(t, 1, agg.DailyCounts[1])
	assert.Equal(t, 1, agg.DailyCounts[31])
	assert.Equal(t, 2, agg.OneWashCount)
	assert.Equal(t, 2, agg.PresentDaysCount)
}

func TestAggregator_MonthRange(t *testing.T) {
	t.Parallel()
	a := NewAggregator(newMemActivityRepo(), time.UTC)

	from, to := a.MonthRange(11, 2023)
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestAggregator_InvalidPeriod(t *testing.T) {
	t.Parallel()
	a := NewAggregator(newMemActivityRepo(), time.UTC)

	_, err := a.Aggregate(context.Background(), testTenant, "w1", 12, 2024)
	assert.ErrorIs(t, err, salary.ErrInvalidPeriod)

	_, err = a.Aggregate(context.Background(), testTenant, "w1", -1, 2024)
	assert.ErrorIs(t, err, salary.ErrInvalidPeriod)

	_, err = a.Aggregate(context.Background(), testTenant, "w1", 0, 1999)
	assert.ErrorIs(t, err, salary.ErrInvalidPeriod)
}

func TestAggregator_StorageFailure(t *testing.T) {
	t.Parallel()
	repo := newMemActivityRepo()
	boom := errors.New("connection refused")
	repo.err = boom

	_, err := NewAggregator(repo, time.UTC).Aggregate(context.Background(), testTenant, "w1", 0, 2024)
	assert.ErrorIs(t, err, boom)
}
