package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/cmlabs-hris/washpay-backend/internal/domain/worker"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "time/tzdata"
)

type runCall struct {
	tenantID    string
	month, year int
	preparedBy  string
}

type fakeSlipService struct {
	salary.SlipService
	mu      sync.Mutex
	calls   []runCall
	failFor string
	// partialFor reports one failed worker without an error
	partialFor string
}

func (f *fakeSlipService) RunDrafts(ctx context.Context, month, year int, preparedBy string) (salary.RunResult, error) {
	tenantID, err := tenant.FromContext(ctx)
	if err != nil {
		return salary.RunResult{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, runCall{tenantID, month, year, preparedBy})
	if tenantID == f.failFor {
		return salary.RunResult{}, errors.New("storage down")
	}
	if tenantID == f.partialFor {
		return salary.RunResult{Month: month, Year: year, Saved: 1, Failed: 1}, nil
	}
	return salary.RunResult{Month: month, Year: year, Saved: 1}, nil
}

type fakeWorkerRepo struct {
	worker.WorkerRepository
	tenants []string
}

func (f fakeWorkerRepo) ListTenants(ctx context.Context) ([]string, error) {
	return f.tenants, nil
}

func newJobs(t *testing.T, now time.Time, slips *fakeSlipService, tenants ...string) *SalaryJobs {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Dubai")
	require.NoError(t, err)
	j := NewSalaryJobs(slips, fakeWorkerRepo{tenants: tenants}, loc)
	j.now = func() time.Time { return now }
	return j
}

func TestPrepareDrafts_OnlyOnFirstDay(t *testing.T) {
	slips := &fakeSlipService{}
	j := newJobs(t, time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), slips, "t1")

	require.NoError(t, j.PrepareDrafts(context.Background()))
	assert.Empty(t, slips.calls)
}

func TestPrepareDrafts_PreviousMonthInBusinessTimezone(t *testing.T) {
	slips := &fakeSlipService{}
	// 2024-02-29 21:30 UTC is already 1 March in Dubai.
	j := newJobs(t, time.Date(2024, 2, 29, 21, 30, 0, 0, time.UTC), slips, "t1", "t2")

	require.NoError(t, j.PrepareDrafts(context.Background()))
	require.Len(t, slips.calls, 2)
	assert.Equal(t, runCall{"t1", 1, 2024, DraftPreparedBy}, slips.calls[0])
	assert.Equal(t, "t2", slips.calls[1].tenantID)
}

func TestPrepareDrafts_OncePerTenantAndPeriod(t *testing.T) {
	slips := &fakeSlipService{failFor: "t2"}
	j := newJobs(t, time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC), slips, "t1", "t2")

	err := j.PrepareDrafts(context.Background())
	assert.ErrorContains(t, err, "1 of 2 tenants")
	require.Len(t, slips.calls, 2)
	assert.Equal(t, 11, slips.calls[0].month)
	assert.Equal(t, 2023, slips.calls[0].year)

	// t1 is done, t2 is retried on the next tick
	slips.failFor = ""
	require.NoError(t, j.PrepareDrafts(context.Background()))
	require.Len(t, slips.calls, 3)
	assert.Equal(t, "t2", slips.calls[2].tenantID)
}

func TestPrepareDrafts_RetriesPartialRuns(t *testing.T) {
	slips := &fakeSlipService{partialFor: "t1"}
	j := newJobs(t, time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC), slips, "t1")

	require.NoError(t, j.PrepareDrafts(context.Background()))
	require.Len(t, slips.calls, 1)

	slips.partialFor = ""
	require.NoError(t, j.PrepareDrafts(context.Background()))
	require.Len(t, slips.calls, 2)
	assert.Equal(t, "t1", slips.calls[1].tenantID)

	// complete now, so the third tick is a no-op
	require.NoError(t, j.PrepareDrafts(context.Background()))
	assert.Len(t, slips.calls, 2)
}

func TestPrepareDrafts_StopsOnCancel(t *testing.T) {
	slips := &fakeSlipService{}
	j := newJobs(t, time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC), slips, "t1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, j.PrepareDrafts(ctx), context.Canceled)
	assert.Empty(t, slips.calls)
}

func TestScheduler_RunOnceRecoversPanics(t *testing.T) {
	s := NewScheduler()
	var ran []string
	s.AddJob("boom", time.Hour, func(ctx context.Context) error { panic("bad job") })
	s.AddJob("ok", time.Hour, func(ctx context.Context) error {
		ran = append(ran, "ok")
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, []string{"ok"}, ran)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler()
	started := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}
