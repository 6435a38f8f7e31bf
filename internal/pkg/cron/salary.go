package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/cmlabs-hris/washpay-backend/internal/domain/worker"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/tenant"
)

// DraftPreparedBy is recorded on slips created by the scheduler.
const DraftPreparedBy = "system"

// SalaryJobs prepares draft slips for the month that just closed.
type SalaryJobs struct {
	slipService salary.SlipService
	workerRepo  worker.WorkerRepository
	loc         *time.Location
	now         func() time.Time

	mu   sync.Mutex
	done map[string]bool // tenant|year|month
}

func NewSalaryJobs(slipService salary.SlipService, workerRepo worker.WorkerRepository, loc *time.Location) *SalaryJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &SalaryJobs{
		slipService: slipService,
		workerRepo:  workerRepo,
		loc:         loc,
		now:         time.Now,
		done:        make(map[string]bool),
	}
}

func (j *SalaryJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("prepare_salary_drafts", interval, j.PrepareDrafts)
}

// PrepareDrafts runs on the first day of the month in the business timezone
// and drafts the previous month once per tenant.
func (j *SalaryJobs) PrepareDrafts(ctx context.Context) error {
	today := j.now().In(j.loc)
	if today.Day() != 1 {
		return nil
	}
	prev := today.AddDate(0, 0, -1)
	month, year := int(prev.Month())-1, prev.Year()

	tenants, err := j.workerRepo.ListTenants(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tenants: %w", err)
	}

	slog.Info("Cron: Starting salary draft job", "month", month, "year", year, "tenants", len(tenants))

	var failed int
	for _, tenantID := range tenants {
		if err := ctx.Err(); err != nil {
			return err
		}
		key := fmt.Sprintf("%s|%d|%d", tenantID, year, month)
		if j.isDone(key) {
			continue
		}

		result, err := j.slipService.RunDrafts(tenant.WithTenant(ctx, tenantID), month, year, DraftPreparedBy)
		if err != nil {
			failed++
			slog.Error("Cron: salary drafts failed", "tenant_id", tenantID, "error", err)
			continue
		}
		if result.Failed > 0 {
			// left undone so the next tick retries the missing workers
			slog.Warn("Cron: salary drafts incomplete",
				"tenant_id", tenantID,
				"saved", result.Saved,
				"failed", result.Failed,
			)
			continue
		}
		j.markDone(key)
		slog.Info("Cron: salary drafts prepared",
			"tenant_id", tenantID,
			"saved", result.Saved,
			"skipped", result.Skipped,
			"failed", result.Failed,
		)
	}

	if failed > 0 {
		return fmt.Errorf("salary drafts failed for %d of %d tenants", failed, len(tenants))
	}
	return nil
}

func (j *SalaryJobs) isDone(key string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.done[key]
}

func (j *SalaryJobs) markDone(key string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.done[key] = true
}
