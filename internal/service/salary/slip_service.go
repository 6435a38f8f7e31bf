package salary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/activity"
	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/cmlabs-hris/washpay-backend/internal/domain/worker"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/metrics"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/tenant"
	"github.com/shopspring/decimal"
)

type SlipServiceImpl struct {
	settingsService salary.SettingsService
	slipRepo        salary.SlipRepository
	workerRepo      worker.WorkerRepository
	aggregator      *Aggregator
	calculator      *Calculator
	balances        salary.PriorBalanceResolver
	now             func() time.Time
}

func NewSlipService(
	settingsService salary.SettingsService,
	slipRepo salary.SlipRepository,
	workerRepo worker.WorkerRepository,
	aggregator *Aggregator,
	calculator *Calculator,
	balances salary.PriorBalanceResolver,
) salary.SlipService {
	return &SlipServiceImpl{
		settingsService: settingsService,
		slipRepo:        slipRepo,
		workerRepo:      workerRepo,
		aggregator:      aggregator,
		calculator:      calculator,
		balances:        balances,
		now:             time.Now,
	}
}

func (s *SlipServiceImpl) GetSlip(ctx context.Context, workerID string, month, year int) (salary.Slip, error) {
	if err := salary.ValidatePeriod(month, year); err != nil {
		return salary.Slip{}, err
	}
	tenantID, err := tenant.FromContext(ctx)
	if err != nil {
		return salary.Slip{}, err
	}

	stored, err := s.slipRepo.GetByPeriod(ctx, tenantID, workerID, month, year)
	if err == nil {
		return stored, nil
	}
	if !errors.Is(err, salary.ErrSlipNotFound) {
		return salary.Slip{}, err
	}

	preview, err := s.compute(ctx, tenantID, workerID, month, year, salary.ManualInputs{})
	if err != nil {
		return salary.Slip{}, err
	}
	preview.Status = salary.SlipStatusPreview
	metrics.SlipPreviews.Inc()
	return preview, nil
}

func (s *SlipServiceImpl) SaveSlip(ctx context.Context, req salary.SaveSlipRequest, preparedBy string) (salary.Slip, error) {
	if err := req.Validate(); err != nil {
		return salary.Slip{}, err
	}
	tenantID, err := tenant.FromContext(ctx)
	if err != nil {
		return salary.Slip{}, err
	}

	slip, err := s.compute(ctx, tenantID, req.WorkerID, req.Month, req.Year, req.ManualInputs)
	if err != nil {
		return salary.Slip{}, err
	}
	slip.Status = req.Status
	if preparedBy != "" {
		slip.PreparedBy = &preparedBy
	}

	saved, err := s.slipRepo.Upsert(ctx, slip)
	if err != nil {
		return salary.Slip{}, err
	}
	metrics.SlipsSaved.WithLabelValues(string(saved.Status)).Inc()
	return saved, nil
}

func (s *SlipServiceImpl) ListSlips(ctx context.Context, month, year int) ([]salary.Slip, error) {
	if err := salary.ValidatePeriod(month, year); err != nil {
		return nil, err
	}
	tenantID, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.slipRepo.ListByPeriod(ctx, tenantID, month, year)
}

func (s *SlipServiceImpl) Attendance(ctx context.Context, workerID string, month, year int) (activity.Aggregate, error) {
	tenantID, err := tenant.FromContext(ctx)
	if err != nil {
		return activity.Aggregate{}, err
	}
	if _, err := s.workerRepo.GetByID(ctx, tenantID, workerID); err != nil {
		return activity.Aggregate{}, err
	}
	return s.aggregator.Aggregate(ctx, tenantID, workerID, month, year)
}

// Preview differs from the slip flow on unknown employee types: it rejects
// them instead of paying the worker as car wash staff.
func (s *SlipServiceImpl) Preview(ctx context.Context, req salary.PreviewRequest) (salary.Breakdown, error) {
	if err := req.Validate(); err != nil {
		return salary.Breakdown{}, err
	}
	employeeType, err := salary.ParseEmployeeType(req.EmployeeType)
	if err != nil {
		return salary.Breakdown{}, err
	}

	settings, err := s.settingsService.GetSettings(ctx)
	if err != nil {
		return salary.Breakdown{}, err
	}
	role, err := salary.ResolveRole(employeeType, req.SubRole, req.Location, settings)
	if err != nil {
		return salary.Breakdown{}, err
	}

	b, err := s.calculator.Calculate(CalculationInput{
		Role:     role,
		Settings: settings,
		Activity: activity.Aggregate{
			OneWashCount:      req.OneWashCount,
			SubscriptionCount: req.SubscriptionCount,
			TotalWashes:       req.OneWashCount + req.SubscriptionCount,
			PresentDaysCount:  req.PresentDaysCount,
		},
		Manual:       req.ManualInputs,
		PriorBalance: decimal.Zero,
	})
	recordCalculation(role.Type(), err)
	return b, err
}

func (s *SlipServiceImpl) RunDrafts(ctx context.Context, month, year int, preparedBy string) (salary.RunResult, error) {
	if err := salary.ValidatePeriod(month, year); err != nil {
		return salary.RunResult{}, err
	}
	tenantID, err := tenant.FromContext(ctx)
	if err != nil {
		return salary.RunResult{}, err
	}

	workers, err := s.workerRepo.ListActive(ctx, tenantID)
	if err != nil {
		return salary.RunResult{}, err
	}

	result := salary.RunResult{Month: month, Year: year}
	for _, w := range workers {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		manual := salary.ManualInputs{}
		existing, err := s.slipRepo.GetByPeriod(ctx, tenantID, w.ID, month, year)
		switch {
		case err == nil && existing.Status == salary.SlipStatusFinalized:
			result.Skipped++
			metrics.DraftRunSlips.WithLabelValues("skipped").Inc()
			continue
		case err == nil:
			// refresh the draft but keep what the operator already entered
			manual = existing.ManualInputs
		case !errors.Is(err, salary.ErrSlipNotFound):
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", w.ID, err))
			metrics.DraftRunSlips.WithLabelValues("failed").Inc()
			continue
		}

		_, err = s.SaveSlip(ctx, salary.SaveSlipRequest{
			WorkerID:     w.ID,
			Month:        month,
			Year:         year,
			ManualInputs: manual,
			Status:       salary.SlipStatusDraft,
		}, preparedBy)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", w.ID, err))
			metrics.DraftRunSlips.WithLabelValues("failed").Inc()
			slog.Warn("Draft slip failed", "tenant_id", tenantID, "worker_id", w.ID, "error", err)
			continue
		}
		result.Saved++
		metrics.DraftRunSlips.WithLabelValues("saved").Inc()
	}

	slog.Info("Draft slip run finished",
		"tenant_id", tenantID, "month", month, "year", year,
		"saved", result.Saved, "skipped", result.Skipped, "failed", result.Failed)
	return result, nil
}

// compute loads the worker, settings, activity and carry-forward and runs the calculator.
func (s *SlipServiceImpl) compute(ctx context.Context, tenantID, workerID string, month, year int, manual salary.ManualInputs) (salary.Slip, error) {
	start := time.Now()
	defer func() { metrics.CalculationDuration.Observe(time.Since(start).Seconds()) }()

	w, err := s.workerRepo.GetByID(ctx, tenantID, workerID)
	if err != nil {
		return salary.Slip{}, err
	}
	settings, err := s.settingsService.GetSettings(ctx)
	if err != nil {
		return salary.Slip{}, err
	}
	role, err := roleForWorker(w, settings)
	if err != nil {
		return salary.Slip{}, err
	}
	agg, err := s.aggregator.Aggregate(ctx, tenantID, workerID, month, year)
	if err != nil {
		return salary.Slip{}, err
	}

	prior := decimal.Zero
	if manual.LastMonthBalance == nil {
		prior, err = s.balances.PriorBalance(ctx, tenantID, workerID, month, year)
		if err != nil {
			return salary.Slip{}, err
		}
	}

	b, err := s.calculator.Calculate(CalculationInput{
		Role:         role,
		Settings:     settings,
		Activity:     agg,
		Manual:       manual,
		PriorBalance: prior,
	})
	recordCalculation(role.Type(), err)
	if err != nil {
		return salary.Slip{}, err
	}

	return salary.Slip{
		TenantID:     tenantID,
		WorkerID:     w.ID,
		WorkerName:   w.Name,
		EmployeeCode: w.EmployeeCode,
		Month:        month,
		Year:         year,
		Breakdown:    b,
		ManualInputs: manual,
		CalculatedAt: s.now().UTC(),
	}, nil
}

// roleForWorker maps a worker profile onto a role variant. Unrecognised
// roles are paid as car wash staff.
func roleForWorker(w worker.Worker, settings salary.Settings) (salary.Role, error) {
	employeeType, err := salary.ParseEmployeeType(w.Role)
	if err != nil {
		slog.Warn("Unknown worker role, using car wash tariff", "worker_id", w.ID, "role", w.Role)
		employeeType = salary.EmployeeTypeCarWash
	}
	return salary.ResolveRole(employeeType, w.SubRole, w.Location, settings)
}

func recordCalculation(t salary.EmployeeType, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.SlipCalculations.WithLabelValues(string(t), result).Inc()
}
