package salary

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/metrics"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/tenant"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/validator"
)

// seedActor is recorded as the author of settings created implicitly on first read.
const seedActor = "system"

type SettingsServiceImpl struct {
	settingsRepo salary.SettingsRepository
	defaults     salary.Settings
}

func NewSettingsService(settingsRepo salary.SettingsRepository, defaults salary.Settings) salary.SettingsService {
	return &SettingsServiceImpl{
		settingsRepo: settingsRepo,
		defaults:     defaults,
	}
}

func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (salary.Settings, error) {
	tenantID, err := tenant.FromContext(ctx)
	if err != nil {
		return salary.Settings{}, err
	}
	return s.active(ctx, tenantID)
}

// active loads the tenant's active version, seeding it from defaults when absent.
func (s *SettingsServiceImpl) active(ctx context.Context, tenantID string) (salary.Settings, error) {
	current, err := s.settingsRepo.GetActive(ctx, tenantID)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, salary.ErrSettingsNotFound) {
		return salary.Settings{}, err
	}

	created, err := s.settingsRepo.CreateActive(ctx, s.fresh(tenantID, seedActor))
	if errors.Is(err, salary.ErrActiveSettingsExists) {
		// another request seeded first
		return s.settingsRepo.GetActive(ctx, tenantID)
	}
	if err != nil {
		return salary.Settings{}, err
	}

	metrics.SettingsChanges.WithLabelValues("seed").Inc()
	slog.Info("Salary settings seeded from defaults", "tenant_id", tenantID, "version", created.Version)
	return created, nil
}

func (s *SettingsServiceImpl) fresh(tenantID, modifiedBy string) salary.Settings {
	return salary.Settings{
		TenantID:       tenantID,
		Version:        1,
		IsActive:       true,
		LastModifiedBy: modifiedBy,
	}.WithCategoriesFrom(s.defaults)
}

func (s *SettingsServiceImpl) GetCategory(ctx context.Context, category string) (any, error) {
	c, err := salary.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	current, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return current.Category(c)
}

func (s *SettingsServiceImpl) SaveSettings(ctx context.Context, req salary.SaveSettingsRequest, modifiedBy string) (salary.Settings, error) {
	incoming := req.ToSettings()
	if err := incoming.Validate(); err != nil {
		return salary.Settings{}, err
	}

	current, err := s.GetSettings(ctx)
	if err != nil {
		return salary.Settings{}, err
	}
	current = current.WithCategoriesFrom(incoming)
	current.LastModifiedBy = modifiedBy

	updated, err := s.settingsRepo.UpdateActive(ctx, current, salary.Categories...)
	if err != nil {
		return salary.Settings{}, err
	}
	metrics.SettingsChanges.WithLabelValues("save").Inc()
	return updated, nil
}

func (s *SettingsServiceImpl) UpdateCategory(ctx context.Context, category string, partial map[string]json.RawMessage, modifiedBy string) (salary.Settings, error) {
	c, err := salary.ParseCategory(category)
	if err != nil {
		return salary.Settings{}, err
	}
	if len(partial) == 0 {
		return salary.Settings{}, validator.ValidationErrors{{Field: category, Message: "must contain at least one field"}}
	}

	current, err := s.GetSettings(ctx)
	if err != nil {
		return salary.Settings{}, err
	}
	if err := current.MergeCategory(c, partial); err != nil {
		return salary.Settings{}, err
	}
	if err := current.Validate(); err != nil {
		return salary.Settings{}, err
	}
	current.LastModifiedBy = modifiedBy

	updated, err := s.settingsRepo.UpdateActive(ctx, current, c)
	if err != nil {
		return salary.Settings{}, err
	}
	metrics.SettingsChanges.WithLabelValues("update").Inc()
	slog.Info("Salary settings category updated", "tenant_id", updated.TenantID, "category", c, "modified_by", modifiedBy)
	return updated, nil
}

func (s *SettingsServiceImpl) ResetToDefaults(ctx context.Context, modifiedBy string) (salary.Settings, error) {
	tenantID, err := tenant.FromContext(ctx)
	if err != nil {
		return salary.Settings{}, err
	}

	reset, err := s.settingsRepo.Reset(ctx, s.fresh(tenantID, modifiedBy))
	if err != nil {
		return salary.Settings{}, err
	}
	metrics.SettingsChanges.WithLabelValues("reset").Inc()
	slog.Info("Salary settings reset to defaults", "tenant_id", tenantID, "version", reset.Version, "modified_by", modifiedBy)
	return reset, nil
}
