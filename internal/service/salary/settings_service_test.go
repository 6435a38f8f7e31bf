package salary

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/tenant"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_GetSettings_SeedsDefaults(t *testing.T) {
	t.Parallel()
	repo := newMemSettingsRepo()
	svc := NewSettingsService(repo, salary.DefaultSettings())

	first, err := svc.GetSettings(tenantCtx())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)
	assert.True(t, first.IsActive)
	assert.Equal(t, "system", first.LastModifiedBy)
	assertMoney(t, "52.50", first.Etisalat.MonthlyBillCap, "monthly bill cap")

	second, err := svc.GetSettings(tenantCtx())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.versions[testTenant], 1)
}

func TestSettingsService_GetSettings_RequiresTenant(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(newMemSettingsRepo(), salary.DefaultSettings())

	_, err := svc.GetSettings(context.Background())
	assert.ErrorIs(t, err, tenant.ErrTenantMissing)
}

func TestSettingsService_GetCategory(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(newMemSettingsRepo(), salary.DefaultSettings())

	block, err := svc.GetCategory(tenantCtx(), "mall")
	require.NoError(t, err)
	mall, ok := block.(salary.MallSettings)
	require.True(t, ok)
	assertMoney(t, "3.00", mall.OneWashRate, "one wash rate")

	_, err = svc.GetCategory(tenantCtx(), "payroll")
	assert.ErrorIs(t, err, salary.ErrInvalidCategory)
}

func TestSettingsService_UpdateCategory_ShallowMerge(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(newMemSettingsRepo(), salary.DefaultSettings())

	updated, err := svc.UpdateCategory(tenantCtx(), "mall", map[string]json.RawMessage{
		"one_wash_rate": json.RawMessage(`"3.25"`),
	}, "user-7")
	require.NoError(t, err)

	assertMoney(t, "3.25", updated.Mall.OneWashRate, "one wash rate")
	assertMoney(t, "1.35", updated.Mall.MonthlyRate, "monthly rate")
	assert.Equal(t, "user-7", updated.LastModifiedBy)

	reloaded, err := svc.GetSettings(tenantCtx())
	require.NoError(t, err)
	assertMoney(t, "3.25", reloaded.Mall.OneWashRate, "persisted one wash rate")
}

func TestSettingsService_UpdateCategory_OutsideAddsPosition(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(newMemSettingsRepo(), salary.DefaultSettings())

	updated, err := svc.UpdateCategory(tenantCtx(), "outside", map[string]json.RawMessage{
		"plumber": json.RawMessage(`5.25`),
	}, "user-7")
	require.NoError(t, err)

	assertMoney(t, "5.25", updated.Outside["plumber"], "plumber")
	assertMoney(t, "3.50", updated.Outside["helper"], "helper")
}

func TestSettingsService_UpdateCategory_RejectsUnknownField(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(newMemSettingsRepo(), salary.DefaultSettings())

	_, err := svc.UpdateCategory(tenantCtx(), "etisalat", map[string]json.RawMessage{
		"roaming_cap": json.RawMessage(`10`),
	}, "user-7")

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "roaming_cap", verrs[0].Field)
}

func TestSettingsService_UpdateCategory_RejectsNegativeRate(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(newMemSettingsRepo(), salary.DefaultSettings())

	_, err := svc.UpdateCategory(tenantCtx(), "camp", map[string]json.RawMessage{
		"settings": json.RawMessage(`{"standard_days": 0}`),
	}, "user-7")

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "camp.settings.standard_days")
}

func TestSettingsService_UpdateCategory_InvalidCategory(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(newMemSettingsRepo(), salary.DefaultSettings())

	_, err := svc.UpdateCategory(tenantCtx(), "bonus", map[string]json.RawMessage{"x": json.RawMessage(`1`)}, "user-7")
	assert.ErrorIs(t, err, salary.ErrInvalidCategory)
}

func TestSettingsService_SaveSettings_ReplacesAllCategories(t *testing.T) {
	t.Parallel()
	svc := NewSettingsService(newMemSettingsRepo(), salary.DefaultSettings())

	incoming := salary.DefaultSettings()
	incoming.Mall.FixedAllowance = d("250")
	incoming.Outside = salary.OutsideSettings{"welder": d("6")}

	saved, err := svc.SaveSettings(tenantCtx(), salary.SaveSettingsRequest{
		CarWash:  incoming.CarWash,
		Etisalat: incoming.Etisalat,
		Mall:     incoming.Mall,
		Camp:     incoming.Camp,
		Outside:  incoming.Outside,
	}, "user-9")
	require.NoError(t, err)

	assertMoney(t, "250", saved.Mall.FixedAllowance, "fixed allowance")
	assert.Len(t, saved.Outside, 1)
	assert.Equal(t, 1, saved.Version)
	assert.Equal(t, "user-9", saved.LastModifiedBy)
}

func TestSettingsService_ResetToDefaults_NewVersion(t *testing.T) {
	t.Parallel()
	repo := newMemSettingsRepo()
	svc := NewSettingsService(repo, salary.DefaultSettings())

	_, err := svc.UpdateCategory(tenantCtx(), "mall", map[string]json.RawMessage{
		"fixed_allowance": json.RawMessage(`"300"`),
	}, "user-7")
	require.NoError(t, err)

	reset, err := svc.ResetToDefaults(tenantCtx(), "user-8")
	require.NoError(t, err)
	assert.Equal(t, 2, reset.Version)
	assert.Equal(t, "user-8", reset.LastModifiedBy)
	assertMoney(t, "200", reset.Mall.FixedAllowance, "fixed allowance")

	active := 0
	for _, v := range repo.versions[testTenant] {
		if v.IsActive {
			active++
		}
	}
	assert.Equal(t, 1, active)
	assert.Len(t, repo.versions[testTenant], 2)
}
