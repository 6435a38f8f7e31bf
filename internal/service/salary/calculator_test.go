package salary

import (
	"testing"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/activity"
	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertMoney(t *testing.T, expected string, actual decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, d(expected).Equal(actual), "%s: expected %s, got %s", field, expected, actual.String())
}

// ===== CAR WASH =====

func TestCalculator_CarWash_DayDutyByBuilding(t *testing.T) {
	t.Parallel()
	settings := salary.DefaultSettings()

	role, err := salary.ResolveRole(salary.EmployeeTypeCarWash, "", "Tower B, Marina Heights", settings)
	require.NoError(t, err)
	assert.Equal(t, salary.CarWash{Duty: salary.DutyDay}, role)

	b, err := NewCalculator().Calculate(CalculationInput{
		Role:     role,
		Settings: settings,
		Activity: activity.Aggregate{OneWashCount: 400, SubscriptionCount: 100, TotalWashes: 500, PresentDaysCount: 22},
	})
	require.NoError(t, err)

	assertMoney(t, "700.00", b.Earnings.Basic, "basic")
	assertMoney(t, "100.00", b.Earnings.Incentive, "incentive")
	assert.Equal(t, 22, b.Attendance.PresentDays)
	assert.Equal(t, salary.DutyDay, b.Duty)
}

func TestCalculator_CarWash_NightDutyWhenNoBuildingMatches(t *testing.T) {
	t.Parallel()
	settings := salary.DefaultSettings()

	role, err := salary.ResolveRole(salary.EmployeeTypeCarWash, "", "Jumeirah Village", settings)
	require.NoError(t, err)

	b, err := NewCalculator().Calculate(CalculationInput{
		Role:     role,
		Settings: settings,
		Activity: activity.Aggregate{TotalWashes: 100},
	})
	require.NoError(t, err)

	assert.Equal(t, salary.DutyNight, b.Duty)
	assertMoney(t, "135.00", b.Earnings.Basic, "basic")
}

func TestCalculator_CarWash_IncentiveTieBreak(t *testing.T) {
	t.Parallel()
	settings := salary.DefaultSettings()
	calc := NewCalculator()

	cases := []struct {
		washes    int
		incentive string
	}{
		{999, "100"},
		{1000, "200"},
		{1001, "200"},
	}
	for _, tc := range cases {
		b, err := calc.Calculate(CalculationInput{
			Role:     salary.CarWash{Duty: salary.DutyNight},
			Settings: settings,
			Activity: activity.Aggregate{TotalWashes: tc.washes},
		})
		require.NoError(t, err)
		assertMoney(t, tc.incentive, b.Earnings.Incentive, "incentive")
	}
}

// ===== MALL =====

func TestCalculator_Mall_EndToEnd(t *testing.T) {
	t.Parallel()

	b, err := NewCalculator().Calculate(CalculationInput{
		Role:     salary.Mall{},
		Settings: salary.DefaultSettings(),
		Activity: activity.Aggregate{OneWashCount: 28, TotalWashes: 28},
	})
	require.NoError(t, err)

	assertMoney(t, "84.00", b.Earnings.Basic, "basic")
	assertMoney(t, "200.00", b.Earnings.Allowance, "allowance")
	assertMoney(t, "284.00", b.TotalEarnings, "total earnings")
	assertMoney(t, "26.25", b.TotalDeductions, "total deductions")
	assertMoney(t, "257.75", b.ClosingBalance, "closing balance")
	assert.Equal(t, 30, b.Attendance.PresentDays)
}

func TestCalculator_Mall_AllowanceProration(t *testing.T) {
	t.Parallel()

	b, err := NewCalculator().Calculate(CalculationInput{
		Role:     salary.Mall{},
		Settings: salary.DefaultSettings(),
		Manual:   salary.ManualInputs{PresentDays: intPtr(15)},
	})
	require.NoError(t, err)

	assertMoney(t, "100.00", b.Earnings.Allowance, "allowance")
}

func TestCalculator_Mall_SubscriptionRate(t *testing.T) {
	t.Parallel()

	b, err := NewCalculator().Calculate(CalculationInput{
		Role:     salary.Mall{},
		Settings: salary.DefaultSettings(),
		Activity: activity.Aggregate{OneWashCount: 10, SubscriptionCount: 20, TotalWashes: 30},
		Manual:   salary.ManualInputs{PresentDays: intPtr(30)},
	})
	require.NoError(t, err)

	// 10 x 3.00 + 20 x 1.35
	assertMoney(t, "57.00", b.Earnings.Basic, "basic")
}

// ===== CAMP =====

func TestCalculator_Camp_FullAttendanceIncentive(t *testing.T) {
	t.Parallel()

	b, err := NewCalculator().Calculate(CalculationInput{
		Role:     salary.Camp{SubRole: salary.CampSubRoleHelper},
		Settings: salary.DefaultSettings(),
		Manual:   salary.ManualInputs{PresentDays: intPtr(30), AbsentDays: intPtr(0)},
	})
	require.NoError(t, err)

	assertMoney(t, "1000.00", b.Earnings.Basic, "basic")
	// (10 - 8) x 4.50 x 30
	assertMoney(t, "270.00", b.Earnings.Overtime, "overtime")
	assertMoney(t, "100.00", b.Earnings.Incentive, "incentive")
}

func TestCalculator_Camp_NoIncentiveWithAbsence(t *testing.T) {
	t.Parallel()

	b, err := NewCalculator().Calculate(CalculationInput{
		Role:     salary.Camp{SubRole: salary.CampSubRoleMason},
		Settings: salary.DefaultSettings(),
		Manual:   salary.ManualInputs{PresentDays: intPtr(30), AbsentDays: intPtr(1)},
	})
	require.NoError(t, err)

	assertMoney(t, "1200.00", b.Earnings.Basic, "basic")
	assertMoney(t, "330.00", b.Earnings.Overtime, "overtime")
	assertMoney(t, "0", b.Earnings.Incentive, "incentive")
	assert.Equal(t, "mason", b.SubRole)
}

func TestCalculator_Camp_PartialMonth(t *testing.T) {
	t.Parallel()

	b, err := NewCalculator().Calculate(CalculationInput{
		Role:     salary.Camp{SubRole: salary.CampSubRoleHelper},
		Settings: salary.DefaultSettings(),
		Manual:   salary.ManualInputs{PresentDays: intPtr(20)},
	})
	require.NoError(t, err)

	// 1000 / 30 x 20 = 666.666...
	assertMoney(t, "666.67", b.Earnings.Basic, "basic")
	assertMoney(t, "0", b.Earnings.Incentive, "incentive")
}

func TestCalculator_Camp_InvalidStandardDays(t *testing.T) {
	t.Parallel()
	settings := salary.DefaultSettings()
	settings.Camp.Settings.StandardDays = 0

	_, err := NewCalculator().Calculate(CalculationInput{
		Role:     salary.Camp{SubRole: salary.CampSubRoleHelper},
		Settings: settings,
		Manual:   salary.ManualInputs{PresentDays: intPtr(10)},
	})
	assert.ErrorIs(t, err, salary.ErrInvalidStandardDays)
}

// ===== OUTSIDE CAMP =====

func TestCalculator_OutsideCamp_HourlyRate(t *testing.T) {
	t.Parallel()

	b, err := NewCalculator().Calculate(CalculationInput{
		Role:     salary.OutsideCamp{Position: "electrician"},
		Settings: salary.DefaultSettings(),
		Manual:   salary.ManualInputs{TotalHours: decPtr("200")},
	})
	require.NoError(t, err)

	assertMoney(t, "1100.00", b.Earnings.Basic, "basic")
}

func TestCalculator_OutsideCamp_MissingRate(t *testing.T) {
	t.Parallel()

	_, err := NewCalculator().Calculate(CalculationInput{
		Role:     salary.OutsideCamp{Position: "plumber"},
		Settings: salary.DefaultSettings(),
		Manual:   salary.ManualInputs{TotalHours: decPtr("10")},
	})
	assert.ErrorIs(t, err, salary.ErrMissingRate)
}

// ===== DEDUCTIONS =====

func TestCalculator_SimOverage(t *testing.T) {
	t.Parallel()

	b, err := NewCalculator().Calculate(CalculationInput{
		Role:     salary.Mall{},
		Settings: salary.DefaultSettings(),
		Manual:   salary.ManualInputs{SimBillAmount: decPtr("60.00")},
	})
	require.NoError(t, err)

	assertMoney(t, "33.75", b.Deductions.Sim, "sim")
}

func TestCalculator_SimWithinCap(t *testing.T) {
	t.Parallel()

	b, err := NewCalculator().Calculate(CalculationInput{
		Role:     salary.Mall{},
		Settings: salary.DefaultSettings(),
		Manual:   salary.ManualInputs{SimBillAmount: decPtr("52.50")},
	})
	require.NoError(t, err)

	assertMoney(t, "26.25", b.Deductions.Sim, "sim")
}

func TestCalculator_ManualBalanceOverridesPrior(t *testing.T) {
	t.Parallel()
	calc := NewCalculator()

	fromResolver, err := calc.Calculate(CalculationInput{
		Role:         salary.Mall{},
		Settings:     salary.DefaultSettings(),
		PriorBalance: d("-0.37"),
	})
	require.NoError(t, err)
	assertMoney(t, "-0.37", fromResolver.Deductions.LastMonthBalance, "resolver balance")

	manual, err := calc.Calculate(CalculationInput{
		Role:         salary.Mall{},
		Settings:     salary.DefaultSettings(),
		Manual:       salary.ManualInputs{LastMonthBalance: decPtr("12.5"), Advance: decPtr("50"), OtherDeduction: decPtr("10")},
		PriorBalance: d("-0.37"),
	})
	require.NoError(t, err)
	assertMoney(t, "12.50", manual.Deductions.LastMonthBalance, "manual balance")
	// 26.25 + 50 + 10 + 12.50
	assertMoney(t, "98.75", manual.TotalDeductions, "total deductions")
}

func TestCalculator_RoundsToTwoDecimals(t *testing.T) {
	t.Parallel()

	b, err := NewCalculator().Calculate(CalculationInput{
		Role:     salary.Mall{},
		Settings: salary.DefaultSettings(),
		Manual:   salary.ManualInputs{PresentDays: intPtr(7)},
	})
	require.NoError(t, err)

	// 200 x 7 / 30 = 46.666...
	assertMoney(t, "46.67", b.Earnings.Allowance, "allowance")
	for name, v := range map[string]decimal.Decimal{
		"basic":            b.Earnings.Basic,
		"allowance":        b.Earnings.Allowance,
		"sim":              b.Deductions.Sim,
		"total_earnings":   b.TotalEarnings,
		"total_deductions": b.TotalDeductions,
		"closing_balance":  b.ClosingBalance,
	} {
		assert.Equal(t, int32(-2), v.Exponent(), name)
	}
}

func TestCarryForward(t *testing.T) {
	t.Parallel()

	cases := []struct {
		closing  string
		expected string
	}{
		{"-4.37", "-0.37"},
		{"-12", "0"},
		{"120", "0"},
		{"0", "0"},
		{"0.75", "0"},
	}
	for _, tc := range cases {
		assertMoney(t, tc.expected, salary.CarryForward(d(tc.closing)), "carry forward of "+tc.closing)
	}
}
