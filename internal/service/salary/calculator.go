package salary

import (
	"fmt"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/activity"
	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/shopspring/decimal"
)

// mallMonthDays is both the allowance divisor and the assumed attendance
// when no present days are entered for a mall worker.
const mallMonthDays = 30

// CalculationInput bundles everything one slip computation reads.
type CalculationInput struct {
	Role     salary.Role
	Settings salary.Settings
	Activity activity.Aggregate
	Manual   salary.ManualInputs
	// PriorBalance is used as last month's balance unless Manual overrides it.
	PriorBalance decimal.Decimal
}

// Calculator turns tariffs, activity and manual inputs into a breakdown.
// It performs no I/O.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

func (c *Calculator) Calculate(in CalculationInput) (salary.Breakdown, error) {
	m := in.Manual
	earnings := salary.Earnings{
		Basic:     decimal.Zero,
		Incentive: decimal.Zero,
		Allowance: decimal.Zero,
		Overtime:  decimal.Zero,
	}
	rates := map[string]decimal.Decimal{}
	attendance := salary.Attendance{
		OneWashCount:      in.Activity.OneWashCount,
		SubscriptionCount: in.Activity.SubscriptionCount,
		TotalWashes:       in.Activity.TotalWashes,
		AbsentDays:        intOr(m.AbsentDays, 0),
		SickLeaveDays:     intOr(m.SickLeaveDays, 0),
		DailyCounts:       copyCounts(in.Activity.DailyCounts),
	}

	switch role := in.Role.(type) {
	case salary.CarWash:
		tariff := in.Settings.CarWash.NightDuty
		if role.Duty == salary.DutyDay {
			tariff = in.Settings.CarWash.DayDuty
		}
		earnings.Basic = decimal.NewFromInt(int64(in.Activity.TotalWashes)).Mul(tariff.RatePerCar)
		if in.Activity.TotalWashes < tariff.IncentiveThreshold {
			earnings.Incentive = tariff.IncentiveLow
		} else {
			earnings.Incentive = tariff.IncentiveHigh
		}
		attendance.PresentDays = in.Activity.PresentDaysCount

		rates["rate_per_car"] = tariff.RatePerCar
		rates["incentive_threshold"] = decimal.NewFromInt(int64(tariff.IncentiveThreshold))
		rates["incentive_low"] = tariff.IncentiveLow
		rates["incentive_high"] = tariff.IncentiveHigh

	case salary.Mall:
		mall := in.Settings.Mall
		oneWash := decimal.NewFromInt(int64(in.Activity.OneWashCount)).Mul(mall.OneWashRate)
		subscriptions := decimal.NewFromInt(int64(in.Activity.SubscriptionCount)).Mul(mall.MonthlyRate)
		earnings.Basic = oneWash.Add(subscriptions)

		daysWorked := intOr(m.PresentDays, mallMonthDays)
		earnings.Allowance = mall.FixedAllowance.Mul(decimal.NewFromInt(int64(daysWorked))).Div(decimal.NewFromInt(mallMonthDays))
		attendance.PresentDays = daysWorked

		rates["one_wash_rate"] = mall.OneWashRate
		rates["monthly_rate"] = mall.MonthlyRate
		rates["fixed_allowance"] = mall.FixedAllowance
		rates["days_worked"] = decimal.NewFromInt(int64(daysWorked))

	case salary.Camp:
		terms := in.Settings.Camp.Settings
		if terms.StandardDays <= 0 {
			return salary.Breakdown{}, fmt.Errorf("%w: got %d", salary.ErrInvalidStandardDays, terms.StandardDays)
		}
		tariff := in.Settings.Camp.Helper
		if role.SubRole == salary.CampSubRoleMason {
			tariff = in.Settings.Camp.Mason
		}

		daysPresent := intOr(m.PresentDays, 0)
		days := decimal.NewFromInt(int64(daysPresent))
		standard := decimal.NewFromInt(int64(terms.StandardDays))
		earnings.Basic = tariff.BaseSalary.Mul(days).Div(standard)

		overtimeHours := terms.ActualHours.Sub(terms.NormalHours)
		earnings.Overtime = overtimeHours.Mul(tariff.OvertimeRate).Mul(days)

		if daysPresent >= terms.StandardDays && attendance.AbsentDays == 0 {
			earnings.Incentive = terms.MonthlyIncentive
		}
		attendance.PresentDays = daysPresent

		rates["base_salary"] = tariff.BaseSalary
		rates["standard_days"] = standard
		rates["overtime_rate"] = tariff.OvertimeRate
		rates["overtime_hours_per_day"] = overtimeHours
		rates["monthly_incentive"] = terms.MonthlyIncentive

	case salary.OutsideCamp:
		rate, ok := in.Settings.Outside[role.Position]
		if !ok {
			return salary.Breakdown{}, fmt.Errorf("%w: %q", salary.ErrMissingRate, role.Position)
		}
		hours := decOr(m.TotalHours)
		earnings.Basic = hours.Mul(rate)
		attendance.PresentDays = intOr(m.PresentDays, 0)

		rates["hourly_rate"] = rate
		rates["total_hours"] = hours

	default:
		return salary.Breakdown{}, fmt.Errorf("%w: %T", salary.ErrUnknownEmployeeType, in.Role)
	}

	etisalat := in.Settings.Etisalat
	bill := decOr(m.SimBillAmount)
	sim := etisalat.EmployeeBaseDeduction
	if bill.GreaterThan(etisalat.MonthlyBillCap) {
		sim = sim.Add(bill.Sub(etisalat.MonthlyBillCap))
	}
	rates["sim_bill_amount"] = bill
	rates["monthly_bill_cap"] = etisalat.MonthlyBillCap

	deductions := salary.Deductions{
		Sim:              sim,
		Advance:          decOr(m.Advance),
		Other:            decOr(m.OtherDeduction),
		LastMonthBalance: in.PriorBalance,
	}
	if m.LastMonthBalance != nil {
		deductions.LastMonthBalance = *m.LastMonthBalance
	}

	totalEarnings := earnings.Basic.Add(earnings.Incentive).Add(earnings.Allowance).Add(earnings.Overtime)
	totalDeductions := deductions.Sim.Add(deductions.Advance).Add(deductions.Other).Add(deductions.LastMonthBalance)

	return salary.Breakdown{
		EmployeeType: in.Role.Type(),
		SubRole:      salary.SubRoleOf(in.Role),
		Duty:         salary.DutyOf(in.Role),
		Attendance:   attendance,
		Earnings: salary.Earnings{
			Basic:     round(earnings.Basic),
			Incentive: round(earnings.Incentive),
			Allowance: round(earnings.Allowance),
			Overtime:  round(earnings.Overtime),
		},
		Deductions: salary.Deductions{
			Sim:              round(deductions.Sim),
			Advance:          round(deductions.Advance),
			Other:            round(deductions.Other),
			LastMonthBalance: round(deductions.LastMonthBalance),
		},
		TotalEarnings:   round(totalEarnings),
		TotalDeductions: round(totalDeductions),
		ClosingBalance:  round(totalEarnings.Sub(totalDeductions)),
		Rates:           rates,
	}, nil
}

// round is applied only when packaging results, never between steps.
func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func decOr(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}

func copyCounts(src map[int]int) map[int]int {
	if src == nil {
		return map[int]int{}
	}
	dst := make(map[int]int, len(src))
	for day, n := range src {
		dst[day] = n
	}
	return dst
}
