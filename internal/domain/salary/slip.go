package salary

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SlipStatus enum
type SlipStatus string

const (
	SlipStatusDraft     SlipStatus = "draft"
	SlipStatusFinalized SlipStatus = "finalized"
	// SlipStatusPreview marks a computed slip that has never been saved.
	SlipStatusPreview SlipStatus = "new_preview"
)

// ManualInputs - operator-entered values for one slip; nil means not supplied
type ManualInputs struct {
	PresentDays      *int             `json:"present_days,omitempty" validate:"omitempty,min=0,max=31"`
	AbsentDays       *int             `json:"absent_days,omitempty" validate:"omitempty,min=0,max=31"`
	SickLeaveDays    *int             `json:"sick_leave_days,omitempty" validate:"omitempty,min=0,max=31"`
	OTHours          *decimal.Decimal `json:"ot_hours,omitempty" validate:"omitempty,min=0"`
	TotalHours       *decimal.Decimal `json:"total_hours,omitempty" validate:"omitempty,min=0"`
	SimBillAmount    *decimal.Decimal `json:"sim_bill_amount,omitempty" validate:"omitempty,min=0"`
	Advance          *decimal.Decimal `json:"advance,omitempty" validate:"omitempty,min=0"`
	OtherDeduction   *decimal.Decimal `json:"other_deduction,omitempty" validate:"omitempty,min=0"`
	LastMonthBalance *decimal.Decimal `json:"last_month_balance,omitempty"`
}

type Attendance struct {
	OneWashCount      int         `json:"one_wash_count"`
	SubscriptionCount int         `json:"subscription_count"`
	TotalWashes       int         `json:"total_washes"`
	PresentDays       int         `json:"present_days"`
	AbsentDays        int         `json:"absent_days"`
	SickLeaveDays     int         `json:"sick_leave_days"`
	DailyCounts       map[int]int `json:"daily_counts"`
}

type Earnings struct {
	Basic     decimal.Decimal `json:"basic"`
	Incentive decimal.Decimal `json:"incentive"`
	Allowance decimal.Decimal `json:"allowance"`
	Overtime  decimal.Decimal `json:"overtime"`
}

type Deductions struct {
	Sim              decimal.Decimal `json:"sim"`
	Advance          decimal.Decimal `json:"advance"`
	Other            decimal.Decimal `json:"other"`
	LastMonthBalance decimal.Decimal `json:"last_month_balance"`
}

// Breakdown - calculator output, monetary fields rounded to 2 places
type Breakdown struct {
	EmployeeType    EmployeeType               `json:"employee_type"`
	SubRole         string                     `json:"sub_role,omitempty"`
	Duty            Duty                       `json:"duty,omitempty"`
	Attendance      Attendance                 `json:"attendance"`
	Earnings        Earnings                   `json:"earnings"`
	Deductions      Deductions                 `json:"deductions"`
	TotalEarnings   decimal.Decimal            `json:"total_earnings"`
	TotalDeductions decimal.Decimal            `json:"total_deductions"`
	ClosingBalance  decimal.Decimal            `json:"closing_balance"`
	Rates           map[string]decimal.Decimal `json:"rates"`
}

// Slip - persisted monthly payroll snapshot for one worker
type Slip struct {
	ID           string       `json:"id,omitempty"`
	TenantID     string       `json:"tenant_id"`
	WorkerID     string       `json:"worker_id"`
	WorkerName   string       `json:"worker_name"`
	EmployeeCode string       `json:"employee_code"`
	Month        int          `json:"month"`
	Year         int          `json:"year"`
	Breakdown
	ManualInputs ManualInputs `json:"manual_inputs"`
	Status       SlipStatus   `json:"status"`
	PreparedBy   *string      `json:"prepared_by,omitempty"`
	CalculatedAt time.Time    `json:"calculated_at"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ValidatePeriod checks a 0-based month and a calendar year.
func ValidatePeriod(month, year int) error {
	if month < 0 || month > 11 {
		return fmt.Errorf("%w: month %d is outside 0-11", ErrInvalidPeriod, month)
	}
	if year < 2000 || year > 9999 {
		return fmt.Errorf("%w: year %d", ErrInvalidPeriod, year)
	}
	return nil
}

// PreviousPeriod returns the 0-based month and year before (month, year).
func PreviousPeriod(month, year int) (int, int) {
	if month == 0 {
		return 11, year - 1
	}
	return month - 1, year
}

// CarryForward returns the part of a prior closing balance rolled into the
// next month: the signed fractional remainder of a negative balance, zero otherwise.
func CarryForward(previousClosing decimal.Decimal) decimal.Decimal {
	if !previousClosing.IsNegative() {
		return decimal.Zero
	}
	return previousClosing.Sub(previousClosing.Truncate(0))
}
