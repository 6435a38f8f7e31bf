package salary

import (
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SLIP DTOs ==========

type SaveSlipRequest struct {
	WorkerID     string       `json:"-" validate:"required"`
	Month        int          `json:"month" validate:"min=0,max=11"`
	Year         int          `json:"year" validate:"min=2000,max=9999"`
	ManualInputs ManualInputs `json:"manual_inputs"`
	Status       SlipStatus   `json:"status" validate:"omitempty,oneof=draft finalized"`
}

func (r *SaveSlipRequest) Validate() error {
	if r.Status == "" {
		r.Status = SlipStatusDraft
	}
	return validator.Struct(r)
}

// PreviewRequest feeds the standalone calculator with hypothetical activity.
type PreviewRequest struct {
	EmployeeType      string       `json:"employee_type" validate:"required"`
	SubRole           string       `json:"sub_role"`
	Location          string       `json:"location"`
	OneWashCount      int          `json:"one_wash_count" validate:"min=0"`
	SubscriptionCount int          `json:"subscription_count" validate:"min=0"`
	PresentDaysCount  int          `json:"present_days_count" validate:"min=0,max=31"`
	ManualInputs      ManualInputs `json:"manual_inputs"`
}

func (r *PreviewRequest) Validate() error {
	return validator.Struct(r)
}

// ========== SETTINGS DTOs ==========

// SaveSettingsRequest replaces every tariff block of the active version.
type SaveSettingsRequest struct {
	CarWash  CarWashSettings  `json:"carWash"`
	Etisalat EtisalatSettings `json:"etisalat"`
	Mall     MallSettings     `json:"mall"`
	Camp     CampSettings     `json:"camp"`
	Outside  OutsideSettings  `json:"outside"`
}

func (r *SaveSettingsRequest) ToSettings() Settings {
	return Settings{}.WithCategoriesFrom(Settings{
		CarWash:  r.CarWash,
		Etisalat: r.Etisalat,
		Mall:     r.Mall,
		Camp:     r.Camp,
		Outside:  r.Outside,
	})
}

// ========== EXPORT / RUN DTOs ==========

type ExportResult struct {
	Path  string `json:"path"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

type RunResult struct {
	Month   int      `json:"month"`
	Year    int      `json:"year"`
	Saved   int      `json:"saved"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// MonthSummary totals the slips of one period.
type MonthSummary struct {
	SlipCount       int             `json:"slip_count"`
	TotalEarnings   decimal.Decimal `json:"total_earnings"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalPayable    decimal.Decimal `json:"total_payable"`
}

func Summarize(slips []Slip) MonthSummary {
	sum := MonthSummary{
		SlipCount:       len(slips),
		TotalEarnings:   decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalPayable:    decimal.Zero,
	}
	for _, s := range slips {
		sum.TotalEarnings = sum.TotalEarnings.Add(s.TotalEarnings)
		sum.TotalDeductions = sum.TotalDeductions.Add(s.TotalDeductions)
		sum.TotalPayable = sum.TotalPayable.Add(s.ClosingBalance)
	}
	return sum
}
