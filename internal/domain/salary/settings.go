package salary

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cmlabs-hris/washpay-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Category names one block of the tariff settings.
type Category string

const (
	CategoryCarWash  Category = "carWash"
	CategoryEtisalat Category = "etisalat"
	CategoryMall     Category = "mall"
	CategoryCamp     Category = "camp"
	CategoryOutside  Category = "outside"
)

// Categories lists every recognised settings category.
var Categories = []Category{CategoryCarWash, CategoryEtisalat, CategoryMall, CategoryCamp, CategoryOutside}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// DutyTariff - per-car pay and incentive tiers for one car wash shift
type DutyTariff struct {
	ApplicableBuildings []string        `json:"applicable_buildings" toml:"applicable_buildings"`
	RatePerCar          decimal.Decimal `json:"rate_per_car" toml:"rate_per_car"`
	IncentiveThreshold  int             `json:"incentive_threshold" toml:"incentive_threshold"`
	IncentiveLow        decimal.Decimal `json:"incentive_low" toml:"incentive_low"`
	IncentiveHigh       decimal.Decimal `json:"incentive_high" toml:"incentive_high"`
}

type CarWashSettings struct {
	DayDuty   DutyTariff `json:"day_duty" toml:"day_duty"`
	NightDuty DutyTariff `json:"night_duty" toml:"night_duty"`
}

// EtisalatSettings - company SIM plan terms
type EtisalatSettings struct {
	MonthlyBillCap        decimal.Decimal `json:"monthly_bill_cap" toml:"monthly_bill_cap"`
	CompanyPays           decimal.Decimal `json:"company_pays" toml:"company_pays"`
	EmployeeBaseDeduction decimal.Decimal `json:"employee_base_deduction" toml:"employee_base_deduction"`
}

type MallSettings struct {
	OneWashRate           decimal.Decimal `json:"one_wash_rate" toml:"one_wash_rate"`
	MonthlyRate           decimal.Decimal `json:"monthly_rate" toml:"monthly_rate"`
	FixedAllowance        decimal.Decimal `json:"fixed_allowance" toml:"fixed_allowance"`
	AbsentDeduction       decimal.Decimal `json:"absent_deduction" toml:"absent_deduction"`
	SundayAbsentDeduction decimal.Decimal `json:"sunday_absent_deduction" toml:"sunday_absent_deduction"`
	SickLeavePay          decimal.Decimal `json:"sick_leave_pay" toml:"sick_leave_pay"`
}

type CampRoleTariff struct {
	BaseSalary   decimal.Decimal `json:"base_salary" toml:"base_salary"`
	OvertimeRate decimal.Decimal `json:"overtime_rate" toml:"overtime_rate"`
}

// CampTerms - working-time terms shared by every camp sub role
type CampTerms struct {
	StandardDays     int             `json:"standard_days" toml:"standard_days"`
	NormalHours      decimal.Decimal `json:"normal_hours" toml:"normal_hours"`
	ActualHours      decimal.Decimal `json:"actual_hours" toml:"actual_hours"`
	NoDutyPay        decimal.Decimal `json:"no_duty_pay" toml:"no_duty_pay"`
	HolidayPay       decimal.Decimal `json:"holiday_pay" toml:"holiday_pay"`
	SickLeavePay     decimal.Decimal `json:"sick_leave_pay" toml:"sick_leave_pay"`
	MonthlyIncentive decimal.Decimal `json:"monthly_incentive" toml:"monthly_incentive"`
}

type CampSettings struct {
	Helper   CampRoleTariff `json:"helper" toml:"helper"`
	Mason    CampRoleTariff `json:"mason" toml:"mason"`
	Settings CampTerms      `json:"settings" toml:"settings"`
}

// OutsideSettings maps an outside-camp position to its hourly rate.
type OutsideSettings map[string]decimal.Decimal

// Settings - one version of the tenant's tariff configuration
type Settings struct {
	ID             string           `json:"id"`
	TenantID       string           `json:"tenant_id"`
	Version        int              `json:"version"`
	IsActive       bool             `json:"is_active"`
	CarWash        CarWashSettings  `json:"carWash"`
	Etisalat       EtisalatSettings `json:"etisalat"`
	Mall           MallSettings     `json:"mall"`
	Camp           CampSettings     `json:"camp"`
	Outside        OutsideSettings  `json:"outside"`
	LastModifiedBy string           `json:"last_modified_by,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// Category returns the block stored under c.
func (s Settings) Category(c Category) (any, error) {
	switch c {
	case CategoryCarWash:
		return s.CarWash, nil
	case CategoryEtisalat:
		return s.Etisalat, nil
	case CategoryMall:
		return s.Mall, nil
	case CategoryCamp:
		return s.Camp, nil
	case CategoryOutside:
		return s.Outside, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, c)
}

// MergeCategory overlays the top-level fields of patch onto category c.
// Fields absent from patch keep their current value; nested blocks are replaced whole.
func (s *Settings) MergeCategory(c Category, patch map[string]json.RawMessage) error {
	current, err := s.Category(c)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("failed to encode %s settings: %w", c, err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("failed to decode %s settings: %w", c, err)
	}

	var errs validator.ValidationErrors
	for key, value := range patch {
		// outside is an open map of positions, every other block has a fixed shape
		if _, known := fields[key]; !known && c != CategoryOutside {
			errs = append(errs, validator.ValidationError{Field: key, Message: fmt.Sprintf("is not a %s setting", c)})
			continue
		}
		fields[key] = value
	}
	if len(errs) > 0 {
		return errs
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode merged %s settings: %w", c, err)
	}
	return s.setCategory(c, merged)
}

func (s *Settings) setCategory(c Category, raw []byte) error {
	var target any
	switch c {
	case CategoryCarWash:
		target = &s.CarWash
	case CategoryEtisalat:
		target = &s.Etisalat
	case CategoryMall:
		target = &s.Mall
	case CategoryCamp:
		target = &s.Camp
	case CategoryOutside:
		s.Outside = OutsideSettings{}
		target = &s.Outside
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCategory, c)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return validator.ValidationErrors{{Field: string(c), Message: "has an invalid value: " + err.Error()}}
	}
	return nil
}

// Validate checks that every rate is usable by the calculator.
func (s Settings) Validate() error {
	var errs validator.ValidationErrors

	nonNegative := func(field string, d decimal.Decimal) {
		if d.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	for name, duty := range map[string]DutyTariff{"carWash.day_duty": s.CarWash.DayDuty, "carWash.night_duty": s.CarWash.NightDuty} {
		nonNegative(name+".rate_per_car", duty.RatePerCar)
		nonNegative(name+".incentive_low", duty.IncentiveLow)
		nonNegative(name+".incentive_high", duty.IncentiveHigh)
		if duty.IncentiveThreshold < 0 {
			errs = append(errs, validator.ValidationError{Field: name + ".incentive_threshold", Message: "must be non-negative"})
		}
	}

	nonNegative("etisalat.monthly_bill_cap", s.Etisalat.MonthlyBillCap)
	nonNegative("etisalat.company_pays", s.Etisalat.CompanyPays)
	nonNegative("etisalat.employee_base_deduction", s.Etisalat.EmployeeBaseDeduction)

	nonNegative("mall.one_wash_rate", s.Mall.OneWashRate)
	nonNegative("mall.monthly_rate", s.Mall.MonthlyRate)
	nonNegative("mall.fixed_allowance", s.Mall.FixedAllowance)
	nonNegative("mall.absent_deduction", s.Mall.AbsentDeduction)
	nonNegative("mall.sunday_absent_deduction", s.Mall.SundayAbsentDeduction)
	nonNegative("mall.sick_leave_pay", s.Mall.SickLeavePay)

	nonNegative("camp.helper.base_salary", s.Camp.Helper.BaseSalary)
	nonNegative("camp.helper.overtime_rate", s.Camp.Helper.OvertimeRate)
	nonNegative("camp.mason.base_salary", s.Camp.Mason.BaseSalary)
	nonNegative("camp.mason.overtime_rate", s.Camp.Mason.OvertimeRate)
	if s.Camp.Settings.StandardDays <= 0 {
		errs = append(errs, validator.ValidationError{Field: "camp.settings.standard_days", Message: "must be positive"})
	}
	nonNegative("camp.settings.normal_hours", s.Camp.Settings.NormalHours)
	nonNegative("camp.settings.actual_hours", s.Camp.Settings.ActualHours)
	nonNegative("camp.settings.monthly_incentive", s.Camp.Settings.MonthlyIncentive)

	for position, rate := range s.Outside {
		if position == "" {
			errs = append(errs, validator.ValidationError{Field: "outside", Message: "position name must not be empty"})
		}
		nonNegative("outside."+position, rate)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// WithCategoriesFrom copies the five tariff blocks of src onto s, keeping s's identity fields.
func (s Settings) WithCategoriesFrom(src Settings) Settings {
	s.CarWash = src.CarWash
	s.CarWash.DayDuty.ApplicableBuildings = append([]string(nil), src.CarWash.DayDuty.ApplicableBuildings...)
	s.CarWash.NightDuty.ApplicableBuildings = append([]string(nil), src.CarWash.NightDuty.ApplicableBuildings...)
	s.Etisalat = src.Etisalat
	s.Mall = src.Mall
	s.Camp = src.Camp
	s.Outside = make(OutsideSettings, len(src.Outside))
	for k, v := range src.Outside {
		s.Outside[k] = v
	}
	return s
}
