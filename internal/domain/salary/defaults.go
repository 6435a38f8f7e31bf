package salary

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultSettings returns the tariff a tenant starts with.
func DefaultSettings() Settings {
	return Settings{
		CarWash: CarWashSettings{
			DayDuty: DutyTariff{
				ApplicableBuildings: []string{"Marina Heights", "Al Reem Tower", "Business Bay Plaza"},
				RatePerCar:          dec("1.40"),
				IncentiveThreshold:  1000,
				IncentiveLow:        dec("100"),
				IncentiveHigh:       dec("200"),
			},
			NightDuty: DutyTariff{
				ApplicableBuildings: []string{},
				RatePerCar:          dec("1.35"),
				IncentiveThreshold:  1000,
				IncentiveLow:        dec("100"),
				IncentiveHigh:       dec("200"),
			},
		},
		Etisalat: EtisalatSettings{
			MonthlyBillCap:        dec("52.50"),
			CompanyPays:           dec("26.25"),
			EmployeeBaseDeduction: dec("26.25"),
		},
		Mall: MallSettings{
			OneWashRate:           dec("3.00"),
			MonthlyRate:           dec("1.35"),
			FixedAllowance:        dec("200"),
			AbsentDeduction:       dec("25"),
			SundayAbsentDeduction: dec("50"),
			SickLeavePay:          decimal.Zero,
		},
		Camp: CampSettings{
			Helper: CampRoleTariff{BaseSalary: dec("1000"), OvertimeRate: dec("4.50")},
			Mason:  CampRoleTariff{BaseSalary: dec("1200"), OvertimeRate: dec("5.50")},
			Settings: CampTerms{
				StandardDays:     30,
				NormalHours:      dec("8"),
				ActualHours:      dec("10"),
				NoDutyPay:        dec("18"),
				HolidayPay:       dec("35"),
				SickLeavePay:     dec("33"),
				MonthlyIncentive: dec("100"),
			},
		},
		Outside: OutsideSettings{
			"helper":      dec("3.50"),
			"mason":       dec("4.50"),
			"carpenter":   dec("5.00"),
			"electrician": dec("5.50"),
		},
	}
}

// LoadDefaultsFile overlays the tariff blocks found in a TOML file onto the
// built-in defaults. Keys missing from the file keep their built-in value.
//
//	[mall]
//	one_wash_rate = "3.25"
//
//	[outside]
//	plumber = "5.25"
func LoadDefaultsFile(path string) (Settings, error) {
	defaults := DefaultSettings()

	var file struct {
		CarWash  *CarWashSettings  `toml:"carWash"`
		Etisalat *EtisalatSettings `toml:"etisalat"`
		Mall     *MallSettings     `toml:"mall"`
		Camp     *CampSettings     `toml:"camp"`
		Outside  OutsideSettings   `toml:"outside"`
	}
	file.CarWash = &defaults.CarWash
	file.Etisalat = &defaults.Etisalat
	file.Mall = &defaults.Mall
	file.Camp = &defaults.Camp

	if _, err := toml.DecodeFile(path, &file); err != nil {
		return Settings{}, fmt.Errorf("failed to read salary defaults file %s: %w", path, err)
	}
	for position, rate := range file.Outside {
		defaults.Outside[position] = rate
	}

	if err := defaults.Validate(); err != nil {
		return Settings{}, fmt.Errorf("salary defaults file %s: %w", path, err)
	}
	return defaults, nil
}
