package salary

import "errors"

var (
	ErrSettingsNotFound     = errors.New("salary settings not found")
	ErrActiveSettingsExists = errors.New("active salary settings already exist")
	ErrInvalidCategory      = errors.New("invalid settings category")
	ErrUnknownEmployeeType  = errors.New("unknown employee type")
	ErrInvalidSubRole       = errors.New("invalid camp sub role")
	ErrMissingRate          = errors.New("no rate configured for position")
	ErrInvalidStandardDays  = errors.New("camp standard days must be positive")
	ErrSlipNotFound         = errors.New("salary slip not found")
	ErrInvalidPeriod        = errors.New("invalid salary period")
	ErrInvalidSlipStatus    = errors.New("invalid salary slip status")
)
