package salary

import (
	"fmt"
	"strings"
)

// EmployeeType is the pay scheme recorded on a worker profile.
type EmployeeType string

const (
	EmployeeTypeCarWash          EmployeeType = "carwash"
	EmployeeTypeMall             EmployeeType = "mall"
	EmployeeTypeCamp             EmployeeType = "camp"
	EmployeeTypeConstructionCamp EmployeeType = "constructionCamp"
	EmployeeTypeOutsideCamp      EmployeeType = "outsideCamp"
)

func ParseEmployeeType(s string) (EmployeeType, error) {
	switch EmployeeType(s) {
	case EmployeeTypeCarWash, EmployeeTypeMall, EmployeeTypeCamp, EmployeeTypeConstructionCamp, EmployeeTypeOutsideCamp:
		return EmployeeType(s), nil
	case "outside":
		return EmployeeTypeOutsideCamp, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEmployeeType, s)
}

type Duty string

const (
	DutyDay   Duty = "day"
	DutyNight Duty = "night"
)

type CampSubRole string

const (
	CampSubRoleHelper CampSubRole = "helper"
	CampSubRoleMason  CampSubRole = "mason"
)

// DefaultOutsidePosition is used when an outside-camp worker has no position.
const DefaultOutsidePosition = "helper"

// Role is the calculation branch a worker is paid under. The set of
// implementations is closed: CarWash, Mall, Camp and OutsideCamp.
type Role interface {
	Type() EmployeeType
	isRole()
}

type CarWash struct {
	Duty Duty
}

type Mall struct{}

type Camp struct {
	SubRole CampSubRole
}

type OutsideCamp struct {
	Position string
}

func (CarWash) Type() EmployeeType     { return EmployeeTypeCarWash }
func (Mall) Type() EmployeeType        { return EmployeeTypeMall }
func (Camp) Type() EmployeeType        { return EmployeeTypeCamp }
func (OutsideCamp) Type() EmployeeType { return EmployeeTypeOutsideCamp }

func (CarWash) isRole()     {}
func (Mall) isRole()        {}
func (Camp) isRole()        {}
func (OutsideCamp) isRole() {}

// ResolveRole builds the role variant for an employee type. subRole is the
// camp sub role or the outside-camp position; location picks the car wash duty.
func ResolveRole(t EmployeeType, subRole, location string, settings Settings) (Role, error) {
	switch t {
	case EmployeeTypeCarWash:
		return CarWash{Duty: DutyFor(location, settings.CarWash)}, nil
	case EmployeeTypeMall:
		return Mall{}, nil
	case EmployeeTypeCamp, EmployeeTypeConstructionCamp:
		switch CampSubRole(subRole) {
		case "", CampSubRoleHelper:
			return Camp{SubRole: CampSubRoleHelper}, nil
		case CampSubRoleMason:
			return Camp{SubRole: CampSubRoleMason}, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrInvalidSubRole, subRole)
	case EmployeeTypeOutsideCamp:
		if subRole == "" {
			subRole = DefaultOutsidePosition
		}
		return OutsideCamp{Position: subRole}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEmployeeType, t)
}

// DutyFor returns day duty when location contains any day-duty building name.
func DutyFor(location string, cw CarWashSettings) Duty {
	for _, building := range cw.DayDuty.ApplicableBuildings {
		if building != "" && strings.Contains(location, building) {
			return DutyDay
		}
	}
	return DutyNight
}

// SubRoleOf returns the sub role or position label of r, empty for roles without one.
func SubRoleOf(r Role) string {
	switch v := r.(type) {
	case Camp:
		return string(v.SubRole)
	case OutsideCamp:
		return v.Position
	}
	return ""
}

// DutyOf returns the car wash duty of r, empty for other roles.
func DutyOf(r Role) Duty {
	if cw, ok := r.(CarWash); ok {
		return cw.Duty
	}
	return ""
}
