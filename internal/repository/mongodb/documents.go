package mongodb

import (
	"time"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/cmlabs-hris/washpay-backend/internal/domain/worker"
)

// Category blocks and slip breakdowns are stored with their json field names;
// money fields are Decimal128 through the database registry.

type settingsDocument struct {
	ID             string                  `bson:"_id"`
	TenantID       string                  `bson:"tenant_id"`
	Version        int                     `bson:"version"`
	IsActive       bool                    `bson:"is_active"`
	CarWash        salary.CarWashSettings  `bson:"car_wash"`
	Etisalat       salary.EtisalatSettings `bson:"etisalat"`
	Mall           salary.MallSettings     `bson:"mall"`
	Camp           salary.CampSettings     `bson:"camp"`
	Outside        salary.OutsideSettings  `bson:"outside"`
	LastModifiedBy string                  `bson:"last_modified_by"`
	CreatedAt      time.Time               `bson:"created_at"`
	UpdatedAt      time.Time               `bson:"updated_at"`
}

// settingsField maps a category to its document field.
var settingsField = map[salary.Category]string{
	salary.CategoryCarWash:  "car_wash",
	salary.CategoryEtisalat: "etisalat",
	salary.CategoryMall:     "mall",
	salary.CategoryCamp:     "camp",
	salary.CategoryOutside:  "outside",
}

func toSettingsDocument(s salary.Settings) settingsDocument {
	return settingsDocument{
		ID:             s.ID,
		TenantID:       s.TenantID,
		Version:        s.Version,
		IsActive:       s.IsActive,
		CarWash:        s.CarWash,
		Etisalat:       s.Etisalat,
		Mall:           s.Mall,
		Camp:           s.Camp,
		Outside:        s.Outside,
		LastModifiedBy: s.LastModifiedBy,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (d settingsDocument) toDomain() salary.Settings {
	s := salary.Settings{
		ID:             d.ID,
		TenantID:       d.TenantID,
		Version:        d.Version,
		IsActive:       d.IsActive,
		CarWash:        d.CarWash,
		Etisalat:       d.Etisalat,
		Mall:           d.Mall,
		Camp:           d.Camp,
		Outside:        d.Outside,
		LastModifiedBy: d.LastModifiedBy,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if s.Outside == nil {
		s.Outside = salary.OutsideSettings{}
	}
	return s
}

type slipDocument struct {
	ID           string              `bson:"_id,omitempty"`
	TenantID     string              `bson:"tenant_id"`
	WorkerID     string              `bson:"worker_id"`
	WorkerName   string              `bson:"worker_name"`
	EmployeeCode string              `bson:"employee_code"`
	Month        int                 `bson:"month"`
	Year         int                 `bson:"year"`
	Breakdown    salary.Breakdown    `bson:"breakdown"`
	ManualInputs salary.ManualInputs `bson:"manual_inputs"`
	Status       string              `bson:"status"`
	PreparedBy   *string             `bson:"prepared_by"`
	CalculatedAt time.Time           `bson:"calculated_at"`
	CreatedAt    time.Time           `bson:"created_at,omitempty"`
	UpdatedAt    time.Time           `bson:"updated_at"`
}

func toSlipDocument(s salary.Slip) slipDocument {
	return slipDocument{
		ID:           s.ID,
		TenantID:     s.TenantID,
		WorkerID:     s.WorkerID,
		WorkerName:   s.WorkerName,
		EmployeeCode: s.EmployeeCode,
		Month:        s.Month,
		Year:         s.Year,
		Breakdown:    s.Breakdown,
		ManualInputs: s.ManualInputs,
		Status:       string(s.Status),
		PreparedBy:   s.PreparedBy,
		CalculatedAt: s.CalculatedAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func (d slipDocument) toDomain() salary.Slip {
	return salary.Slip{
		ID:           d.ID,
		TenantID:     d.TenantID,
		WorkerID:     d.WorkerID,
		WorkerName:   d.WorkerName,
		EmployeeCode: d.EmployeeCode,
		Month:        d.Month,
		Year:         d.Year,
		Breakdown:    d.Breakdown,
		ManualInputs: d.ManualInputs,
		Status:       salary.SlipStatus(d.Status),
		PreparedBy:   d.PreparedBy,
		CalculatedAt: d.CalculatedAt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type workerDocument struct {
	ID           string    `bson:"_id"`
	TenantID     string    `bson:"tenant_id"`
	Name         string    `bson:"name"`
	EmployeeCode string    `bson:"employee_code"`
	Role         string    `bson:"role"`
	SubRole      string    `bson:"sub_role"`
	Location     string    `bson:"location"`
	IsActive     bool      `bson:"is_active"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func (d workerDocument) toDomain() worker.Worker {
	return worker.Worker{
		ID:           d.ID,
		TenantID:     d.TenantID,
		Name:         d.Name,
		EmployeeCode: d.EmployeeCode,
		Role:         d.Role,
		SubRole:      d.SubRole,
		Location:     d.Location,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
