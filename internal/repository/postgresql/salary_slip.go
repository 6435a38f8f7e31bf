package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type slipRepository struct {
	db *database.DB
}

func NewSlipRepository(db *database.DB) salary.SlipRepository {
	return &slipRepository{db: db}
}

const slipColumns = `id, tenant_id, worker_id, month, year, worker_name, employee_code,
	employee_type, sub_role, duty, attendance,
	basic, incentive, allowance, overtime,
	sim_deduction, advance, other_deduction, last_month_balance,
	total_earnings, total_deductions, closing_balance,
	rates, manual_inputs, status, prepared_by, calculated_at, created_at, updated_at`

func (r *slipRepository) GetByPeriod(ctx context.Context, tenantID, workerID string, month, year int) (salary.Slip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + slipColumns + `
		FROM salary_slips
		WHERE tenant_id = $1 AND worker_id = $2 AND month = $3 AND year = $4`

	slip, err := scanSlip(q.QueryRow(ctx, query, tenantID, workerID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Slip{}, salary.ErrSlipNotFound
		}
		return salary.Slip{}, fmt.Errorf("failed to get salary slip: %w", err)
	}
	return slip, nil
}

func (r *slipRepository) Upsert(ctx context.Context, slip salary.Slip) (salary.Slip, error) {
	q := GetQuerier(ctx, r.db)

	attendanceJSON, err := json.Marshal(slip.Attendance)
	if err != nil {
		return salary.Slip{}, fmt.Errorf("failed to encode attendance: %w", err)
	}
	ratesJSON, err := json.Marshal(slip.Rates)
	if err != nil {
		return salary.Slip{}, fmt.Errorf("failed to encode rates: %w", err)
	}
	manualJSON, err := json.Marshal(slip.ManualInputs)
	if err != nil {
		return salary.Slip{}, fmt.Errorf("failed to encode manual inputs: %w", err)
	}

	query := `
		INSERT INTO salary_slips (
			id, tenant_id, worker_id, month, year, worker_name, employee_code,
			employee_type, sub_role, duty, attendance,
			basic, incentive, allowance, overtime,
			sim_deduction, advance, other_deduction, last_month_balance,
			total_earnings, total_deductions, closing_balance,
			rates, manual_inputs, status, prepared_by, calculated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14, $15,
			$16, $17, $18, $19,
			$20, $21, $22,
			$23, $24, $25, $26, $27
		)
		ON CONFLICT (tenant_id, worker_id, month, year) DO UPDATE SET
			worker_name = EXCLUDED.worker_name,
			employee_code = EXCLUDED.employee_code,
			employee_type = EXCLUDED.employee_type,
			sub_role = EXCLUDED.sub_role,
			duty = EXCLUDED.duty,
			attendance = EXCLUDED.attendance,
			basic = EXCLUDED.basic,
			incentive = EXCLUDED.incentive,
			allowance = EXCLUDED.allowance,
			overtime = EXCLUDED.overtime,
			sim_deduction = EXCLUDED.sim_deduction,
			advance = EXCLUDED.advance,
			other_deduction = EXCLUDED.other_deduction,
			last_month_balance = EXCLUDED.last_month_balance,
			total_earnings = EXCLUDED.total_earnings,
			total_deductions = EXCLUDED.total_deductions,
			closing_balance = EXCLUDED.closing_balance,
			rates = EXCLUDED.rates,
			manual_inputs = EXCLUDED.manual_inputs,
			status = EXCLUDED.status,
			prepared_by = EXCLUDED.prepared_by,
			calculated_at = EXCLUDED.calculated_at,
			updated_at = NOW()
		RETURNING ` + slipColumns

	saved, err := scanSlip(q.QueryRow(ctx, query,
		uuid.New().String(), slip.TenantID, slip.WorkerID, slip.Month, slip.Year, slip.WorkerName, slip.EmployeeCode,
		string(slip.EmployeeType), slip.SubRole, string(slip.Duty), attendanceJSON,
		slip.Earnings.Basic, slip.Earnings.Incentive, slip.Earnings.Allowance, slip.Earnings.Overtime,
		slip.Deductions.Sim, slip.Deductions.Advance, slip.Deductions.Other, slip.Deductions.LastMonthBalance,
		slip.TotalEarnings, slip.TotalDeductions, slip.ClosingBalance,
		ratesJSON, manualJSON, string(slip.Status), slip.PreparedBy, slip.CalculatedAt,
	))
	if err != nil {
		return salary.Slip{}, fmt.Errorf("failed to upsert salary slip: %w", err)
	}
	return saved, nil
}

func (r *slipRepository) ListByPeriod(ctx context.Context, tenantID string, month, year int) ([]salary.Slip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + slipColumns + `
		FROM salary_slips
		WHERE tenant_id = $1 AND month = $2 AND year = $3
		ORDER BY worker_name, worker_id`

	rows, err := q.Query(ctx, query, tenantID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary slips: %w", err)
	}
	defer rows.Close()

	slips := []salary.Slip{}
	for rows.Next() {
		slip, err := scanSlip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary slip: %w", err)
		}
		slips = append(slips, slip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list salary slips: %w", err)
	}
	return slips, nil
}

func scanSlip(row pgx.Row) (salary.Slip, error) {
	var (
		s                                          salary.Slip
		employeeType, duty, status                 string
		attendanceJSON, ratesJSON, manualInputJSON []byte
	)
	if err := row.Scan(
		&s.ID, &s.TenantID, &s.WorkerID, &s.Month, &s.Year, &s.WorkerName, &s.EmployeeCode,
		&employeeType, &s.SubRole, &duty, &attendanceJSON,
		&s.Earnings.Basic, &s.Earnings.Incentive, &s.Earnings.Allowance, &s.Earnings.Overtime,
		&s.Deductions.Sim, &s.Deductions.Advance, &s.Deductions.Other, &s.Deductions.LastMonthBalance,
		&s.TotalEarnings, &s.TotalDeductions, &s.ClosingBalance,
		&ratesJSON, &manualInputJSON, &status, &s.PreparedBy, &s.CalculatedAt, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return salary.Slip{}, err
	}
	s.EmployeeType = salary.EmployeeType(employeeType)
	s.Duty = salary.Duty(duty)
	s.Status = salary.SlipStatus(status)

	if err := json.Unmarshal(attendanceJSON, &s.Attendance); err != nil {
		return salary.Slip{}, fmt.Errorf("failed to decode attendance: %w", err)
	}
	if err := json.Unmarshal(ratesJSON, &s.Rates); err != nil {
		return salary.Slip{}, fmt.Errorf("failed to decode rates: %w", err)
	}
	if err := json.Unmarshal(manualInputJSON, &s.ManualInputs); err != nil {
		return salary.Slip{}, fmt.Errorf("failed to decode manual inputs: %w", err)
	}
	return s, nil
}
