package salary

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/storage"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/tenant"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportSheet     = "Slips"
	exportURLExpiry = 24 * time.Hour
)

var exportHeader = []interface{}{
	"Employee Code", "Worker", "Type", "Sub Role", "Duty", "Status",
	"One Wash", "Subscriptions", "Total Washes", "Present Days",
	"Basic", "Incentive", "Allowance", "Overtime", "Total Earnings",
	"SIM", "Advance", "Other", "Last Month Balance", "Total Deductions",
	"Closing Balance",
}

type ExportServiceImpl struct {
	slipService salary.SlipService
	storage     storage.FileStorage
	currency    string
}

func NewExportService(slipService salary.SlipService, fileStorage storage.FileStorage, currency string) salary.ExportService {
	return &ExportServiceImpl{
		slipService: slipService,
		storage:     fileStorage,
		currency:    currency,
	}
}

// RenderSlipPDF writes a one-page slip. Unsaved periods render the preview.
func (s *ExportServiceImpl) RenderSlipPDF(ctx context.Context, workerID string, month, year int, w io.Writer) error {
	slip, err := s.slipService.GetSlip(ctx, workerID, month, year)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Salary Slip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Worker: %s (%s)", slip.WorkerName, slip.EmployeeCode))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s %d", time.Month(month+1), year))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Role: %s", describeRole(slip.Breakdown)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s", slip.Status))
	pdf.Ln(10)

	a := slip.Attendance
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Attendance")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	s.pdfRow(pdf, "Washes (one-off / subscription / total)", fmt.Sprintf("%d / %d / %d", a.OneWashCount, a.SubscriptionCount, a.TotalWashes))
	s.pdfRow(pdf, "Present days", fmt.Sprintf("%d", a.PresentDays))
	s.pdfRow(pdf, "Absent days", fmt.Sprintf("%d", a.AbsentDays))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	s.pdfRow(pdf, "Basic", s.money(slip.Earnings.Basic))
	s.pdfRow(pdf, "Incentive", s.money(slip.Earnings.Incentive))
	s.pdfRow(pdf, "Allowance", s.money(slip.Earnings.Allowance))
	s.pdfRow(pdf, "Overtime", s.money(slip.Earnings.Overtime))
	s.pdfRow(pdf, "Total earnings", s.money(slip.TotalEarnings))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	s.pdfRow(pdf, "SIM", s.money(slip.Deductions.Sim))
	s.pdfRow(pdf, "Advance", s.money(slip.Deductions.Advance))
	s.pdfRow(pdf, "Other", s.money(slip.Deductions.Other))
	s.pdfRow(pdf, "Last month balance", s.money(slip.Deductions.LastMonthBalance))
	s.pdfRow(pdf, "Total deductions", s.money(slip.TotalDeductions))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	s.pdfRow(pdf, "Net payable", s.money(slip.ClosingBalance))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render slip pdf: %w", err)
	}
	return nil
}

func (s *ExportServiceImpl) pdfRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(110, 7, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, value, "", 1, "R", false, 0, "")
}

func (s *ExportServiceImpl) money(d decimal.Decimal) string {
	return fmt.Sprintf("%s %s", d.StringFixed(2), s.currency)
}

// ExportMonth writes every stored slip of the period into a workbook and uploads it.
func (s *ExportServiceImpl) ExportMonth(ctx context.Context, month, year int) (salary.ExportResult, error) {
	tenantID, err := tenant.FromContext(ctx)
	if err != nil {
		return salary.ExportResult{}, err
	}
	slips, err := s.slipService.ListSlips(ctx, month, year)
	if err != nil {
		return salary.ExportResult{}, err
	}

	data, err := buildWorkbook(slips)
	if err != nil {
		return salary.ExportResult{}, err
	}

	name := fmt.Sprintf("exports/%s/salary-%04d-%02d-%s.xlsx", tenantID, year, month+1, uuid.New().String()[:8])
	path, err := s.storage.Upload(ctx, bytes.NewReader(data), name, xlsxContentType)
	if err != nil {
		return salary.ExportResult{}, fmt.Errorf("failed to store export: %w", err)
	}
	url, err := s.storage.GetURL(ctx, path, exportURLExpiry)
	if err != nil {
		return salary.ExportResult{}, fmt.Errorf("failed to resolve export url: %w", err)
	}

	slog.Info("Salary export written", "tenant_id", tenantID, "month", month, "year", year, "count", len(slips), "path", path)
	return salary.ExportResult{Path: path, URL: url, Count: len(slips)}, nil
}

func buildWorkbook(slips []salary.Slip) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, slip := range slips {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			slip.EmployeeCode, slip.WorkerName, string(slip.EmployeeType), slip.SubRole, string(slip.Duty), string(slip.Status),
			slip.Attendance.OneWashCount, slip.Attendance.SubscriptionCount, slip.Attendance.TotalWashes, slip.Attendance.PresentDays,
			slip.Earnings.Basic.InexactFloat64(), slip.Earnings.Incentive.InexactFloat64(),
			slip.Earnings.Allowance.InexactFloat64(), slip.Earnings.Overtime.InexactFloat64(),
			slip.TotalEarnings.InexactFloat64(),
			slip.Deductions.Sim.InexactFloat64(), slip.Deductions.Advance.InexactFloat64(),
			slip.Deductions.Other.InexactFloat64(), slip.Deductions.LastMonthBalance.InexactFloat64(),
			slip.TotalDeductions.InexactFloat64(),
			slip.ClosingBalance.InexactFloat64(),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	summary := salary.Summarize(slips)
	cell, err := excelize.CoordinatesToCellName(1, len(slips)+3)
	if err != nil {
		return nil, err
	}
	totals := []interface{}{
		"TOTAL", fmt.Sprintf("%d slips", summary.SlipCount), "", "", "", "",
		"", "", "", "", "", "", "", "",
		summary.TotalEarnings.InexactFloat64(),
		"", "", "", "",
		summary.TotalDeductions.InexactFloat64(),
		summary.TotalPayable.InexactFloat64(),
	}
	if err := f.SetSheetRow(exportSheet, cell, &totals); err != nil {
		return nil, fmt.Errorf("failed to write totals: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func describeRole(b salary.Breakdown) string {
	desc := string(b.EmployeeType)
	if b.SubRole != "" {
		desc += " / " + b.SubRole
	}
	if b.Duty != "" {
		desc += " (" + string(b.Duty) + " duty)"
	}
	return desc
}
