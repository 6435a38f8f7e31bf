package cli

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/washpay-backend/internal/app"
	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(slipCmd)
	slipCmd.AddCommand(slipGetCmd)
	slipCmd.AddCommand(slipSaveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(runCmd)

	periodFlags(slipGetCmd)
	periodFlags(slipSaveCmd)
	periodFlags(exportCmd)
	periodFlags(runCmd)

	slipSaveCmd.Flags().String("status", string(salary.SlipStatusDraft), "draft or finalized")
	slipSaveCmd.Flags().Int("present-days", 0, "Present days override")
	slipSaveCmd.Flags().Int("absent-days", 0, "Absent days")
	slipSaveCmd.Flags().Int("sick-leave-days", 0, "Sick leave days")
	slipSaveCmd.Flags().String("ot-hours", "", "Overtime hours")
	slipSaveCmd.Flags().String("total-hours", "", "Total hours (outside camp)")
	slipSaveCmd.Flags().String("sim-bill", "", "SIM bill amount")
	slipSaveCmd.Flags().String("advance", "", "Salary advance to deduct")
	slipSaveCmd.Flags().String("other-deduction", "", "Other deduction")
	slipSaveCmd.Flags().String("last-month-balance", "", "Override the carried balance")
}

var slipCmd = &cobra.Command{
	Use:   "slip",
	Short: "Read or save a worker's monthly slip",
}

// ─── slip get ───────────────────────────────────────────────────────────────

var slipGetCmd = &cobra.Command{
	Use:   "get WORKER_ID",
	Short: "Print the stored slip, or a preview when none is saved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		month, year := period(cmd)
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			slip, err := a.SlipService.GetSlip(ctx, args[0], month, year)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), slip)
		})
	},
}

// ─── slip save ──────────────────────────────────────────────────────────────

var slipSaveCmd = &cobra.Command{
	Use:   "save WORKER_ID",
	Short: "Compute and store a slip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := saveRequestFromFlags(cmd, args[0])
		if err != nil {
			return err
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			slip, err := a.SlipService.SaveSlip(ctx, req, operatorID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), slip)
		})
	},
}

// saveRequestFromFlags only sets manual inputs whose flag was given.
func saveRequestFromFlags(cmd *cobra.Command, workerID string) (salary.SaveSlipRequest, error) {
	month, year := period(cmd)
	status, _ := cmd.Flags().GetString("status")
	req := salary.SaveSlipRequest{
		WorkerID: workerID,
		Month:    month,
		Year:     year,
		Status:   salary.SlipStatus(status),
	}

	intFlag := func(name string) *int {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetInt(name)
		return &v
	}
	req.ManualInputs.PresentDays = intFlag("present-days")
	req.ManualInputs.AbsentDays = intFlag("absent-days")
	req.ManualInputs.SickLeaveDays = intFlag("sick-leave-days")

	decimals := []struct {
		flag   string
		target **decimal.Decimal
	}{
		{"ot-hours", &req.ManualInputs.OTHours},
		{"total-hours", &req.ManualInputs.TotalHours},
		{"sim-bill", &req.ManualInputs.SimBillAmount},
		{"advance", &req.ManualInputs.Advance},
		{"other-deduction", &req.ManualInputs.OtherDeduction},
		{"last-month-balance", &req.ManualInputs.LastMonthBalance},
	}
	for _, f := range decimals {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		raw, _ := cmd.Flags().GetString(f.flag)
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return salary.SaveSlipRequest{}, fmt.Errorf("--%s: %w", f.flag, err)
		}
		*f.target = &v
	}
	return req, nil
}

// ─── export / run ───────────────────────────────────────────────────────────

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the month's slips to an XLSX workbook in file storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		month, year := period(cmd)
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			result, err := a.ExportService.ExportMonth(ctx, month, year)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		})
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Save draft slips for every active worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		month, year := period(cmd)
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			result, err := a.SlipService.RunDrafts(ctx, month, year, operatorID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		})
	},
}
