// Package cli implements washpayctl, the operator console for the salary engine.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/washpay-backend/internal/app"
	"github.com/cmlabs-hris/washpay-backend/internal/config"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/tenant"
	"github.com/spf13/cobra"
)

// operatorID is recorded as preparedBy / lastModifiedBy for CLI writes.
const operatorID = "washpayctl"

var rootCmd = &cobra.Command{
	Use:   "washpayctl",
	Short: "Operate the washpay salary engine",
	Long: `washpayctl reads and writes salary settings and slips directly against
the configured database. It uses the same environment as the API server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("tenant", "", "Tenant to act on")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig keeps CLI logs on stderr so stdout stays machine readable.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	return cfg, nil
}

// withApp connects to storage and runs fn in the --tenant scope.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	tenantID, _ := cmd.Flags().GetString("tenant")
	if tenantID == "" {
		return fmt.Errorf("--tenant is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(tenant.WithTenant(ctx, tenantID), a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func periodFlags(cmd *cobra.Command) {
	cmd.Flags().Int("month", -1, "Month, 0 = January")
	cmd.Flags().Int("year", 0, "Year")
	_ = cmd.MarkFlagRequired("month")
	_ = cmd.MarkFlagRequired("year")
}

func period(cmd *cobra.Command) (int, int) {
	month, _ := cmd.Flags().GetInt("month")
	year, _ := cmd.Flags().GetInt("year")
	return month, year
}
