package cli

import (
	"context"

	"github.com/cmlabs-hris/washpay-backend/internal/app"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect or reset the tenant's salary tariffs",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active settings version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			settings, err := a.SettingsService.GetSettings(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), settings)
		})
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the active settings with a fresh defaults version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			settings, err := a.SettingsService.ResetToDefaults(ctx, operatorID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), settings)
		})
	},
}
