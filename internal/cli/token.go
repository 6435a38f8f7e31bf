package cli

import (
	"github.com/cmlabs-hris/washpay-backend/internal/domain/user"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().String("user", "", "User ID to put in the token")
	tokenCmd.Flags().String("role", string(user.RoleAccountant), "admin, accountant or supervisor")
	_ = tokenCmd.MarkFlagRequired("user")
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token signed with JWT_SECRET_KEY",
	Long: `Mint an access token for calling the API. Identity normally comes from
the upstream auth service; this is for operators and local testing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		userID, _ := cmd.Flags().GetString("user")
		roleStr, _ := cmd.Flags().GetString("role")
		tenantID, _ := cmd.Flags().GetString("tenant")

		role, err := user.ParseRole(roleStr)
		if err != nil {
			return err
		}

		token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).
			GenerateAccessToken(user.Principal{UserID: userID, TenantID: tenantID, Role: role})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{"access_token": token, "expires_at": expiresAt})
	},
}
