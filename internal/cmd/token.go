package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/sma-schedule-editor/internal/models"
	"github.com/noah-isme/sma-schedule-editor/internal/service"
)

var (
	tokenUser string
	tokenRole string
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token signed with JWT_SECRET",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "dev", "user id carried by the token")
	tokenCmd.Flags().StringVar(&tokenRole, "role", string(models.RoleEditor), "ADMIN, EDITOR or VIEWER")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to JWT_EXPIRATION)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	role := models.UserRole(strings.ToUpper(tokenRole))
	switch role {
	case models.RoleAdmin, models.RoleEditor, models.RoleViewer:
	default:
		return fmt.Errorf("unknown role %q", tokenRole)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ttl := tokenTTL
	if ttl <= 0 {
		ttl = cfg.JWT.Expiration
	}

	token, expiresAt, err := service.NewTokenService(cfg.JWT.Secret, ttl).Issue(tokenUser, role)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
