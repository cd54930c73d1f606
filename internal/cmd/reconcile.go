package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-schedule-editor/pkg/logger"
)

var reconcileWorkspace string

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Trim stored schedules to the teaching plan",
	Long: `Reconcile removes lessons beyond each plan item's weekly hours and purges
lessons whose class, subject and teacher no longer appear in the plan. The
template and every week override of each workspace are trimmed and saved.`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileWorkspace, "workspace", "", "only reconcile this workspace")
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx := cmd.Context()
	app, err := newApplication(ctx, cfg, logr)
	if err != nil {
		return err
	}
	defer app.close()

	workspaces := []string{reconcileWorkspace}
	if reconcileWorkspace == "" {
		workspaces, err = app.records.ListWorkspaceIDs(ctx)
		if err != nil {
			return err
		}
	}

	failed := 0
	for _, workspaceID := range workspaces {
		report, err := app.editor.Reconcile(ctx, workspaceID)
		if err != nil {
			failed++
			logr.Error("reconcile failed", zap.String("workspace", workspaceID), zap.Error(err))
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: removed %d lessons (template %d, weeks %d)\n",
			workspaceID, report.Total(), report.TemplateRemoved, len(report.WeeksRemoved))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d workspaces failed to reconcile", failed, len(workspaces))
	}
	return nil
}
