package merge

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mscp-tools/cnssigen/internal/diag"
	"github.com/mscp-tools/cnssigen/internal/pipeline"
	"github.com/mscp-tools/cnssigen/pkg/shared"
	"github.com/mscp-tools/cnssigen/pkg/shared/config"
	"github.com/mscp-tools/cnssigen/pkg/shared/errors"
)

// Global variables for configuration and command arguments
var (
	AppConfig    *config.Config
	logger       hclog.Logger
	mergeOptions struct {
		RulesRoot string
		BuildRoot string
		DryRun    bool
	}

	exampleMergeUsage = `  # Re-apply baseline tags from already-serialized profile documents
  cnssigen merge --rules /path/to/catalog/rules --build /path/to/build

  # Preview the re-tagging without writing
  cnssigen merge --rules /path/to/catalog/rules --build /path/to/build --dry-run`
)

// MergeCmd represents the command that re-runs only the tagging step.
var MergeCmd = &cobra.Command{
	Use:                   "merge --rules/-r DIR --build/-b DIR [--dry-run]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleMergeUsage,
	Short:                 "Re-tag rule documents from serialized baseline profiles",
	RunE:                  runMergeCommand,
}

// Init initializes the global configuration and logger for the merge command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runMergeCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	if err := validateMergeArgs(args); err != nil {
		logger.Error("invalid merge arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid merge arguments: %w", err), 1)
	}

	runner := pipeline.NewRunner(AppConfig, logger)
	tagged, diags, err := runner.Retag(mergeOptions.RulesRoot, mergeOptions.BuildRoot, mergeOptions.DryRun)
	if err != nil {
		logger.Error("merge command failed", "error", err)
		return errors.NewCommandError(fmt.Errorf("merge command failed: %w", err), 2)
	}

	collector := &diag.Collector{}
	collector.Add(diags...)
	collector.LogAll(logger)

	logger.Info("merge command completed successfully", "tagged", tagged, "dry_run", mergeOptions.DryRun)
	return nil
}

func init() {
	MergeCmd.Flags().StringVarP(&mergeOptions.RulesRoot, "rules", "r", "", "Path to the rule catalog root.")
	MergeCmd.Flags().StringVarP(&mergeOptions.BuildRoot, "build", "b", "", "Path to the build root holding the baselines directory.")
	MergeCmd.Flags().BoolVar(&mergeOptions.DryRun, "dry-run", false, "Report what the run would change without writing to storage.")
	MergeCmd.Flags().BoolP("help", "h", false, "Show help for the merge command.")
}
