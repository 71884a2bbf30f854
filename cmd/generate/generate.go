package generate

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mscp-tools/cnssigen/internal/diag"
	"github.com/mscp-tools/cnssigen/internal/mapping"
	"github.com/mscp-tools/cnssigen/internal/pipeline"
	"github.com/mscp-tools/cnssigen/pkg/shared"
	"github.com/mscp-tools/cnssigen/pkg/shared/config"
	"github.com/mscp-tools/cnssigen/pkg/shared/errors"
)

// Global variables for configuration and command arguments
var (
	AppConfig       *config.Config
	logger          hclog.Logger
	generateOptions pipeline.Options

	exampleGenerateUsage = `  # Build all baselines and tag the matched rules
  cnssigen generate --rules /path/to/catalog/rules --build /path/to/build --label "macOS 14.0 (Sonoma)"

  # Preview a run without writing anything
  cnssigen generate --rules /path/to/catalog/rules --build /path/to/build --label "macOS 14.0 (Sonoma)" --dry-run`
)

// GenerateCmd represents the command for the full baseline generation pipeline.
var GenerateCmd = &cobra.Command{
	Use:                   "generate --rules/-r DIR --build/-b DIR --label/-l LABEL [--dry-run]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleGenerateUsage,
	Short:                 "Build per-impact-level baselines and tag the matched rules",
	RunE:                  runGenerateCommand,
}

// Init initializes the global configuration and logger for the generate command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runGenerateCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	if err := validateGenerateArgs(&generateOptions, args); err != nil {
		logger.Error("invalid generate arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid generate arguments: %w", err), 1)
	}

	runner := pipeline.NewRunner(AppConfig, logger)
	summary, err := runner.Generate(generateOptions)
	if err != nil {
		logger.Error("generate command failed", "error", err)
		return errors.NewCommandError(fmt.Errorf("generate command failed: %w", err), 2)
	}

	reportSummary(summary)
	logger.Info("generate command completed successfully", "run_id", summary.RunID)
	return nil
}

func reportSummary(summary *pipeline.Summary) {
	collector := &diag.Collector{}
	collector.Add(summary.Diagnostics...)
	collector.LogAll(logger)

	for _, level := range mapping.Levels() {
		if overlap := summary.CrossObjective[level]; len(overlap) > 0 {
			logger.Info("rules matched by more than one objective", "level", level, "count", len(overlap))
		}
	}
	if len(summary.KeywordGroups) > 0 {
		logger.Warn("rule identifiers differing only by an impact-level keyword; collapse before merging",
			"groups", len(summary.KeywordGroups))
		for base, members := range summary.KeywordGroups {
			logger.Warn("near-duplicate rule group", "base", base, "rules", members)
		}
	}

	for _, merged := range summary.Merged {
		logger.Info("baseline", "name", merged.Name, "rules", len(merged.Rules), "sections", len(merged.Sections))
	}
	logger.Info("tagged rule documents", "count", summary.TaggedCount, "dry_run", generateOptions.DryRun)
}

func init() {
	GenerateCmd.Flags().StringVarP(&generateOptions.RulesRoot, "rules", "r", "", "Path to the rule catalog root (section directories with rule documents).")
	GenerateCmd.Flags().StringVarP(&generateOptions.BuildRoot, "build", "b", "", "Path to the build root containing the mappings directory; receives the baselines directory.")
	GenerateCmd.Flags().StringVarP(&generateOptions.Label, "label", "l", "", "Run label used in generated profile titles.")
	GenerateCmd.Flags().BoolVar(&generateOptions.DryRun, "dry-run", false, "Report what the run would change without writing to storage.")
	GenerateCmd.Flags().BoolP("help", "h", false, "Show help for the generate command.")
}
