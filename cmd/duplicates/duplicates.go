package duplicates

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mscp-tools/cnssigen/internal/diag"
	"github.com/mscp-tools/cnssigen/internal/mapping"
	"github.com/mscp-tools/cnssigen/internal/pipeline"
	"github.com/mscp-tools/cnssigen/pkg/shared"
	"github.com/mscp-tools/cnssigen/pkg/shared/config"
	"github.com/mscp-tools/cnssigen/pkg/shared/errors"
	"github.com/mscp-tools/cnssigen/pkg/shared/files"
)

// Global variables for configuration and command arguments
var (
	AppConfig         *config.Config
	logger            hclog.Logger
	duplicatesOptions struct {
		RulesRoot    string
		MappingsRoot string
		SarifPath    string
		OutputPath   string
	}

	exampleDuplicatesUsage = `  # Report duplicates across all nine mapping cells
  cnssigen duplicates --rules /path/to/catalog/rules --mappings /path/to/build/mappings

  # Export the findings as SARIF for review tooling
  cnssigen duplicates --rules /path/to/catalog/rules --mappings /path/to/build/mappings --sarif duplicates.sarif`
)

// DuplicatesCmd represents the report-only duplicate detection command.
var DuplicatesCmd = &cobra.Command{
	Use:                   "duplicates --rules/-r DIR --mappings/-m DIR [--sarif PATH] [--output PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleDuplicatesUsage,
	Short:                 "Report cross-objective and level-keyword duplicate rules",
	RunE:                  runDuplicatesCommand,
}

// Init initializes the global configuration and logger for the duplicates command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runDuplicatesCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	if err := validateDuplicatesArgs(args); err != nil {
		logger.Error("invalid duplicates arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid duplicates arguments: %w", err), 1)
	}

	runner := pipeline.NewRunner(AppConfig, logger)
	report, err := runner.Duplicates(duplicatesOptions.RulesRoot, duplicatesOptions.MappingsRoot)
	if err != nil {
		logger.Error("duplicates command failed", "error", err)
		return errors.NewCommandError(fmt.Errorf("duplicates command failed: %w", err), 2)
	}

	logReport(report)

	if duplicatesOptions.SarifPath != "" {
		if err := writeSarifReport(duplicatesOptions.SarifPath, report); err != nil {
			logger.Error("failed to write SARIF report", "error", err)
			return errors.NewCommandError(err, 2)
		}
		logger.Info("SARIF report saved", "path", duplicatesOptions.SarifPath)
	}

	if duplicatesOptions.OutputPath != "" {
		data, err := json.MarshalIndent(report, "", "    ")
		if err != nil {
			return fmt.Errorf("error marshaling the report data: %w", err)
		}
		if err := files.WriteFileAtomic(duplicatesOptions.OutputPath, data, 0644); err != nil {
			logger.Error("failed to write report", "error", err)
			return errors.NewCommandError(err, 2)
		}
		logger.Info("report saved", "path", duplicatesOptions.OutputPath)
	}

	logger.Info("duplicates command completed successfully", "run_id", report.RunID)
	return nil
}

func logReport(report *pipeline.DuplicateReport) {
	collector := &diag.Collector{}
	collector.Add(report.Diagnostics...)
	collector.LogAll(logger)

	for _, level := range mapping.Levels() {
		for id, owners := range report.CrossObjective[level] {
			logger.Info("rule matched by more than one objective", "level", level, "rule", id, "baselines", owners)
		}
	}
	for base, members := range report.KeywordGroups {
		logger.Warn("rule identifiers differing only by an impact-level keyword", "base", base, "rules", members)
	}
}

func init() {
	DuplicatesCmd.Flags().StringVarP(&duplicatesOptions.RulesRoot, "rules", "r", "", "Path to the rule catalog root.")
	DuplicatesCmd.Flags().StringVarP(&duplicatesOptions.MappingsRoot, "mappings", "m", "", "Path to the directory holding the nine mapping files.")
	DuplicatesCmd.Flags().StringVar(&duplicatesOptions.SarifPath, "sarif", "", "Path to write the findings as a SARIF log.")
	DuplicatesCmd.Flags().StringVarP(&duplicatesOptions.OutputPath, "output", "o", "", "Path to write the findings as a JSON report.")
	DuplicatesCmd.Flags().BoolP("help", "h", false, "Show help for the duplicates command.")
}
