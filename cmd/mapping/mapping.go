package mapping

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mscp-tools/cnssigen/internal/baseline"
	"github.com/mscp-tools/cnssigen/internal/diag"
	"github.com/mscp-tools/cnssigen/internal/mapping"
	"github.com/mscp-tools/cnssigen/internal/rules"
	"github.com/mscp-tools/cnssigen/pkg/shared/config"
	"github.com/mscp-tools/cnssigen/pkg/shared/errors"
)

// Global variables for configuration and command arguments
var (
	AppConfig      *config.Config
	logger         hclog.Logger
	mappingOptions struct {
		RulesRoot string
		Level     string
	}

	exampleMappingUsage = `  # Report which rules a single mapping file matches
  cnssigen mapping /path/to/build/mappings/integrity_high.csv --rules /path/to/catalog/rules

  # Force the impact level when the file name carries no level keyword
  cnssigen mapping /path/to/custom.csv --rules /path/to/catalog/rules --level moderate`
)

// MappingCmd represents the command for a single-cell match report.
var MappingCmd = &cobra.Command{
	Use:                   "mapping MAPPING_FILE --rules/-r DIR [--level LEVEL]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleMappingUsage,
	Short:                 "Match one mapping file against the rule catalog and report the result",
	RunE:                  runMappingCommand,
}

// Init initializes the global configuration and logger for the mapping command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runMappingCommand(cmd *cobra.Command, args []string) error {
	if err := validateMappingArgs(args); err != nil {
		logger.Error("invalid mapping arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid mapping arguments: %w", err), 1)
	}
	mappingPath := args[0]

	level, err := resolveLevel(mappingPath, mappingOptions.Level)
	if err != nil {
		logger.Error("unable to resolve impact level", "error", err)
		return errors.NewCommandError(err, 1)
	}

	rows, rowDiags, err := mapping.ReadFile(mappingPath, AppConfig.Mapping.Delimiter, AppConfig.Mapping.FamilyHint)
	if err != nil {
		logger.Error("failed to read mapping file", "error", err)
		return errors.NewCommandError(err, 2)
	}

	catalog, scanDiags, err := rules.ScanCatalog(mappingOptions.RulesRoot, AppConfig.Document)
	if err != nil {
		logger.Error("failed to scan rule catalog", "error", err)
		return errors.NewCommandError(err, 2)
	}

	name := fmt.Sprintf("%s_%s", AppConfig.Document.TagPrefix, level)
	matched, matchDiags := baseline.Match(name, level, rows, catalog)

	collector := &diag.Collector{}
	collector.Add(rowDiags...)
	collector.Add(scanDiags...)
	collector.Add(matchDiags...)
	collector.LogAll(logger)

	fmt.Printf("%s: %d of %d rules matched\n", name, len(matched.Rules), len(catalog.Rules))
	for _, section := range matched.SectionNames() {
		fmt.Printf("%s:\n", section)
		for _, id := range matched.Sections[section] {
			fmt.Printf("  %s\n", id)
		}
	}
	return nil
}

// resolveLevel uses the explicit level flag when given, otherwise infers the
// level from the mapping file name.
func resolveLevel(path, explicit string) (mapping.ImpactLevel, error) {
	if explicit != "" {
		return mapping.LevelFromName(explicit)
	}
	return mapping.LevelFromName(path)
}

func init() {
	MappingCmd.Flags().StringVarP(&mappingOptions.RulesRoot, "rules", "r", "", "Path to the rule catalog root.")
	MappingCmd.Flags().StringVar(&mappingOptions.Level, "level", "", "Impact level of the mapping (high, moderate, low); inferred from the file name when omitted.")
	MappingCmd.Flags().BoolP("help", "h", false, "Show help for the mapping command.")
}
