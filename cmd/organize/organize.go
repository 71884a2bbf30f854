package organize

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/mscp-tools/cnssigen/internal/baseline"
	"github.com/mscp-tools/cnssigen/internal/mapping"
	"github.com/mscp-tools/cnssigen/pkg/shared"
	"github.com/mscp-tools/cnssigen/pkg/shared/config"
	"github.com/mscp-tools/cnssigen/pkg/shared/errors"
	"github.com/mscp-tools/cnssigen/pkg/shared/files"
)

// Global variables for configuration and command arguments
var (
	AppConfig       *config.Config
	logger          hclog.Logger
	organizeOptions struct {
		From string
		To   string
	}

	exampleOrganizeUsage = `  # Copy the generated per-level output directories into the catalog checkout
  cnssigen organize --from /path/to/build --to /path/to/catalog/build`
)

// OrganizeCmd represents the command that copies per-level output directories
// between the two storage roots. Pure file-copy glue.
var OrganizeCmd = &cobra.Command{
	Use:                   "organize --from DIR --to DIR",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleOrganizeUsage,
	Short:                 "Copy generated per-level output directories between storage roots",
	RunE:                  runOrganizeCommand,
}

// Init initializes the global configuration and logger for the organize command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runOrganizeCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	if err := validateOrganizeArgs(args); err != nil {
		logger.Error("invalid organize arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid organize arguments: %w", err), 1)
	}

	if err := files.ValidateDirPath(organizeOptions.From); err != nil {
		err = errors.NewDirectoryNotFound(organizeOptions.From, err)
		logger.Error("organize command failed", "error", err)
		return errors.NewCommandError(err, 2)
	}

	copied := 0
	for _, level := range mapping.Levels() {
		name := baseline.MergedName(AppConfig.Document.TagPrefix, level)
		src := filepath.Join(organizeOptions.From, name)
		if _, err := os.Stat(src); err != nil {
			logger.Debug("no output directory for level", "level", level, "path", src)
			continue
		}
		dst := filepath.Join(organizeOptions.To, name)
		if err := files.CopyDir(src, dst); err != nil {
			logger.Error("failed to copy output directory", "source", src, "destination", dst, "error", err)
			continue
		}
		logger.Info("copied output directory", "source", src, "destination", dst)
		copied++
	}

	logger.Info("organize command completed successfully", "copied", copied)
	return nil
}

func init() {
	OrganizeCmd.Flags().StringVar(&organizeOptions.From, "from", "", "Source storage root holding per-level output directories.")
	OrganizeCmd.Flags().StringVar(&organizeOptions.To, "to", "", "Destination storage root.")
	OrganizeCmd.Flags().BoolP("help", "h", false, "Show help for the organize command.")
}
