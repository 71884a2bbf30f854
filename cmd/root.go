package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mscp-tools/cnssigen/cmd/duplicates"
	"github.com/mscp-tools/cnssigen/cmd/generate"
	mappingcmd "github.com/mscp-tools/cnssigen/cmd/mapping"
	mergecmd "github.com/mscp-tools/cnssigen/cmd/merge"
	"github.com/mscp-tools/cnssigen/cmd/organize"
	"github.com/mscp-tools/cnssigen/cmd/version"
	"github.com/mscp-tools/cnssigen/internal/logger"
	"github.com/mscp-tools/cnssigen/pkg/shared/config"
	"github.com/mscp-tools/cnssigen/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "cnssigen [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Cnssigen maps CNSSI-1253 impact levels onto the hardening rule catalog.",
		Long: `Cnssigen builds per-impact-level security baselines by matching CNSSI-1253
control mappings against the hardening rule catalog, merging the three security
objectives of each level, writing baseline profile documents, and annotating
every matched rule with the baseline tags it belongs to.
`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (defaults cover the published rule-document contract)")
	rootCmd.AddCommand(
		generate.GenerateCmd,
		mappingcmd.MappingCmd,
		mergecmd.MergeCmd,
		duplicates.DuplicatesCmd,
		organize.OrganizeCmd,
		version.NewVersionCmd(),
	)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return errors.ExitCode(err)
	}
	return 0
}

func initConfig() {
	var err error

	AppConfig, err = config.NewConfig(cfgFile)
	if err != nil {
		fmt.Printf("failed to initialize config - %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(AppConfig, "cnssigen")
	generate.Init(AppConfig, log)
	mappingcmd.Init(AppConfig, log)
	mergecmd.Init(AppConfig, log)
	duplicates.Init(AppConfig, log)
	organize.Init(AppConfig, log)
}
