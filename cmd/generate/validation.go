package generate

import (
	"fmt"

	"github.com/mscp-tools/cnssigen/internal/pipeline"
	"github.com/mscp-tools/cnssigen/pkg/shared/errors"
)

// validateGenerateArgs validates the arguments provided to the generate command.
func validateGenerateArgs(options *pipeline.Options, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("invalid argument(s) received, the generate command takes flags only")
	}
	if options.RulesRoot == "" {
		return errors.NewMissingArgument("rules")
	}
	if options.BuildRoot == "" {
		return errors.NewMissingArgument("build")
	}
	if options.Label == "" {
		return errors.NewMissingArgument("label")
	}
	return nil
}
