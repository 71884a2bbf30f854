package merge

import (
	"fmt"

	"github.com/mscp-tools/cnssigen/pkg/shared/errors"
)

// validateMergeArgs validates the arguments provided to the merge command.
func validateMergeArgs(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("invalid argument(s) received, the merge command takes flags only")
	}
	if mergeOptions.RulesRoot == "" {
		return errors.NewMissingArgument("rules")
	}
	if mergeOptions.BuildRoot == "" {
		return errors.NewMissingArgument("build")
	}
	return nil
}
