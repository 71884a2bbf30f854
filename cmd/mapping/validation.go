package mapping

import (
	"fmt"

	"github.com/mscp-tools/cnssigen/pkg/shared/errors"
)

// validateMappingArgs validates the arguments provided to the mapping command.
func validateMappingArgs(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exactly one mapping file argument is required")
	}
	if mappingOptions.RulesRoot == "" {
		return errors.NewMissingArgument("rules")
	}
	return nil
}
