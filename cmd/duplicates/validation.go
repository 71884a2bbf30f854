package duplicates

import (
	"fmt"

	"github.com/mscp-tools/cnssigen/pkg/shared/errors"
)

// validateDuplicatesArgs validates the arguments provided to the duplicates command.
func validateDuplicatesArgs(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("invalid argument(s) received, the duplicates command takes flags only")
	}
	if duplicatesOptions.RulesRoot == "" {
		return errors.NewMissingArgument("rules")
	}
	if duplicatesOptions.MappingsRoot == "" {
		return errors.NewMissingArgument("mappings")
	}
	return nil
}
