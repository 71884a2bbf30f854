package organize

import (
	"fmt"

	"github.com/mscp-tools/cnssigen/pkg/shared/errors"
)

// validateOrganizeArgs validates the arguments provided to the organize command.
func validateOrganizeArgs(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("invalid argument(s) received, the organize command takes flags only")
	}
	if organizeOptions.From == "" {
		return errors.NewMissingArgument("from")
	}
	if organizeOptions.To == "" {
		return errors.NewMissingArgument("to")
	}
	return nil
}
