package shared

import (
	"github.com/spf13/pflag"
)

// HasFlags reports whether any flag in the set was changed on the command line.
func HasFlags(flags *pflag.FlagSet) bool {
	changed := false
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			changed = true
		}
	})
	return changed
}
