package baseline

import (
	"fmt"

	"github.com/mscp-tools/cnssigen/internal/mapping"
	"github.com/mscp-tools/cnssigen/pkg/shared/errors"
)

// MergedName returns the deterministic name of a merged baseline, e.g.
// "cnssi-1253_high". The name doubles as the tag written onto rule documents.
func MergedName(prefix string, level mapping.ImpactLevel) string {
	return fmt.Sprintf("%s_%s", prefix, level)
}

// Merge unions the three objective baselines of one impact level into a
// single combined baseline. A rule matched by several objectives appears
// once. All inputs must carry the same impact level; mismatched levels are a
// caller contract violation and fail fast. Merge is commutative and
// idempotent: the same inputs always yield identical output.
func Merge(prefix string, confidentiality, integrity, availability Baseline) (Baseline, error) {
	level := confidentiality.Level
	for _, in := range []Baseline{integrity, availability} {
		if in.Level != level {
			return Baseline{}, errors.NewInvalidConfiguration(
				"cannot merge baselines of different impact levels: %q and %q", level, in.Level)
		}
	}

	merged := New(MergedName(prefix, level), level)
	for _, in := range []Baseline{confidentiality, integrity, availability} {
		for section, ids := range in.Sections {
			for _, id := range ids {
				merged.add(section, id)
			}
		}
	}
	merged.normalize()
	return merged, nil
}
