package baseline

import (
	"sort"

	"github.com/mscp-tools/cnssigen/internal/diag"
	"github.com/mscp-tools/cnssigen/internal/mapping"
	"github.com/mscp-tools/cnssigen/internal/rules"
)

// Match computes the baseline of rules implementing at least one control of
// the given mapping. A required control matched by no rule in the catalog is
// reported as a diagnostic, never silently dropped: it signals catalog drift
// or an incomplete rule set. The result is independent of catalog order.
func Match(name string, level mapping.ImpactLevel, mappings []mapping.ControlMapping, catalog rules.Catalog) (Baseline, []diag.Diagnostic) {
	required := make(map[string]struct{}, len(mappings))
	for _, m := range mappings {
		required[m.NormalizedControl()] = struct{}{}
	}

	b := New(name, level)
	satisfied := make(map[string]struct{}, len(required))
	for _, rule := range catalog.Rules {
		matched := false
		for control := range required {
			if _, ok := rule.Controls[control]; ok {
				satisfied[control] = struct{}{}
				matched = true
			}
		}
		if matched {
			b.add(rule.Section, rule.ID)
		}
	}
	b.normalize()

	var unmatched []string
	for control := range required {
		if _, ok := satisfied[control]; !ok {
			unmatched = append(unmatched, control)
		}
	}
	sort.Strings(unmatched)

	diags := make([]diag.Diagnostic, 0, len(unmatched))
	for _, control := range unmatched {
		diags = append(diags, diag.New(diag.CodeUnmatchedControl, "",
			"control %s required by %s matched no rule", control, name))
	}
	return b, diags
}
