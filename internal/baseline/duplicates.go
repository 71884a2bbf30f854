package baseline

import (
	"sort"
	"strings"
)

// levelKeywords in stripping order. Each keyword is stripped in both its
// suffix and prefix spelling; order matters for ids carrying several keywords.
var levelKeywords = []string{"_high", "high_", "_moderate", "moderate_", "_low", "low_"}

// CrossObjective maps every rule identifier appearing in more than one of the
// given baselines to the sorted names of the baselines that own it. Overlap
// between objectives is expected and benign (a rule can satisfy both
// confidentiality and integrity controls); it is surfaced so an operator can
// sanity-check coverage. The inputs are not modified.
func CrossObjective(baselines []Baseline) map[string][]string {
	owners := make(map[string][]string)
	for _, b := range baselines {
		for id := range b.Rules {
			owners[id] = append(owners[id], b.Name)
		}
	}

	duplicates := make(map[string][]string)
	for id, names := range owners {
		if len(names) > 1 {
			sort.Strings(names)
			duplicates[id] = names
		}
	}
	return duplicates
}

// LevelKeywordGroups groups rule identifiers that differ only by an
// impact-level keyword, flagging hand-authored near-duplicates that should be
// collapsed before merging. The check is deliberately substring-based and may
// both over- and under-match; it is advisory only, never a correctness gate.
func LevelKeywordGroups(ids []string) map[string][]string {
	byBase := make(map[string][]string)
	for _, id := range ids {
		byBase[stripLevelKeywords(id)] = append(byBase[stripLevelKeywords(id)], id)
	}

	groups := make(map[string][]string)
	for base, members := range byBase {
		if len(members) > 1 {
			sort.Strings(members)
			groups[base] = members
		}
	}
	return groups
}

func stripLevelKeywords(id string) string {
	base := id
	for _, keyword := range levelKeywords {
		base = strings.ReplaceAll(base, keyword, "")
	}
	return base
}
