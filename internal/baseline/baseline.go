// Package baseline computes per-impact-level rule baselines: matching rules
// against control mappings, merging the three objective baselines of a level,
// detecting duplicates, and serializing profile documents.
package baseline

import (
	"sort"

	"github.com/mscp-tools/cnssigen/internal/mapping"
)

// Baseline is a named, impact-level-scoped set of matched rules grouped by
// section. It is a pure computed value holding rule identifiers only, never
// references into rule storage.
type Baseline struct {
	Name     string
	Level    mapping.ImpactLevel
	Rules    map[string]struct{}
	Sections map[string][]string
}

// New creates an empty baseline for the given name and level.
func New(name string, level mapping.ImpactLevel) Baseline {
	return Baseline{
		Name:     name,
		Level:    level,
		Rules:    make(map[string]struct{}),
		Sections: make(map[string][]string),
	}
}

// Contains reports whether the baseline includes the rule identifier.
func (b Baseline) Contains(ruleID string) bool {
	_, ok := b.Rules[ruleID]
	return ok
}

// RuleIDs returns the matched rule identifiers, sorted.
func (b Baseline) RuleIDs() []string {
	ids := make([]string, 0, len(b.Rules))
	for id := range b.Rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SectionNames returns the section names with at least one matched rule, sorted.
func (b Baseline) SectionNames() []string {
	names := make([]string, 0, len(b.Sections))
	for name := range b.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// add records a rule under its section, ignoring duplicates.
func (b Baseline) add(section, ruleID string) {
	if b.Contains(ruleID) {
		return
	}
	b.Rules[ruleID] = struct{}{}
	b.Sections[section] = append(b.Sections[section], ruleID)
}

// normalize sorts every section's rule list in place.
func (b Baseline) normalize() {
	for _, ids := range b.Sections {
		sort.Strings(ids)
	}
}
