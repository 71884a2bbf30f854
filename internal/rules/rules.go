// Package rules discovers and models the hardening rules of the target catalog.
package rules

import (
	"sort"
	"strings"
)

// Rule is one hardening rule document. Controls holds the catalog control ids
// the rule declares, uppercased. Tags is the tag list as authored, order and
// duplicates preserved.
type Rule struct {
	ID       string
	Path     string
	Section  string
	Controls map[string]struct{}
	Tags     []string
}

// Catalog is the scanned rule set, immutable for the remainder of a run.
type Catalog struct {
	Rules []Rule
}

// IDs returns every rule identifier in the catalog, sorted.
func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c.Rules))
	for _, r := range c.Rules {
		ids = append(ids, r.ID)
	}
	sort.Strings(ids)
	return ids
}

func newControlSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToUpper(v)] = struct{}{}
	}
	return set
}
