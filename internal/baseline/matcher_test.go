package baseline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mscp-tools/cnssigen/internal/diag"
	"github.com/mscp-tools/cnssigen/internal/mapping"
	"github.com/mscp-tools/cnssigen/internal/rules"
)

func rule(id, section string, controls ...string) rules.Rule {
	set := make(map[string]struct{}, len(controls))
	for _, c := range controls {
		set[c] = struct{}{}
	}
	return rules.Rule{ID: id, Section: section, Controls: set}
}

func TestMatch(t *testing.T) {
	mappings := []mapping.ControlMapping{
		{Tag: "IH", Control: "AC-1"},
		{Tag: "IH", Control: "AC-2"},
	}
	catalog := rules.Catalog{Rules: []rules.Rule{
		rule("r1", "os", "AC-1"),
		rule("r2", "os", "AC-3"),
	}}

	b, diags := Match("cnssi-1253_integrity_high", mapping.LevelHigh, mappings, catalog)

	assert.Equal(t, []string{"r1"}, b.RuleIDs())
	assert.Equal(t, map[string][]string{"os": {"r1"}}, b.Sections)
	assert.Equal(t, mapping.LevelHigh, b.Level)

	require.Len(t, diags, 1, "AC-2 matched no rule and must be surfaced")
	assert.Equal(t, diag.CodeUnmatchedControl, diags[0].Code)
	assert.Contains(t, diags[0].Detail, "AC-2")
}

func TestMatchCaseInsensitiveControls(t *testing.T) {
	mappings := []mapping.ControlMapping{{Tag: "CH", Control: "ac-6(1)"}}
	catalog := rules.Catalog{Rules: []rules.Rule{rule("r1", "auditing", "AC-6(1)")}}

	b, diags := Match("cnssi-1253_confidentiality_high", mapping.LevelHigh, mappings, catalog)
	assert.Equal(t, []string{"r1"}, b.RuleIDs())
	assert.Empty(t, diags)
}

func TestMatchOrderIndependent(t *testing.T) {
	mappings := []mapping.ControlMapping{
		{Tag: "IH", Control: "AC-1"},
		{Tag: "IH", Control: "AU-9"},
	}
	forward := rules.Catalog{Rules: []rules.Rule{
		rule("r1", "os", "AC-1"),
		rule("r2", "auditing", "AU-9"),
		rule("r3", "os", "AC-1", "AU-9"),
	}}
	reversed := rules.Catalog{Rules: []rules.Rule{
		forward.Rules[2], forward.Rules[1], forward.Rules[0],
	}}

	a, _ := Match("n", mapping.LevelLow, mappings, forward)
	b, _ := Match("n", mapping.LevelLow, mappings, reversed)

	assert.Equal(t, a.RuleIDs(), b.RuleIDs())
	assert.Equal(t, a.Sections, b.Sections)
}

func TestMatchEmptyMapping(t *testing.T) {
	catalog := rules.Catalog{Rules: []rules.Rule{rule("r1", "os", "AC-1")}}
	b, diags := Match("n", mapping.LevelLow, nil, catalog)
	assert.Empty(t, b.Rules)
	assert.Empty(t, diags)
}
