package tagger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mscp-tools/cnssigen/internal/baseline"
	"github.com/mscp-tools/cnssigen/internal/mapping"
	"github.com/mscp-tools/cnssigen/internal/rules"
	"github.com/mscp-tools/cnssigen/pkg/shared/config"
)

func testContract() config.Document {
	return config.Document{
		IDKey:         "id",
		ReferencesKey: "cnssi-1253",
		TagsKey:       "tags",
		TagPrefix:     "cnssi-1253",
	}
}

func writeRuleFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func claimedBaseline(name string, level mapping.ImpactLevel, ids ...string) baseline.Baseline {
	b := baseline.New(name, level)
	for _, id := range ids {
		b.Rules[id] = struct{}{}
		b.Sections["os"] = append(b.Sections["os"], id)
	}
	return b
}

const taggedRule = `id: r1
tags:
  - legacy_tag
  - cnssi-1253_old
severity: medium
`

func TestApplyRewritesTagBlock(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleFile(t, dir, "r1.yaml", taggedRule)
	catalog := rules.Catalog{Rules: []rules.Rule{{ID: "r1", Path: path, Section: "os"}}}
	baselines := []baseline.Baseline{claimedBaseline("cnssi-1253_high", mapping.LevelHigh, "r1")}

	tagger := New(testContract(), hclog.NewNullLogger(), false)
	tagged, diags := tagger.Apply(catalog, baselines)

	assert.Equal(t, 1, tagged)
	assert.Empty(t, diags)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	expected := `id: r1
tags:
  - legacy_tag
  - cnssi-1253_high
severity: medium
`
	assert.Equal(t, expected, string(data),
		"stale catalog tag removed, unrelated tag preserved in original position")
}

func TestApplyIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleFile(t, dir, "r1.yaml", taggedRule)
	catalog := rules.Catalog{Rules: []rules.Rule{{ID: "r1", Path: path, Section: "os"}}}
	baselines := []baseline.Baseline{claimedBaseline("cnssi-1253_high", mapping.LevelHigh, "r1")}

	tagger := New(testContract(), hclog.NewNullLogger(), false)
	_, diags := tagger.Apply(catalog, baselines)
	require.Empty(t, diags)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	tagged, diags := tagger.Apply(catalog, baselines)
	require.Empty(t, diags)
	assert.Equal(t, 1, tagged, "a claimed document counts even when already up to date")
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second), "second run is byte-identical")
}

func TestApplyMultipleBaselines(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleFile(t, dir, "r1.yaml", "id: r1\nseverity: low\n")
	catalog := rules.Catalog{Rules: []rules.Rule{{ID: "r1", Path: path, Section: "os"}}}
	baselines := []baseline.Baseline{
		claimedBaseline("cnssi-1253_moderate", mapping.LevelModerate, "r1"),
		claimedBaseline("cnssi-1253_high", mapping.LevelHigh, "r1"),
	}

	tagger := New(testContract(), hclog.NewNullLogger(), false)
	tagged, diags := tagger.Apply(catalog, baselines)
	require.Empty(t, diags)
	assert.Equal(t, 1, tagged)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id: r1\nseverity: low\ntags:\n  - cnssi-1253_high\n  - cnssi-1253_moderate\n", string(data),
		"missing tags key appended at end, baseline tags sorted")
}

func TestApplyLeavesUnclaimedUntouched(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleFile(t, dir, "r2.yaml", taggedRule)
	info, err := os.Stat(path)
	require.NoError(t, err)

	catalog := rules.Catalog{Rules: []rules.Rule{{ID: "r2", Path: path, Section: "os"}}}
	baselines := []baseline.Baseline{claimedBaseline("cnssi-1253_high", mapping.LevelHigh, "other_rule")}

	tagger := New(testContract(), hclog.NewNullLogger(), false)
	tagged, diags := tagger.Apply(catalog, baselines)
	assert.Zero(t, tagged)
	assert.Empty(t, diags)

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), after.ModTime(), "unclaimed documents are not rewritten on disk")
}

func TestApplyDryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleFile(t, dir, "r1.yaml", taggedRule)
	catalog := rules.Catalog{Rules: []rules.Rule{{ID: "r1", Path: path, Section: "os"}}}
	baselines := []baseline.Baseline{claimedBaseline("cnssi-1253_high", mapping.LevelHigh, "r1")}

	tagger := New(testContract(), hclog.NewNullLogger(), true)
	tagged, diags := tagger.Apply(catalog, baselines)
	assert.Equal(t, 1, tagged)
	assert.Empty(t, diags)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, taggedRule, string(data), "dry run writes nothing")
}

func TestApplyReportsUnreadableTarget(t *testing.T) {
	catalog := rules.Catalog{Rules: []rules.Rule{{ID: "r1", Path: filepath.Join(t.TempDir(), "gone.yaml"), Section: "os"}}}
	baselines := []baseline.Baseline{claimedBaseline("cnssi-1253_high", mapping.LevelHigh, "r1")}

	tagger := New(testContract(), hclog.NewNullLogger(), false)
	tagged, diags := tagger.Apply(catalog, baselines)
	assert.Equal(t, 1, tagged)
	require.Len(t, diags, 1)
}
