package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mscp-tools/cnssigen/internal/baseline"
	"github.com/mscp-tools/cnssigen/internal/diag"
	"github.com/mscp-tools/cnssigen/internal/mapping"
	"github.com/mscp-tools/cnssigen/pkg/shared/config"
	sharederrors "github.com/mscp-tools/cnssigen/pkg/shared/errors"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	cfg, err := config.NewConfig("")
	require.NoError(t, err)
	return NewRunner(cfg, hclog.NewNullLogger())
}

// fixtureRoots builds a small catalog with two sections and mapping files for
// the three high-level cells only; the other six cells stay missing.
func fixtureRoots(t *testing.T) (rulesRoot, buildRoot string) {
	t.Helper()
	rulesRoot = t.TempDir()
	buildRoot = t.TempDir()

	write := func(path, content string) {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	write(filepath.Join(rulesRoot, "auditing", "audit_files_configure.yaml"), `id: audit_files_configure
references:
  cnssi-1253:
    - AU-9
tags:
  - 800-53r5_low
`)
	write(filepath.Join(rulesRoot, "os", "os_firewall_enable.yaml"), `id: os_firewall_enable
references:
  cnssi-1253:
    - SC-7
`)
	write(filepath.Join(rulesRoot, "os", "os_unmapped_rule.yaml"), `id: os_unmapped_rule
references:
  cnssi-1253:
    - CM-7
`)

	mappings := filepath.Join(buildRoot, MappingsDirName)
	write(filepath.Join(mappings, "confidentiality_high.csv"), "CH,SC-7\n")
	write(filepath.Join(mappings, "integrity_high.csv"), "IH,AU-9\nIH,SC-7\n")
	write(filepath.Join(mappings, "availability_high.csv"), "AH,AU-9\nAH,SI-99\n")

	return rulesRoot, buildRoot
}

func TestGenerate(t *testing.T) {
	rulesRoot, buildRoot := fixtureRoots(t)
	runner := newTestRunner(t)

	summary, err := runner.Generate(Options{
		RulesRoot: rulesRoot,
		BuildRoot: buildRoot,
		Label:     "macOS 14.0 (Sonoma)",
	})
	require.NoError(t, err)
	require.Len(t, summary.Merged, 3)

	byLevel := make(map[mapping.ImpactLevel]baseline.Baseline)
	for _, merged := range summary.Merged {
		byLevel[merged.Level] = merged
	}
	assert.Equal(t, []string{"audit_files_configure", "os_firewall_enable"}, byLevel[mapping.LevelHigh].RuleIDs())
	assert.Empty(t, byLevel[mapping.LevelLow].RuleIDs(), "missing cells merge to an empty baseline")

	profile, err := baseline.ReadProfile(filepath.Join(buildRoot, BaselinesDirName, "cnssi-1253_high.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"audit_files_configure", "os_firewall_enable"}, profile.RuleIDs())

	data, err := os.ReadFile(filepath.Join(rulesRoot, "auditing", "audit_files_configure.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "- cnssi-1253_high")
	assert.Contains(t, string(data), "- 800-53r5_low", "unrelated tags preserved")

	untouched, err := os.ReadFile(filepath.Join(rulesRoot, "os", "os_unmapped_rule.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(untouched), "cnssi-1253_high")

	assert.Equal(t, 2, summary.TaggedCount)

	codes := make(map[diag.Code]int)
	for _, d := range summary.Diagnostics {
		codes[d.Code]++
	}
	assert.Equal(t, 6, codes[diag.CodeMissingMapping], "six grid cells have no mapping file")
	assert.Equal(t, 1, codes[diag.CodeUnmatchedControl], "SI-99 matched no rule")
}

func TestGenerateDryRun(t *testing.T) {
	rulesRoot, buildRoot := fixtureRoots(t)
	runner := newTestRunner(t)

	before, err := os.ReadFile(filepath.Join(rulesRoot, "os", "os_firewall_enable.yaml"))
	require.NoError(t, err)

	summary, err := runner.Generate(Options{
		RulesRoot: rulesRoot,
		BuildRoot: buildRoot,
		Label:     "label",
		DryRun:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TaggedCount)

	_, err = os.Stat(filepath.Join(buildRoot, BaselinesDirName))
	assert.True(t, os.IsNotExist(err), "dry run writes no profiles")

	after, err := os.ReadFile(filepath.Join(rulesRoot, "os", "os_firewall_enable.yaml"))
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "dry run rewrites no rule documents")
}

func TestGenerateIdempotent(t *testing.T) {
	rulesRoot, buildRoot := fixtureRoots(t)
	runner := newTestRunner(t)
	opts := Options{RulesRoot: rulesRoot, BuildRoot: buildRoot, Label: "label"}

	_, err := runner.Generate(opts)
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(rulesRoot, "auditing", "audit_files_configure.yaml"))
	require.NoError(t, err)

	_, err = runner.Generate(opts)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(rulesRoot, "auditing", "audit_files_configure.yaml"))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second), "second run accumulates no duplicate tags")
}

func TestGenerateMissingRoots(t *testing.T) {
	runner := newTestRunner(t)

	_, err := runner.Generate(Options{
		RulesRoot: filepath.Join(t.TempDir(), "absent"),
		BuildRoot: t.TempDir(),
		Label:     "label",
	})
	require.Error(t, err)
	var notFound *sharederrors.DirectoryNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestRetag(t *testing.T) {
	rulesRoot, buildRoot := fixtureRoots(t)
	runner := newTestRunner(t)

	_, err := runner.Generate(Options{RulesRoot: rulesRoot, BuildRoot: buildRoot, Label: "label"})
	require.NoError(t, err)

	// Strip the tag block written by generate, then reconstruct it from the profiles.
	rulePath := filepath.Join(rulesRoot, "os", "os_firewall_enable.yaml")
	require.NoError(t, os.WriteFile(rulePath, []byte("id: os_firewall_enable\nreferences:\n  cnssi-1253:\n    - SC-7\n"), 0644))

	tagged, _, err := runner.Retag(rulesRoot, buildRoot, false)
	require.NoError(t, err)
	assert.Equal(t, 2, tagged)

	data, err := os.ReadFile(rulePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- cnssi-1253_high")
}

func TestDuplicates(t *testing.T) {
	rulesRoot, buildRoot := fixtureRoots(t)
	runner := newTestRunner(t)

	report, err := runner.Duplicates(rulesRoot, filepath.Join(buildRoot, MappingsDirName))
	require.NoError(t, err)

	high := report.CrossObjective[mapping.LevelHigh]
	assert.Contains(t, high, "os_firewall_enable", "SC-7 is required by confidentiality and integrity")
	assert.Contains(t, high, "audit_files_configure", "AU-9 is required by integrity and availability")
	assert.NotEmpty(t, report.RunID)
	assert.Empty(t, report.KeywordGroups)
}
