package duplicates

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/mscp-tools/cnssigen/internal/mapping"
	"github.com/mscp-tools/cnssigen/internal/pipeline"
)

const (
	ruleCrossObjective = "cross-objective-duplicate"
	ruleLevelKeyword   = "level-keyword-duplicate"
)

// writeSarifReport renders the duplicate findings as a SARIF log: one result
// per duplicated rule or near-duplicate group. Cross-objective overlap is
// benign and reported at note level; level-keyword groups point at authoring
// duplicates and are reported as warnings.
func writeSarifReport(path string, report *pipeline.DuplicateReport) error {
	log, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("cnssigen", "https://github.com/mscp-tools/cnssigen")
	run.AddRule(ruleCrossObjective).
		WithDescription("Rule matched by more than one security objective of the same impact level.").
		WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: "note"})
	run.AddRule(ruleLevelKeyword).
		WithDescription("Rule identifiers differing only by an impact-level keyword; collapse before merging.").
		WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: "warning"})

	for _, level := range mapping.Levels() {
		overlap := report.CrossObjective[level]
		for _, id := range sortedKeys(overlap) {
			message := fmt.Sprintf("rule %s appears in baselines %s", id, strings.Join(overlap[id], ", "))
			run.AddResult(sarif.NewRuleResult(ruleCrossObjective).
				WithMessage(sarif.NewTextMessage(message)).
				WithLevel("note"))
		}
	}

	for _, base := range sortedKeys(report.KeywordGroups) {
		message := fmt.Sprintf("rules %s differ only by an impact-level keyword (base %q)",
			strings.Join(report.KeywordGroups[base], ", "), base)
		run.AddResult(sarif.NewRuleResult(ruleLevelKeyword).
			WithMessage(sarif.NewTextMessage(message)).
			WithLevel("warning"))
	}

	log.AddRun(run)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error writing SARIF report: %w", err)
	}
	defer func() { _ = file.Close() }()
	return log.PrettyWrite(file)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
