// Package tagger rewrites the tag block of rule documents so each carries
// exactly the merged-baseline tags that currently claim it.
package tagger

import (
	"os"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/mscp-tools/cnssigen/internal/baseline"
	"github.com/mscp-tools/cnssigen/internal/diag"
	"github.com/mscp-tools/cnssigen/internal/ruledoc"
	"github.com/mscp-tools/cnssigen/internal/rules"
	"github.com/mscp-tools/cnssigen/pkg/shared/config"
	"github.com/mscp-tools/cnssigen/pkg/shared/files"
)

// Tagger applies baseline tags to rule documents. With DryRun set it reports
// what each run would change without writing anything.
type Tagger struct {
	contract config.Document
	logger   hclog.Logger
	dryRun   bool
}

// New creates a Tagger for the given document contract.
func New(contract config.Document, logger hclog.Logger, dryRun bool) *Tagger {
	return &Tagger{contract: contract, logger: logger, dryRun: dryRun}
}

// Apply rewrites the tag block of every rule claimed by at least one of the
// given baselines and returns the number of claimed rule documents.
//
// The rewrite is idempotent: stale tags carrying the catalog prefix are
// removed, the current baseline tags are inserted after the last surviving
// tag, and every other line survives byte-for-byte. Documents no baseline
// claims are left completely untouched on disk. A failed write is reported
// and skipped; the remaining documents are still processed.
func (t *Tagger) Apply(catalog rules.Catalog, baselines []baseline.Baseline) (int, []diag.Diagnostic) {
	var (
		tagged int
		diags  []diag.Diagnostic
	)
	for _, rule := range catalog.Rules {
		tags := claimedTags(rule.ID, baselines)
		if len(tags) == 0 {
			continue
		}
		tagged++

		original, err := os.ReadFile(rule.Path)
		if err != nil {
			diags = append(diags, diag.New(diag.CodeUntaggedTarget, rule.Path,
				"failed to read rule document: %v", err))
			continue
		}

		doc := ruledoc.Parse(original)
		rewritten := doc.ReplaceTaggedList(t.contract.TagsKey, t.contract.TagPrefix, tags)
		if doc.Equal(rewritten) {
			t.logger.Debug("rule already tagged", "rule", rule.ID, "tags", tags)
			continue
		}

		if t.dryRun {
			t.logger.Info("would tag rule", "rule", rule.ID, "tags", tags, "path", rule.Path)
			continue
		}

		if err := files.WriteFileAtomic(rule.Path, rewritten.Render(), 0644); err != nil {
			diags = append(diags, diag.New(diag.CodeSkippedWrite, rule.Path,
				"failed to write tagged rule document: %v", err))
			continue
		}
		t.logger.Debug("tagged rule", "rule", rule.ID, "tags", tags)
	}

	return tagged, diags
}

// claimedTags returns the sorted, deduplicated names of the baselines that
// include the rule identifier.
func claimedTags(ruleID string, baselines []baseline.Baseline) []string {
	set := make(map[string]struct{})
	for _, b := range baselines {
		if b.Contains(ruleID) {
			set[b.Name] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for name := range set {
		tags = append(tags, name)
	}
	sort.Strings(tags)
	return tags
}
