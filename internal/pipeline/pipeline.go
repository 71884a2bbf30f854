// Package pipeline orchestrates the full baseline generation run:
// scan -> match (one per grid cell) -> duplicate report -> merge (one per
// level) -> serialize profiles -> tag rule documents.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/mscp-tools/cnssigen/internal/baseline"
	"github.com/mscp-tools/cnssigen/internal/diag"
	"github.com/mscp-tools/cnssigen/internal/mapping"
	"github.com/mscp-tools/cnssigen/internal/rules"
	"github.com/mscp-tools/cnssigen/internal/tagger"
	"github.com/mscp-tools/cnssigen/pkg/shared/config"
	"github.com/mscp-tools/cnssigen/pkg/shared/errors"
	"github.com/mscp-tools/cnssigen/pkg/shared/files"
)

const (
	// MappingsDirName is the directory under the build root holding the nine
	// per-cell mapping files.
	MappingsDirName = "mappings"
	// BaselinesDirName is the directory under the build root receiving the
	// serialized profile documents.
	BaselinesDirName = "baselines"
)

// Options carries the inputs of one generation run.
type Options struct {
	RulesRoot string
	BuildRoot string
	Label     string
	DryRun    bool
}

// Summary is the outcome of a generation run.
type Summary struct {
	RunID          string
	Merged         []baseline.Baseline
	TaggedCount    int
	CrossObjective map[mapping.ImpactLevel]map[string][]string
	KeywordGroups  map[string][]string
	Diagnostics    []diag.Diagnostic
}

// Runner wires the pipeline components together with shared config and logging.
type Runner struct {
	cfg    *config.Config
	logger hclog.Logger
}

// NewRunner creates a pipeline Runner.
func NewRunner(cfg *config.Config, logger hclog.Logger) *Runner {
	return &Runner{cfg: cfg, logger: logger}
}

// Generate executes the full pipeline. Missing top-level roots are fatal and
// abort before any write; everything below that granularity is a diagnostic
// and the run continues with the remaining items.
func (r *Runner) Generate(opts Options) (*Summary, error) {
	if err := files.ValidateDirPath(opts.RulesRoot); err != nil {
		return nil, errors.NewDirectoryNotFound(opts.RulesRoot, err)
	}
	if err := files.ValidateDirPath(opts.BuildRoot); err != nil {
		return nil, errors.NewDirectoryNotFound(opts.BuildRoot, err)
	}

	collector := diag.NewCollector()
	catalog, diags, err := rules.ScanCatalog(opts.RulesRoot, r.cfg.Document)
	if err != nil {
		return nil, err
	}
	collector.Add(diags...)
	r.logger.Info("scanned rule catalog", "rules", len(catalog.Rules), "root", opts.RulesRoot)

	byLevel, diags := r.matchGrid(filepath.Join(opts.BuildRoot, MappingsDirName), catalog)
	collector.Add(diags...)

	summary := &Summary{
		RunID:          collector.RunID,
		CrossObjective: make(map[mapping.ImpactLevel]map[string][]string),
		KeywordGroups:  baseline.LevelKeywordGroups(catalog.IDs()),
	}

	for _, level := range mapping.Levels() {
		cells := byLevel[level]
		summary.CrossObjective[level] = baseline.CrossObjective(cells)

		merged, err := baseline.Merge(r.cfg.Document.TagPrefix, cells[0], cells[1], cells[2])
		if err != nil {
			return nil, err
		}
		r.logger.Info("merged objective baselines", "baseline", merged.Name, "rules", len(merged.Rules))
		summary.Merged = append(summary.Merged, merged)

		profilePath := filepath.Join(opts.BuildRoot, BaselinesDirName, merged.Name+".yaml")
		if opts.DryRun {
			r.logger.Info("would write profile", "path", profilePath, "rules", len(merged.Rules))
		} else if err := baseline.WriteProfile(profilePath, opts.Label, merged); err != nil {
			collector.Add(diag.New(diag.CodeSkippedWrite, profilePath,
				"failed to write profile: %v", err))
		}
	}

	t := tagger.New(r.cfg.Document, r.logger, opts.DryRun)
	tagged, diags := t.Apply(catalog, summary.Merged)
	collector.Add(diags...)
	summary.TaggedCount = tagged
	summary.Diagnostics = collector.Items()

	return summary, nil
}

// Retag re-runs only the tagging step, reconstructing baseline membership
// from the profile documents already serialized under the build root.
func (r *Runner) Retag(rulesRoot, buildRoot string, dryRun bool) (int, []diag.Diagnostic, error) {
	catalog, diags, err := rules.ScanCatalog(rulesRoot, r.cfg.Document)
	if err != nil {
		return 0, nil, err
	}

	baselines, err := r.readProfiles(filepath.Join(buildRoot, BaselinesDirName))
	if err != nil {
		return 0, nil, err
	}

	t := tagger.New(r.cfg.Document, r.logger, dryRun)
	tagged, tagDiags := t.Apply(catalog, baselines)
	return tagged, append(diags, tagDiags...), nil
}

// readProfiles loads every serialized profile document in dir back into a
// baseline.
func (r *Runner) readProfiles(dir string) ([]baseline.Baseline, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewDirectoryNotFound(dir, err)
	}

	var baselines []baseline.Baseline
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		b, err := baseline.ReadProfile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		baselines = append(baselines, b)
	}
	return baselines, nil
}

// DuplicateReport runs both duplicate checks across all nine grid cells
// without writing anything.
type DuplicateReport struct {
	RunID          string
	CrossObjective map[mapping.ImpactLevel]map[string][]string
	KeywordGroups  map[string][]string
	Diagnostics    []diag.Diagnostic
}

// Duplicates matches every grid cell and reports cross-objective duplicates
// per level plus level-keyword near-duplicates across the whole catalog.
func (r *Runner) Duplicates(rulesRoot, mappingsRoot string) (*DuplicateReport, error) {
	if err := files.ValidateDirPath(mappingsRoot); err != nil {
		return nil, errors.NewDirectoryNotFound(mappingsRoot, err)
	}

	collector := diag.NewCollector()
	catalog, diags, err := rules.ScanCatalog(rulesRoot, r.cfg.Document)
	if err != nil {
		return nil, err
	}
	collector.Add(diags...)

	byLevel, diags := r.matchGrid(mappingsRoot, catalog)
	collector.Add(diags...)

	report := &DuplicateReport{
		RunID:          collector.RunID,
		CrossObjective: make(map[mapping.ImpactLevel]map[string][]string),
		KeywordGroups:  baseline.LevelKeywordGroups(catalog.IDs()),
	}
	for _, level := range mapping.Levels() {
		report.CrossObjective[level] = baseline.CrossObjective(byLevel[level])
	}
	report.Diagnostics = collector.Items()
	return report, nil
}

// matchGrid matches every cell of the objective x level grid against the
// catalog. A missing mapping file yields an empty baseline for that cell and
// a diagnostic; the run proceeds with the remaining cells.
func (r *Runner) matchGrid(mappingsRoot string, catalog rules.Catalog) (map[mapping.ImpactLevel][]baseline.Baseline, []diag.Diagnostic) {
	byLevel := make(map[mapping.ImpactLevel][]baseline.Baseline, 3)
	var collected []diag.Diagnostic

	for _, cell := range mapping.Grid() {
		name := fmt.Sprintf("%s_%s", r.cfg.Document.TagPrefix, cell.Name())
		path := filepath.Join(mappingsRoot, cell.FileName())

		rows, diags, err := mapping.ReadFile(path, r.cfg.Mapping.Delimiter, r.cfg.Mapping.FamilyHint)
		if err != nil {
			collected = append(collected, diag.New(diag.CodeMissingMapping, path,
				"mapping file for cell %s is missing or unreadable", cell.Name()))
			byLevel[cell.Level] = append(byLevel[cell.Level], baseline.New(name, cell.Level))
			continue
		}
		collected = append(collected, diags...)

		b, diags := baseline.Match(name, cell.Level, rows, catalog)
		collected = append(collected, diags...)
		r.logger.Debug("matched mapping cell", "cell", cell.Name(), "rules", len(b.Rules), "controls", len(rows))
		byLevel[cell.Level] = append(byLevel[cell.Level], b)
	}

	return byLevel, collected
}
