// Package diag collects structured diagnostics from pipeline components so
// soft failures can be inspected programmatically instead of being printed
// as they happen.
package diag

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

type Code string

const (
	CodeMalformedRow     Code = "malformed-row"
	CodeHeaderSkipped    Code = "header-skipped"
	CodeUnparsableRule   Code = "unparsable-rule"
	CodeUnmatchedControl Code = "unmatched-control"
	CodeMissingMapping   Code = "missing-mapping"
	CodeSkippedWrite     Code = "skipped-write"
	CodeUntaggedTarget   Code = "untagged-target"
)

// Diagnostic is a single soft condition observed during a run. Diagnostics
// never abort a run; the item they describe is skipped and processing continues.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     Code     `json:"code"`
	Path     string   `json:"path,omitempty"`
	Detail   string   `json:"detail"`
}

func (d Diagnostic) String() string {
	if d.Path != "" {
		return fmt.Sprintf("[%s] %s: %s (%s)", d.Severity, d.Code, d.Detail, d.Path)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Code, d.Detail)
}

// New creates a warning-level diagnostic, the common case for skip-and-continue conditions.
func New(code Code, path, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarn,
		Code:     code,
		Path:     path,
		Detail:   fmt.Sprintf(format, args...),
	}
}

// Collector aggregates diagnostics across pipeline stages under a single run ID.
type Collector struct {
	RunID string
	items []Diagnostic
}

// NewCollector creates a Collector stamped with a fresh run ID.
func NewCollector() *Collector {
	return &Collector{RunID: uuid.NewString()}
}

// Add appends diagnostics to the collector.
func (c *Collector) Add(diags ...Diagnostic) {
	c.items = append(c.items, diags...)
}

// Items returns the collected diagnostics in insertion order.
func (c *Collector) Items() []Diagnostic {
	return c.items
}

// LogAll renders every collected diagnostic through the given logger.
func (c *Collector) LogAll(logger hclog.Logger) {
	for _, d := range c.items {
		switch d.Severity {
		case SeverityError:
			logger.Error(d.Detail, "code", d.Code, "path", d.Path)
		case SeverityInfo:
			logger.Info(d.Detail, "code", d.Code, "path", d.Path)
		default:
			logger.Warn(d.Detail, "code", d.Code, "path", d.Path)
		}
	}
}
