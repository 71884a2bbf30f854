// Package mapping reads the per-cell control-mapping files that pair a
// CNSSI-1253 impact tag with a catalog control identifier.
package mapping

import (
	"os"
	"strings"

	"github.com/mscp-tools/cnssigen/internal/diag"
	"github.com/mscp-tools/cnssigen/pkg/shared/errors"
)

// ControlMapping is one row of a mapping file: an impact tag (e.g. "IH")
// paired with a catalog control id (e.g. "AC-2(1)"). The control id is kept
// as authored; comparisons uppercase it.
type ControlMapping struct {
	Tag     string
	Control string
}

// NormalizedControl returns the control id uppercased for set comparison.
func (m ControlMapping) NormalizedControl() string {
	return strings.ToUpper(m.Control)
}

// ReadFile parses a two-column delimited mapping file into ControlMapping
// rows. Malformed rows are skipped with a diagnostic. The first line is
// discarded as a header when its second field contains familyHint.
func ReadFile(path, delimiter, familyHint string) ([]ControlMapping, []diag.Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.NewFileNotFound(path, err)
	}

	var (
		mappings []ControlMapping
		diags    []diag.Diagnostic
	)
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.SplitN(line, delimiter, 2)
		if len(fields) < 2 {
			diags = append(diags, diag.New(diag.CodeMalformedRow, path,
				"line %d has fewer than two fields", i+1))
			continue
		}
		tag := strings.TrimSpace(fields[0])
		control := strings.TrimSpace(fields[1])
		if tag == "" || control == "" {
			diags = append(diags, diag.New(diag.CodeMalformedRow, path,
				"line %d has an empty field", i+1))
			continue
		}

		if i == 0 && strings.Contains(control, familyHint) {
			diags = append(diags, diag.New(diag.CodeHeaderSkipped, path,
				"discarded header row %q", line))
			continue
		}

		mappings = append(mappings, ControlMapping{Tag: tag, Control: control})
	}

	return mappings, diags, nil
}
