package rules

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mscp-tools/cnssigen/internal/diag"
	"github.com/mscp-tools/cnssigen/internal/ruledoc"
	"github.com/mscp-tools/cnssigen/pkg/shared/config"
	"github.com/mscp-tools/cnssigen/pkg/shared/errors"
)

// ScanCatalog walks the rule catalog root exactly two levels deep
// (root -> section directories -> rule documents) and parses every document
// with a recognized extension. A document that fails to read is skipped with
// a diagnostic; only a missing root is fatal. Rules whose path contains the
// configured exclusion substring (supplemental material) are ignored.
func ScanCatalog(root string, contract config.Document) (Catalog, []diag.Diagnostic, error) {
	sections, err := os.ReadDir(root)
	if err != nil {
		return Catalog{}, nil, errors.NewDirectoryNotFound(root, err)
	}

	var (
		catalog Catalog
		diags   []diag.Diagnostic
	)
	for _, section := range sections {
		if !section.IsDir() {
			continue
		}
		sectionPath := filepath.Join(root, section.Name())
		entries, err := os.ReadDir(sectionPath)
		if err != nil {
			diags = append(diags, diag.New(diag.CodeUnparsableRule, sectionPath,
				"failed to read section directory: %v", err))
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !hasRecognizedExt(entry.Name(), contract.Extensions) {
				continue
			}
			path := filepath.Join(sectionPath, entry.Name())
			if contract.ExcludeSubstring != "" && strings.Contains(path, contract.ExcludeSubstring) {
				continue
			}

			rule, err := readRule(path, section.Name(), contract)
			if err != nil {
				diags = append(diags, diag.New(diag.CodeUnparsableRule, path,
					"skipping rule document: %v", err))
				continue
			}
			catalog.Rules = append(catalog.Rules, rule)
		}
	}

	return catalog, diags, nil
}

// readRule parses a single rule document. The identifier defaults to the
// file name without extension; an explicit id key overrides it.
func readRule(path, section string, contract config.Document) (Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rule{}, err
	}
	doc := ruledoc.Parse(data)

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if explicit, ok := doc.Value(contract.IDKey); ok {
		id = explicit
	}

	return Rule{
		ID:       id,
		Path:     path,
		Section:  section,
		Controls: newControlSet(doc.ListValues(contract.ReferencesKey)),
		Tags:     doc.ListValues(contract.TagsKey),
	}, nil
}

func hasRecognizedExt(name string, extensions []string) bool {
	ext := filepath.Ext(name)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
