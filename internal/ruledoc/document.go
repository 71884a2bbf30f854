// Package ruledoc parses and rewrites the semi-structured rule documents of
// the hardening catalog. The line scanner lives only here: callers see a
// narrow interface (HasKey, Value, ListValues, ReplaceTaggedList) and never
// touch raw lines, so the parsing strategy can change without touching the
// matching or merging logic.
//
// Rewrites are pure: ReplaceTaggedList returns a new Document and leaves the
// receiver untouched. Render reproduces every line the rewrite did not target
// byte-for-byte.
package ruledoc

import (
	"strings"
)

const (
	listMarker        = "- "
	defaultItemIndent = "  "
)

// Document is an immutable view of one rule document.
type Document struct {
	lines           []string
	trailingNewline bool
}

// Parse splits data into lines. It never fails: any byte sequence is a valid
// document, it just may not contain the keys a caller is after.
func Parse(data []byte) *Document {
	text := string(data)
	if text == "" {
		return &Document{}
	}
	trailing := strings.HasSuffix(text, "\n")
	if trailing {
		text = strings.TrimSuffix(text, "\n")
	}
	return &Document{
		lines:           strings.Split(text, "\n"),
		trailingNewline: trailing,
	}
}

// Render serializes the document back to bytes.
func (d *Document) Render() []byte {
	if len(d.lines) == 0 {
		return []byte{}
	}
	text := strings.Join(d.lines, "\n")
	if d.trailingNewline {
		text += "\n"
	}
	return []byte(text)
}

// HasKey reports whether a top-level key with the given name exists.
func (d *Document) HasKey(key string) bool {
	for _, line := range d.lines {
		if isTopLevelKey(line) && keyName(line) == key {
			return true
		}
	}
	return false
}

// Value returns the scalar value of the named top-level key. When the key
// appears more than once the last occurrence wins. Keys that open a block
// (no inline value) are skipped.
func (d *Document) Value(key string) (string, bool) {
	value, found := "", false
	for _, line := range d.lines {
		if !isTopLevelKey(line) || keyName(line) != key {
			continue
		}
		if v := inlineValue(line); v != "" {
			value, found = v, true
		}
	}
	return value, found
}

// ListValues collects the list items belonging to the named key. The key line
// may appear at any indentation (e.g. a reference family nested under a
// references block); the collecting state closes at the next top-level key.
// Surrounding quotes are stripped from each item.
func (d *Document) ListValues(key string) []string {
	var values []string
	inside := false
	for _, line := range d.lines {
		switch {
		case keyLineMatches(line, key):
			inside = true
		case inside && isListItem(line):
			values = append(values, itemValue(line))
		case inside && isTopLevelKey(line):
			inside = false
		}
	}
	return values
}

// ReplaceTaggedList rewrites the list under the named top-level key so that
// items starting with prefix are exactly values, in the order given:
//
//   - existing items whose value starts with prefix are removed (they are
//     presumed stale output of a previous run),
//   - the new items are inserted immediately after the last surviving item,
//     preserving unrelated items in their original position and order,
//   - when the key does not exist, the key and its items are appended at the
//     end of the document.
//
// The receiver is not modified; the rewritten document is returned.
func (d *Document) ReplaceTaggedList(key, prefix string, values []string) *Document {
	keyIdx := -1
	for i, line := range d.lines {
		if isTopLevelKey(line) && keyName(line) == key {
			keyIdx = i
			break
		}
	}

	if keyIdx == -1 {
		out := make([]string, 0, len(d.lines)+len(values)+1)
		out = append(out, d.lines...)
		out = append(out, key+":")
		for _, v := range values {
			out = append(out, defaultItemIndent+listMarker+v)
		}
		return &Document{lines: out, trailingNewline: d.trailingNewline || len(d.lines) == 0}
	}

	blockEnd := keyIdx + 1
	for blockEnd < len(d.lines) && isListItem(d.lines[blockEnd]) {
		blockEnd++
	}

	itemPrefix := defaultItemIndent + listMarker
	if blockEnd > keyIdx+1 {
		itemPrefix = markerPrefix(d.lines[keyIdx+1])
	}

	out := make([]string, 0, len(d.lines)+len(values))
	out = append(out, d.lines[:keyIdx+1]...)
	for _, line := range d.lines[keyIdx+1 : blockEnd] {
		if strings.HasPrefix(itemValue(line), prefix) {
			continue
		}
		out = append(out, line)
	}
	for _, v := range values {
		out = append(out, itemPrefix+v)
	}
	out = append(out, d.lines[blockEnd:]...)
	return &Document{lines: out, trailingNewline: d.trailingNewline}
}

// Equal reports whether two documents render to identical bytes.
func (d *Document) Equal(other *Document) bool {
	return string(d.Render()) == string(other.Render())
}

// keyLineMatches reports whether the line declares the given key at any indentation.
func keyLineMatches(line, key string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, key+":")
}

// isTopLevelKey reports whether the line is an unindented key declaration:
// non-empty, non-comment, not a list item, and containing the key separator.
func isTopLevelKey(line string) bool {
	if line == "" {
		return false
	}
	if line[0] == ' ' || line[0] == '\t' || line[0] == '#' {
		return false
	}
	if strings.HasPrefix(line, listMarker) || line == "-" {
		return false
	}
	return strings.Contains(line, ":")
}

func keyName(line string) string {
	return strings.TrimSpace(line[:strings.Index(line, ":")])
}

func inlineValue(line string) string {
	return unquote(strings.TrimSpace(line[strings.Index(line, ":")+1:]))
}

func isListItem(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, listMarker)
}

// itemValue extracts a list item's value with surrounding quotes stripped.
func itemValue(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	return unquote(strings.TrimSpace(strings.TrimPrefix(trimmed, listMarker)))
}

// markerPrefix returns the leading whitespace and list marker of an item
// line, so inserted items reproduce the block's existing indentation.
func markerPrefix(line string) string {
	idx := strings.Index(line, listMarker)
	return line[:idx+len(listMarker)]
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
