package baseline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v2"

	"github.com/mscp-tools/cnssigen/internal/mapping"
	"github.com/mscp-tools/cnssigen/pkg/shared/errors"
	"github.com/mscp-tools/cnssigen/pkg/shared/files"
)

// profileDocument is the on-disk shape of a serialized baseline.
type profileDocument struct {
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Profile     []profileSection `yaml:"profile"`
}

type profileSection struct {
	Section string   `yaml:"section"`
	Rules   []string `yaml:"rules"`
}

// WriteProfile renders the baseline to a YAML profile document at path,
// sections sorted by name and rule ids sorted within each section. The write
// is atomic: either the complete profile lands on disk or nothing does.
func WriteProfile(path, label string, b Baseline) error {
	doc := profileDocument{
		Title: fmt.Sprintf("%s: Security Configuration - CNSSI-1253 %s impact", label, b.Level),
		Description: fmt.Sprintf(
			"Rules required to satisfy the CNSSI-1253 %s impact baseline.", b.Level),
	}
	for _, section := range b.SectionNames() {
		doc.Profile = append(doc.Profile, profileSection{
			Section: section,
			Rules:   b.Sections[section],
		})
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to render profile for %q: %w", b.Name, err)
	}
	if err := files.CreateFolderIfNotExists(filepath.Dir(path)); err != nil {
		return err
	}
	return files.WriteFileAtomic(path, data, 0644)
}

// ReadProfile loads a previously serialized profile document back into a
// baseline. The baseline name is the file name without extension and the
// impact level is parsed from it.
func ReadProfile(path string) (Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Baseline{}, errors.NewFileNotFound(path, err)
	}

	var doc profileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Baseline{}, fmt.Errorf("failed to parse profile %q: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	level, err := mapping.LevelFromName(name)
	if err != nil {
		return Baseline{}, err
	}

	b := New(name, level)
	for _, section := range doc.Profile {
		for _, id := range section.Rules {
			b.add(section.Section, id)
		}
	}
	b.normalize()
	return b, nil
}
