package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Logger   Logger   `yaml:"logger"`
	Document Document `yaml:"document"`
	Mapping  Mapping  `yaml:"mapping"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// Document describes the rule-document contract: the key spellings and list
// syntax the external rule catalog uses. These must match the catalog
// bit-for-bit, so they live here instead of being hard-coded in the parser.
type Document struct {
	IDKey            string   `yaml:"id_key"`
	ReferencesKey    string   `yaml:"references_key"`
	TagsKey          string   `yaml:"tags_key"`
	TagPrefix        string   `yaml:"tag_prefix"`
	Extensions       []string `yaml:"extensions"`
	ExcludeSubstring string   `yaml:"exclude_substring"`
}

// Mapping describes the control-mapping file contract.
type Mapping struct {
	Delimiter  string `yaml:"delimiter"`
	FamilyHint string `yaml:"family_hint"`
}

// ValidateConfigPath checks that the config path points to a regular file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// NewConfig loads the config file at configPath and fills in defaults for
// anything it leaves unset. An empty path skips loading entirely: the
// defaults cover the published mSCP rule-document contract.
func NewConfig(configPath string) (*Config, error) {
	config := &Config{}

	if configPath != "" {
		if err := LoadYAML(configPath, config); err != nil {
			return nil, err
		}
	}
	applyDefaults(config)

	return config, nil
}

func applyDefaults(c *Config) {
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Document.IDKey == "" {
		c.Document.IDKey = "id"
	}
	if c.Document.ReferencesKey == "" {
		c.Document.ReferencesKey = "cnssi-1253"
	}
	if c.Document.TagsKey == "" {
		c.Document.TagsKey = "tags"
	}
	if c.Document.TagPrefix == "" {
		c.Document.TagPrefix = "cnssi-1253"
	}
	if len(c.Document.Extensions) == 0 {
		c.Document.Extensions = []string{".yaml", ".yml"}
	}
	if c.Document.ExcludeSubstring == "" {
		c.Document.ExcludeSubstring = "supplemental"
	}
	if c.Mapping.Delimiter == "" {
		c.Mapping.Delimiter = ","
	}
	if c.Mapping.FamilyHint == "" {
		c.Mapping.FamilyHint = "800-53"
	}
}
