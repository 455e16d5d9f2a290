package importer

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_mapping.yaml
var defaultMapping []byte

// DefaultSheet is the mapping entry used for sheets not named explicitly.
const DefaultSheet = "default"

// Project fields a column can be mapped to.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImageURL    = "image_url"
	FieldVideoURL    = "video_url"
	FieldGithubURL   = "github_url"
)

var knownFields = map[string]bool{
	FieldTitle:       true,
	FieldDescription: true,
	FieldImageURL:    true,
	FieldVideoURL:    true,
	FieldGithubURL:   true,
}

// MappingConfig represents the YAML mapping configuration
type MappingConfig struct {
	Version int                    `yaml:"version"`
	Sheets  map[string]SheetConfig `yaml:"sheets"`
}

// SheetConfig maps project fields to the header names that may carry them.
type SheetConfig struct {
	Skip    bool                `yaml:"skip"`
	Aliases map[string][]string `yaml:"aliases"`
}

// LoadMapping reads a mapping file, or the embedded default when path is empty.
func LoadMapping(path string) (*MappingConfig, error) {
	data := defaultMapping
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read mapping %s: %w", path, err)
		}
	}
	return ParseMapping(data)
}

// ParseMapping decodes and checks a YAML mapping document.
func ParseMapping(data []byte) (*MappingConfig, error) {
	var m MappingConfig
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse mapping: %w", err)
	}
	if m.Version != 1 {
		return nil, fmt.Errorf("unsupported mapping version %d", m.Version)
	}
	if len(m.Sheets) == 0 {
		return nil, fmt.Errorf("mapping defines no sheets")
	}
	for name, sheet := range m.Sheets {
		for field := range sheet.Aliases {
			if !knownFields[field] {
				return nil, fmt.Errorf("sheet %q: unknown field %q", name, field)
			}
		}
	}
	return &m, nil
}

// For returns the configuration that applies to the named sheet.
func (m *MappingConfig) For(sheet string) (SheetConfig, bool) {
	if cfg, ok := m.Sheets[sheet]; ok {
		return cfg, !cfg.Skip
	}
	cfg, ok := m.Sheets[DefaultSheet]
	return cfg, ok && !cfg.Skip
}

// resolveHeaders maps column indexes to project fields. A header matches a
// field when it equals the field name or one of its aliases, ignoring case.
func (c SheetConfig) resolveHeaders(headers []string) map[int]string {
	lookup := make(map[string]string)
	fields := make([]string, 0, len(knownFields))
	for f := range knownFields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		lookup[normalizeHeader(f)] = f
		for _, alias := range c.Aliases[f] {
			lookup[normalizeHeader(alias)] = f
		}
	}

	columns := make(map[int]string)
	taken := make(map[string]bool)
	for i, h := range headers {
		field, ok := lookup[normalizeHeader(h)]
		if !ok || taken[field] {
			continue
		}
		columns[i] = field
		taken[field] = true
	}
	return columns
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}
