package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config discovered at the project root.
const DefaultConfigFile = "codegen.yaml"

// Config is the recognized generation configuration. The option names match
// the keys accepted in codegen.yaml.
type Config struct {
	// Schema is the path of the GraphQL schema file.
	Schema string `yaml:"schema"`
	// Documents are globs matching the operation document files.
	Documents []string `yaml:"documents"`
	// Output is the path of the emitted artifact. Its extension must be
	// .ts or .tsx unless DisableChecks is set.
	Output string `yaml:"output"`
	// UseExternalDocument references operation documents from a separate
	// module instead of inlining gql-tagged sources.
	UseExternalDocument bool `yaml:"useExternalDocument"`
	// DisableChecks skips output path validation.
	DisableChecks bool `yaml:"disableChecks"`
	// ExternalFragments are pass-through fragment sources appended after
	// the locally discovered fragments.
	ExternalFragments []Fragment `yaml:"externalFragments"`
	// DocumentsModule is the import path used with UseExternalDocument.
	DocumentsModule string `yaml:"documentsModule"`
}

func (cfg Config) documentsModule() string {
	if cfg.DocumentsModule != "" {
		return cfg.DocumentsModule
	}
	return "./documents"
}

var knownConfigKeys = []string{
	"schema",
	"documents",
	"output",
	"useExternalDocument",
	"disableChecks",
	"externalFragments",
	"documentsModule",
}

// ConfigError reports an unusable configuration with an optional hint.
type ConfigError struct {
	Path       string
	Detail     string
	Suggestion string
}

func (e ConfigError) Error() string {
	if e.Path == "" {
		return e.Detail
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Detail)
}

// Hint returns remediation advice for CLI display.
func (e ConfigError) Hint() string { return e.Suggestion }

// LoadConfig reads and validates the config file at path.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, ConfigError{
				Path:       path,
				Detail:     "config file not found",
				Suggestion: "Run `suspensegen init` to scaffold a starter codegen.yaml.",
			}
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(path, raw)
}

// ParseConfig decodes raw yaml, rejecting unknown top-level keys with a
// closest-match suggestion.
func ParseConfig(path string, raw []byte) (Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := checkConfigKeys(path, &doc); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) validate(path string) error {
	if strings.TrimSpace(cfg.Schema) == "" {
		return ConfigError{Path: path, Detail: "schema is required", Suggestion: "Point `schema` at your .graphqls file."}
	}
	if len(cfg.Documents) == 0 {
		return ConfigError{Path: path, Detail: "documents is required", Suggestion: "Add at least one glob under `documents`, e.g. queries/*.graphql."}
	}
	if strings.TrimSpace(cfg.Output) == "" {
		return ConfigError{Path: path, Detail: "output is required", Suggestion: "Set `output` to the artifact path, e.g. src/generated/hooks.tsx."}
	}
	return nil
}

func checkConfigKeys(path string, doc *yaml.Node) error {
	mapping := doc
	if mapping.Kind == yaml.DocumentNode {
		if len(mapping.Content) == 0 {
			return nil
		}
		mapping = mapping.Content[0]
	}
	if mapping.Kind != yaml.MappingNode {
		return ConfigError{Path: path, Detail: "config must be a yaml mapping"}
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		if keyKnown(key) {
			continue
		}
		return ConfigError{
			Path:       path,
			Detail:     fmt.Sprintf("unknown option %q", key),
			Suggestion: suggestConfigKey(key),
		}
	}
	return nil
}

func keyKnown(key string) bool {
	for _, known := range knownConfigKeys {
		if key == known {
			return true
		}
	}
	return false
}

// suggestConfigKey proposes the closest recognized option name.
func suggestConfigKey(key string) string {
	best := ""
	bestDistance := len(key) + 1
	for _, known := range knownConfigKeys {
		distance := levenshtein.ComputeDistance(strings.ToLower(key), strings.ToLower(known))
		if distance < bestDistance {
			best = known
			bestDistance = distance
		}
	}
	if best == "" || bestDistance > len(best)/2+1 {
		options := append([]string(nil), knownConfigKeys...)
		sort.Strings(options)
		return "Recognized options: " + strings.Join(options, ", ") + "."
	}
	return fmt.Sprintf("Did you mean %q?", best)
}

// ResolveConfigPath returns the config location for a project root.
func ResolveConfigPath(root, override string) string {
	if override != "" {
		if filepath.IsAbs(override) {
			return override
		}
		return filepath.Join(root, override)
	}
	return filepath.Join(root, DefaultConfigFile)
}
