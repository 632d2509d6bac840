package generator

import (
	"errors"
	"strings"
	"testing"
)

func TestParseConfig(t *testing.T) {
	raw := []byte(`
schema: schema.graphqls
documents:
  - queries/*.graphql
output: src/generated/hooks.tsx
useExternalDocument: true
documentsModule: ./operations
disableChecks: false
externalFragments:
  - name: SharedWeather
    source: "fragment SharedWeather on Weather { summary }"
`)
	cfg, err := ParseConfig("codegen.yaml", raw)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Schema != "schema.graphqls" {
		t.Fatalf("schema: got %q", cfg.Schema)
	}
	if len(cfg.Documents) != 1 || cfg.Documents[0] != "queries/*.graphql" {
		t.Fatalf("documents: got %v", cfg.Documents)
	}
	if !cfg.UseExternalDocument || cfg.documentsModule() != "./operations" {
		t.Fatalf("external document config not honored: %+v", cfg)
	}
	if len(cfg.ExternalFragments) != 1 || cfg.ExternalFragments[0].Name != "SharedWeather" {
		t.Fatalf("external fragments: got %v", cfg.ExternalFragments)
	}
}

func TestParseConfigUnknownKeySuggestion(t *testing.T) {
	raw := []byte(`
schema: schema.graphqls
documents: [queries/*.graphql]
output: hooks.tsx
useExternalDocuments: true
`)
	_, err := ParseConfig("codegen.yaml", raw)
	var cfgErr ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if !strings.Contains(cfgErr.Error(), `unknown option "useExternalDocuments"`) {
		t.Fatalf("unexpected error message %q", cfgErr.Error())
	}
	if !strings.Contains(cfgErr.Hint(), `"useExternalDocument"`) {
		t.Fatalf("expected closest-match suggestion, got %q", cfgErr.Hint())
	}
}

func TestParseConfigMissingFields(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "missing schema", raw: "documents: [a.graphql]\noutput: out.tsx\n", want: "schema is required"},
		{name: "missing documents", raw: "schema: s.graphqls\noutput: out.tsx\n", want: "documents is required"},
		{name: "missing output", raw: "schema: s.graphqls\ndocuments: [a.graphql]\n", want: "output is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig("codegen.yaml", []byte(tc.raw))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestDocumentsModuleDefault(t *testing.T) {
	if got := (Config{}).documentsModule(); got != "./documents" {
		t.Fatalf("expected default documents module, got %q", got)
	}
}
