package generator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tyson-Skiba/codegen-apollo-suspense/observability/tracing"
)

// GenerateOptions control one generation pass.
type GenerateOptions struct {
	// ConfigPath overrides the codegen.yaml location, relative to root.
	ConfigPath string
	// Output overrides the configured artifact path.
	Output string
	// DisableChecks skips output path validation regardless of config.
	DisableChecks bool
	// DryRun resolves and generates but writes nothing.
	DryRun bool
	// Force regenerates and rewrites even when inputs are unchanged.
	Force bool
	// Tracer receives a span per generation phase. Nil means no tracing.
	Tracer tracing.Tracer
}

// RunResult summarizes one generation pass.
type RunResult struct {
	OutputPath string
	Written    bool
	Skipped    bool
	Reason     string
	Bindings   []Binding
	RunID      string
}

// artifactHeader marks the output as machine-written.
const artifactHeader = "// Code generated by suspensegen. DO NOT EDIT."

// Run executes a full generation pass against the project at root: load and
// validate config, check the output path, skip when inputs are unchanged,
// parse the schema and documents, emit the artifact, and record the run.
func Run(ctx context.Context, root string, opts GenerateOptions) (result RunResult, err error) {
	tracer := tracing.Or(opts.Tracer)
	ctx, span := tracer.Start(ctx, "generator.run", tracing.Bool("dry_run", opts.DryRun))
	defer func() { span.End(err) }()

	cfg, err := LoadConfig(ResolveConfigPath(root, opts.ConfigPath))
	if err != nil {
		return result, err
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	if opts.DisableChecks {
		cfg.DisableChecks = true
	}
	schemaPath := resolvePath(root, cfg.Schema)
	outputPath := resolvePath(root, cfg.Output)
	globs := make([]string, len(cfg.Documents))
	for i, pattern := range cfg.Documents {
		globs[i] = resolvePath(root, pattern)
	}
	result.OutputPath = outputPath

	if err = ValidateOutputPath(cfg.Output, cfg.DisableChecks); err != nil {
		return result, err
	}

	documentPaths, err := matchDocuments(globs)
	if err != nil {
		return result, err
	}
	if len(documentPaths) == 0 {
		return result, fmt.Errorf("no operation documents matched %v", cfg.Documents)
	}

	hash, err := inputHash(cfg, schemaPath, documentPaths)
	if err != nil {
		return result, err
	}
	state, err := loadGeneratorState(root)
	if err != nil {
		return result, err
	}
	if !opts.Force && !opts.DryRun && state.InputHash == hash && fileExists(outputPath) {
		result.Skipped = true
		result.Reason = "up-to-date"
		result.RunID = state.RunID
		return result, nil
	}

	set, err := parsePhase(ctx, tracer, schemaPath, documentPaths)
	if err != nil {
		return result, err
	}

	content, bindings, err := emitPhase(ctx, tracer, set, cfg)
	if err != nil {
		return result, err
	}
	result.Bindings = bindings

	if opts.DryRun {
		result.Reason = "dry-run"
		return result, nil
	}

	written, err := writeArtifact(ctx, tracer, outputPath, content, opts.Force)
	if err != nil {
		return result, err
	}
	result.Written = written
	if !written {
		result.Reason = "unchanged"
	}

	result.RunID = uuid.NewString()
	err = saveGeneratorState(root, generatorState{
		InputHash:   hash,
		RunID:       result.RunID,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})
	return result, err
}

func parsePhase(ctx context.Context, tracer tracing.Tracer, schemaPath string, documentPaths []string) (set *DocumentSet, err error) {
	_, span := tracer.Start(ctx, "generator.parse",
		tracing.String("schema", schemaPath),
		tracing.Int("documents", len(documentPaths)))
	defer func() { span.End(err) }()

	schema, err := LoadSchemaFile(schemaPath)
	if err != nil {
		return nil, err
	}
	return LoadDocumentFiles(schema, documentPaths)
}

func emitPhase(ctx context.Context, tracer tracing.Tracer, set *DocumentSet, cfg Config) (content []byte, bindings []Binding, err error) {
	_, span := tracer.Start(ctx, "generator.emit", tracing.Int("operations", len(set.Operations)))
	defer func() { span.End(err) }()

	output, bindings, err := Generate(set, cfg)
	if err != nil {
		return nil, nil, err
	}

	var b strings.Builder
	b.WriteString(artifactHeader)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(output.Prepend, "\n"))
	b.WriteString("\n\n")
	b.WriteString(output.Content)
	return []byte(b.String()), bindings, nil
}

// writeArtifact writes the output file, skipping the write when the content
// is byte-identical to what is already on disk.
func writeArtifact(ctx context.Context, tracer tracing.Tracer, path string, content []byte, force bool) (written bool, err error) {
	_, span := tracer.Start(ctx, "generator.write", tracing.String("path", path))
	defer func() { span.End(err) }()

	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if !force {
		if existing, readErr := os.ReadFile(path); readErr == nil && bytes.Equal(existing, content) {
			return false, nil
		}
	}
	if err = os.WriteFile(path, content, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
