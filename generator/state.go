package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// generatorState remembers the last successful run so unchanged inputs skip
// regeneration.
type generatorState struct {
	InputHash   string `json:"input_hash"`
	RunID       string `json:"run_id"`
	GeneratedAt string `json:"generated_at"`
}

func statePath(root string) string {
	return filepath.Join(root, ".suspensegen", "cache", "state.json")
}

func loadGeneratorState(root string) (generatorState, error) {
	raw, err := os.ReadFile(statePath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return generatorState{}, nil
		}
		return generatorState{}, err
	}
	var state generatorState
	if err := json.Unmarshal(raw, &state); err != nil {
		return generatorState{}, err
	}
	return state, nil
}

func saveGeneratorState(root string, state generatorState) error {
	path := statePath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// inputHash digests the configuration plus every input file the generation
// depends on: the schema and all matched documents.
func inputHash(cfg Config, schemaPath string, documentPaths []string) (string, error) {
	digest := sha256.New()

	cfgPayload, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	digest.Write(cfgPayload)

	paths := append([]string{schemaPath}, documentPaths...)
	sort.Strings(paths)
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("hash input %s: %w", path, err)
		}
		digest.Write([]byte(path))
		digest.Write([]byte{0})
		digest.Write(raw)
		digest.Write([]byte{0})
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}

// matchDocuments expands the configured globs into concrete file paths.
func matchDocuments(globs []string) ([]string, error) {
	paths := make([]string, 0, len(globs))
	for _, pattern := range globs {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad document glob %q: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}
