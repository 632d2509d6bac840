package generator

import (
	"fmt"
	"path/filepath"
	"strings"
)

// allowedExtensions are the recognized TypeScript source extensions for the
// emitted artifact.
var allowedExtensions = []string{".ts", ".tsx"}

// OutputPathError reports an output file whose extension cannot hold the
// generated TypeScript. It is fatal to the generation pipeline.
type OutputPathError struct {
	Path      string
	Extension string
}

func (e OutputPathError) Error() string {
	ext := e.Extension
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("output file %q must end in .ts or .tsx, got %s", e.Path, ext)
}

// Suggestion returns remediation advice for CLI display.
func (e OutputPathError) Suggestion() string {
	return "Rename the output file to a .ts/.tsx path, or set disableChecks: true to skip validation."
}

// ValidateOutputPath rejects output paths whose extension is not a
// recognized TypeScript extension. disableChecks bypasses the check.
func ValidateOutputPath(path string, disableChecks bool) error {
	if disableChecks {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return OutputPathError{Path: path, Extension: ext}
}
