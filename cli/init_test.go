package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdir changes into dir for the duration of the test, restoring the
// previous working directory on cleanup. (t.Chdir requires Go 1.24.)
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}

func TestInitScaffoldsWorkspace(t *testing.T) {
	chdir(t, t.TempDir())
	out, err := runCommand(t, "init")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "Initialized suspensegen workspace.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	for _, path := range []string{"codegen.yaml", "schema.graphqls", "queries/weather.graphql"} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
	}
}

func TestInitIsIdempotent(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := runCommand(t, "init"); err != nil {
		t.Fatalf("first init: %v", err)
	}
	marker := []byte("# customized\n")
	if err := os.WriteFile("codegen.yaml", marker, 0o644); err != nil {
		t.Fatalf("customize config: %v", err)
	}
	out, err := runCommand(t, "init")
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	if !strings.Contains(out, "already initialized") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	raw, err := os.ReadFile("codegen.yaml")
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if string(raw) != string(marker) {
		t.Fatalf("init must not clobber existing files without --force")
	}
}

func TestInitThenGenProducesArtifact(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := runCommand(t, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	out, err := runCommand(t, "gen")
	if err != nil {
		t.Fatalf("gen: %v", err)
	}
	if !strings.Contains(out, "Generation complete.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	raw, err := os.ReadFile(filepath.Join("src", "generated", "hooks.tsx"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !strings.Contains(string(raw), "useGetWeatherSuspenseQuery") {
		t.Fatalf("expected generated hook in artifact")
	}
}
