package commands

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScaffoldDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	created, err := scaffoldDataDir(dir)
	if err != nil {
		t.Fatalf("scaffoldDataDir: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("created = %d files, want 3", len(created))
	}

	for _, name := range []string{"constraints.yaml", "decisions.yaml", "components.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not created: %v", name, err)
		}
	}
	info, err := os.Stat(filepath.Join(dir, "teams"))
	if err != nil || !info.IsDir() {
		t.Error("teams directory not created")
	}
}

func TestScaffoldDataDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	if _, err := scaffoldDataDir(dir); err != nil {
		t.Fatalf("first scaffold: %v", err)
	}

	// Seed a constraint so we can verify reruns leave files alone.
	path := filepath.Join(dir, "constraints.yaml")
	if err := os.WriteFile(path, []byte(testConstraintsYAML), 0644); err != nil {
		t.Fatalf("write constraints: %v", err)
	}

	created, err := scaffoldDataDir(dir)
	if err != nil {
		t.Fatalf("second scaffold: %v", err)
	}
	if len(created) != 0 {
		t.Errorf("created = %v, want none on rerun", created)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read constraints: %v", err)
	}
	if string(content) != testConstraintsYAML {
		t.Error("existing constraints file was overwritten")
	}
}
