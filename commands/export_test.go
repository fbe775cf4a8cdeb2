package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportCommand_Turtle(t *testing.T) {
	dir := setupDataDir(t)

	out, err := runCommand(t, NewExportCommand(),
		"--data", dir, "--team", "platform", "--format", "turtle")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "@prefix") {
		t.Errorf("output missing turtle prefixes:\n%s", out)
	}
	if !strings.Contains(out, "intent-001") {
		t.Errorf("output missing intent entity:\n%s", out)
	}
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	dir := setupDataDir(t)

	if _, err := runCommand(t, NewExportCommand(),
		"--data", dir, "--team", "platform", "--format", "rdfxml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestExportCommand_UnknownProfile(t *testing.T) {
	dir := setupDataDir(t)

	if _, err := runCommand(t, NewExportCommand(),
		"--data", dir, "--team", "platform", "--profile", "complete"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestExportCommand_UnknownTeam(t *testing.T) {
	dir := setupDataDir(t)

	if _, err := runCommand(t, NewExportCommand(),
		"--data", dir, "--team", "ghost"); err == nil {
		t.Fatal("expected error for missing team file")
	}
}

func TestExportCommand_OutputFile(t *testing.T) {
	dir := setupDataDir(t)
	outPath := filepath.Join(t.TempDir(), "platform.ttl")

	out, err := runCommand(t, NewExportCommand(),
		"--data", dir, "--team", "platform", "-o", outPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "Wrote "+outPath) {
		t.Errorf("output missing write notice:\n%s", out)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output file: %v", err)
	}
	if !strings.Contains(string(content), "@prefix") {
		t.Error("output file missing turtle content")
	}
}
