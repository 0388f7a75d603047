package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withWorkDir(t *testing.T, dir string) {
	t.Helper()
	old := workDir
	workDir = dir
	t.Cleanup(func() { workDir = old })
}

func TestConfigCreatesFile(t *testing.T) {
	dir := t.TempDir()
	withWorkDir(t, dir)
	t.Setenv("GCLIENT_CONFIG", "")

	configSpec = ""
	if err := configCmd.RunE(configCmd, []string{"svn://example.org/trunk/src", "http://lkgr.example.org/"}); err != nil {
		t.Fatalf("config: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".gclient"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `"name"        : "src"`) {
		t.Errorf("config should name the solution src:\n%s", data)
	}
	if !strings.Contains(string(data), `"safesync_url": "http://lkgr.example.org/"`) {
		t.Errorf("config should carry the safesync url:\n%s", data)
	}
}

func TestConfigRequiresArgument(t *testing.T) {
	withWorkDir(t, t.TempDir())

	configSpec = ""
	err := configCmd.RunE(configCmd, nil)
	if err == nil {
		t.Fatal("expected error without URL or --spec")
	}
	if err.Error() != "required argument missing; see 'gclient help config'" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfigRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	withWorkDir(t, dir)
	t.Setenv("GCLIENT_CONFIG", "")

	if err := os.WriteFile(filepath.Join(dir, ".gclient"), []byte("existing"), 0644); err != nil {
		t.Fatal(err)
	}

	configSpec = ""
	err := configCmd.RunE(configCmd, []string{"svn://example.org/trunk/src"})
	if err == nil {
		t.Fatal("expected error when file exists")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error should mention 'already exists': %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(dir, ".gclient"))
	if string(data) != "existing" {
		t.Error("existing file was modified")
	}
}

func TestConfigSpec(t *testing.T) {
	dir := t.TempDir()
	withWorkDir(t, dir)
	t.Setenv("GCLIENT_CONFIG", "")

	spec := "solutions = [{'name': 'a', 'url': 'svn://h/a'}]"
	configSpec = spec
	defer func() { configSpec = "" }()

	if err := configCmd.RunE(configCmd, nil); err != nil {
		t.Fatalf("config --spec: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, ".gclient"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != spec {
		t.Errorf("config = %q, want %q", data, spec)
	}
}
