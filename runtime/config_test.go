package runtime

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultConfigName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Prompt != "> " || cfg.ContinuationPrompt != "... " {
		t.Fatalf("unexpected prompts %q %q", cfg.Prompt, cfg.ContinuationPrompt)
	}
	if cfg.HistoryFile != filepath.Join(home, ".glox_history") {
		t.Fatalf("unexpected history file %q", cfg.HistoryFile)
	}
	if cfg.MultiLine {
		t.Fatalf("multi-line mode should be off by default")
	}
}

func TestLoadConfigFromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, "prompt: \"lox> \"\nbanner: \"\"\nmulti_line: true\n")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Prompt != "lox> " {
		t.Fatalf("expected prompt override, got %q", cfg.Prompt)
	}
	if cfg.Banner != "" {
		t.Fatalf("expected banner to be cleared, got %q", cfg.Banner)
	}
	if !cfg.MultiLine {
		t.Fatalf("expected multi-line mode")
	}
	if cfg.ContinuationPrompt != "... " {
		t.Fatalf("unset keys keep defaults, got %q", cfg.ContinuationPrompt)
	}
}

func TestLoadConfigExplicitPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, t.TempDir(), "continuation_prompt: \"| \"\nhistory_file: /tmp/lox_hist\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ContinuationPrompt != "| " || cfg.HistoryFile != "/tmp/lox_hist" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, t.TempDir(), "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Prompt != "> " {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected missing explicit file to fail, got %v", err)
	}

	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown field", "promt: \"> \"\n", "field promt not found"},
		{"wrong type", "multi_line: sometimes\n", "config: parse"},
		{"empty prompt", "prompt: \"\"\n", "prompt must not be empty"},
		{"empty continuation", "continuation_prompt: \"\"\n", "continuation_prompt must not be empty"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tc.content)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
