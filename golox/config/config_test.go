package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"github.com/loxlang/lox/golox/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
prompt: "lox> "
history_file: ""
colour: never
log_level: debug
`)
	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %s", err)
	}
	want := &config.Config{
		Prompt:      "lox> ",
		HistoryFile: "",
		Colour:      config.ColourNever,
		ShowSource:  true,
		LogLevel:    "debug",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if got.Level() != logrus.DebugLevel {
		t.Errorf("Level() = %s, want %s", got.Level(), logrus.DebugLevel)
	}
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	got, err := config.Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %s", err)
	}
	if diff := cmp.Diff(config.Default(), got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	got, err := config.Load("")
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %s", err)
	}
	if diff := cmp.Diff(config.Default(), got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		wantErr  string
	}{
		{
			name:     "unknown field",
			contents: "colour: auto\nfont: mono\n",
			wantErr:  "field font not found",
		},
		{
			name:     "invalid colour",
			contents: "colour: sometimes\n",
			wantErr:  `colour must be one of "auto", "always" or "never", got "sometimes"`,
		},
		{
			name:     "invalid log level",
			contents: "log_level: loud\n",
			wantErr:  "log_level: not a valid logrus Level",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, test.contents))
			if err == nil {
				t.Fatal("Load() returned no error")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("Load() error = %q, want it to contain %q", err, test.wantErr)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("Load() returned no error")
	}
}
