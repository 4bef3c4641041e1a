package cmd

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		setup   func(t *testing.T, path string) // setup function to prepare test
		wantErr error
	}{
		{
			name: "create_new_config",
			args: []string{"--search-path", "/assets", "init"},
		},
		{
			name: "overwrite_existing_with_force",
			args: []string{"--search-path", "/assets", "init", "--force"},
			setup: func(t *testing.T, path string) {
				writeFile(t, path, "existing content")
			},
		},
		{
			name: "fail_without_force",
			args: []string{"init"},
			setup: func(t *testing.T, path string) {
				writeFile(t, path, "existing content")
			},
			wantErr: ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			confPath := e.vars[ConfigIdentifier]

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			_, err := e.run(t, tt.args...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrWriteConfig) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}

				data, _ := os.ReadFile(confPath)
				if string(data) != "existing content" {
					t.Error("existing file was modified")
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(data, &got); err != nil {
				t.Fatalf("config is not YAML: %v\n%s", err, data)
			}

			paths, ok := got["search-path"].([]any)
			if !ok || len(paths) != 1 || paths[0] != "/assets" {
				t.Errorf("expected search-path [/assets], got %#v", got["search-path"])
			}

			if strings.Contains(string(data), "help") {
				t.Errorf("help flag should be omitted:\n%s", data)
			}
		})
	}
}
