package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/fbxtree/cli/cmd"
	"github.com/ardnew/fbxtree/log"
	"github.com/ardnew/fbxtree/pkg"
)

// TestMain points the user directories at a scratch tree so tests never touch
// the real configuration.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", pkg.Name+"-cli-test-*")
	if err != nil {
		panic(err)
	}

	for env, sub := range map[string]string{
		"XDG_CONFIG_HOME": "config",
		"XDG_CACHE_HOME":  "cache",
		"XDG_DATA_HOME":   "data",
	} {
		os.Setenv(env, filepath.Join(dir, sub))
	}

	os.Setenv(cmd.EnvSearchPath, "")

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}

func TestLogConfig_Scan(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	var f logConfig

	f.scan([]string{
		"dump", "--log-level", "debug",
		"--no-log-pretty",
		"--log-caller=true",
		"--log-format=text",
		"--log-time-layout", "Kitchen",
		"--no-log-level", "warn",
		"--log-pretty=maybe",
		"scene.fbx",
	})

	if f.Level != "debug" || f.Format != "text" || f.Pretty || !f.Caller || f.TimeLayout != "Kitchen" {
		t.Errorf("unexpected scan result %+v", f)
	}

	if got := log.Default().Level(); got != log.LevelDebug {
		t.Errorf("expected default logger at debug, got %v", got)
	}

	if got := log.Default().Format(); got != log.FormatText {
		t.Errorf("expected default logger format text, got %v", got)
	}

	f.scan([]string{"--no-log-caller=false", "--log-level"})

	if !f.Caller || f.Level != "debug" {
		t.Errorf("unexpected rescan result %+v", f)
	}
}

func TestRun(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	exit := func(code int) { t.Fatalf("unexpected exit %d", code) }

	scene := filepath.Join(t.TempDir(), "scene.fbx")
	if err := os.WriteFile(scene, []byte("Objects: {\n\tModel: 1\n}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("version", func(t *testing.T) {
		if err := Run(context.Background(), exit, "--log-level=error", "version"); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("search path flag", func(t *testing.T) {
		err := Run(context.Background(), exit,
			"--log-level=error", "-I", filepath.Dir(scene), "find", "scene", "Objects/Model")
		if err != nil {
			t.Fatal(err)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		err := Run(context.Background(), exit, "--log-level=error", "dump", "missing")
		if !errors.Is(err, cmd.ErrSourceNotFound) {
			t.Errorf("expected ErrSourceNotFound, got %v", err)
		}
	})

	t.Run("init then load config", func(t *testing.T) {
		err := Run(context.Background(), exit,
			"--log-level=error", "-I", filepath.Dir(scene), "init", "--force")
		if err != nil {
			t.Fatal(err)
		}

		if _, err := os.Stat(configPath(baseConfig + ".yaml")); err != nil {
			t.Fatalf("expected config file: %v", err)
		}

		// The search path now comes from the configuration file.
		err = Run(context.Background(), exit, "--log-level=error", "find", "scene", "Objects/Model")
		if err != nil {
			t.Fatal(err)
		}
	})
}
