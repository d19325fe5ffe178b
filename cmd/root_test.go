package cmd

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcus/dialogs/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    slog.Level
		wantErr bool
	}{
		{name: "empty defaults to info", in: "", want: slog.LevelInfo},
		{name: "debug", in: "debug", want: slog.LevelDebug},
		{name: "upper case", in: "WARN", want: slog.LevelWarn},
		{name: "error", in: "error", want: slog.LevelError},
		{name: "unknown", in: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	slog.New(newHandler(&buf, "json", slog.LevelInfo)).Info("opened", "id", 1)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("json handler wrote %q: %v", buf.String(), err)
	}
	if rec["msg"] != "opened" {
		t.Errorf("msg = %v, want opened", rec["msg"])
	}

	buf.Reset()
	slog.New(newHandler(&buf, "text", slog.LevelWarn)).Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info logged below warn level: %q", buf.String())
	}
}

func runRoot(t *testing.T, args ...string) string {
	t.Helper()
	defer slog.SetDefault(slog.Default())

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		configPath = ""
		logFile = ""
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("dialogs %v: %v (stderr %q)", args, err, errOut.String())
	}
	return out.String()
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("dialog:\n  close_delay: 250ms\n  props:\n    width: 60\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("setup: write failed: %v", err)
	}

	out := runRoot(t, "config", "--config", path)

	for _, want := range []string{
		"dialog.close_delay: 250ms",
		"dialog.props.width: 60",
		"log.level: info",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dialogs", "config.yaml")

	out := runRoot(t, "config", "init", "--config", path)
	if !strings.Contains(out, path) {
		t.Errorf("output = %q, want path", out)
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if loaded.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text", loaded.Log.Format)
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("") })

	out := runRoot(t, "version", "--config", filepath.Join(t.TempDir(), "none.yaml"))
	if strings.TrimSpace(out) != "dialogs 1.2.3" {
		t.Errorf("version output = %q", out)
	}
}

func TestLogFileIsClosedAfterRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dialogs.log")

	runRoot(t, "config", "--config", filepath.Join(dir, "none.yaml"), "--log-file", path)

	if logOut != nil {
		t.Fatal("log file still open after the command finished")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
	if err := closeLog(os.Stderr); err != nil {
		t.Errorf("second closeLog() = %v, want nil", err)
	}
}
