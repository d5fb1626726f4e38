package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/prompt/config"
	"github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	SetConfig(config.Default())

	logger := NewLogger("test-component")
	if logger == nil {
		t.Fatal("Expected logger to be created")
	}

	if logger.Data["component"] != "test-component" {
		t.Errorf("Expected component to be 'test-component', got %v", logger.Data["component"])
	}

	if NewLogger("test-component") != logger {
		t.Error("Expected the same logger for the same component")
	}
}

func TestDefaultLevelIsQuiet(t *testing.T) {
	t.Setenv(LevelEnv, "")

	logger := build("quiet", Config{}, os.Stderr)
	if logger.GetLevel() != logrus.WarnLevel {
		t.Errorf("Expected default level warn, got %v", logger.GetLevel())
	}
}

func TestLevelPrecedence(t *testing.T) {
	t.Setenv(LevelEnv, "debug")

	logger := build("env", Config{Level: "error", Format: FormatConfig{StructuredToStderr: "never"}}, os.Stderr)
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected env level to win, got %v", logger.GetLevel())
	}

	t.Setenv(LevelEnv, "")
	logger = build("cfg", Config{Level: "error"}, os.Stderr)
	if logger.GetLevel() != logrus.ErrorLevel {
		t.Errorf("Expected config level error, got %v", logger.GetLevel())
	}
}

func TestFileSink(t *testing.T) {
	t.Setenv(LevelEnv, "")
	path := filepath.Join(t.TempDir(), "nested", "prompt.log")

	logger := build("file", Config{
		Level:  "info",
		File:   FileSinkConfig{Enabled: true, Path: path},
		Format: FormatConfig{StructuredToStderr: "never", DisableTimestamp: true},
	}, os.Stderr)
	logger.WithField("component", "file").Info("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected log file to be written: %v", err)
	}
	if !strings.Contains(string(data), "[INFO] [file] hello") {
		t.Errorf("Unexpected log file content: %q", data)
	}
}

func TestLogFilePathOnlyWhenDebugging(t *testing.T) {
	t.Setenv("GROVE_HOME", t.TempDir())

	if got := logFilePath("c", Config{}, logrus.WarnLevel); got != "" {
		t.Errorf("Expected no default file at warn level, got %q", got)
	}
	if got := logFilePath("c", Config{}, logrus.DebugLevel); !strings.HasSuffix(filepath.Dir(got), filepath.Join("grove", "logs")) {
		t.Errorf("Expected a file under the log dir, got %q", got)
	}
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    string
		notWant []string
	}{
		{
			name:   "component and sorted fields",
			config: FormatConfig{DisableTimestamp: true},
			entry: &logrus.Entry{
				Level:   logrus.DebugLevel,
				Message: "version probe failed",
				Data: logrus.Fields{
					"component": "modules",
					"module":    "perl",
					"error":     "exit status 1",
				},
			},
			want: "[DEBUG] [modules] version probe failed error=exit status 1 module=perl\n",
		},
		{
			name: "simple format",
			config: FormatConfig{
				DisableTimestamp: true,
				DisableComponent: true,
			},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "config invalid",
				Data:    logrus.Fields{"component": "cli"},
			},
			want:    "[WARN] config invalid\n",
			notWant: []string{"[cli]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &TextFormatter{Config: tt.config}
			out, err := f.Format(tt.entry)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("Format() = %q, want %q", out, tt.want)
			}
			for _, nw := range tt.notWant {
				if bytes.Contains(out, []byte(nw)) {
					t.Errorf("Format() output should not contain %q", nw)
				}
			}
		})
	}
}
