package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/grovetools/prompt/config"
	"github.com/grovetools/prompt/pkg/paths"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// LevelEnv overrides the configured log level.
const LevelEnv = "GROVE_PROMPT_LOG_LEVEL"

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	activeConfig *config.Config
)

// SetConfig makes later NewLogger calls use cfg instead of loading the default
// config file. Loggers created earlier keep their settings.
func SetConfig(cfg *config.Config) {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	activeConfig = cfg
}

// Reset drops every cached logger. Used by tests.
func Reset() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	loggers = make(map[string]*logrus.Entry)
	activeConfig = nil
}

// NewLogger creates and returns a pre-configured logger for a specific component.
// Loggers are cached per component.
//
// A prompt is redrawn constantly, so the default is quiet: level warn, no file,
// and stderr only when stderr is not a terminal.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	cfg := activeConfig
	if cfg == nil {
		loaded, err := config.LoadDefault()
		if err != nil {
			loaded = config.Default()
		}
		cfg = loaded
	}

	var logCfg Config
	if err := cfg.UnmarshalModule("logging", &logCfg); err != nil {
		logCfg = Config{}
	}

	logger := build(component, logCfg, os.Stderr)
	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

func build(component string, logCfg Config, stderr *os.File) *logrus.Logger {
	logger := logrus.New()

	levelStr := "warn"
	if env := os.Getenv(LevelEnv); env != "" {
		levelStr = env
	} else if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)

	if logCfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	switch logCfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: logCfg.Format})
	}

	var writers []io.Writer

	if path := logFilePath(component, logCfg, level); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
			if file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
				writers = append(writers, file)
			}
		}
	}

	if shouldLogToStderr(logCfg.Format.StructuredToStderr, level, stderr) {
		writers = append(writers, stderr)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	return logger
}

// logFilePath picks the file sink. An explicit path wins; otherwise a daily
// file under the state dir is used only at debug level and below.
func logFilePath(component string, logCfg Config, level logrus.Level) string {
	if logCfg.File.Enabled && logCfg.File.Path != "" {
		return expandPath(logCfg.File.Path)
	}
	if level < logrus.DebugLevel {
		return ""
	}
	dir := paths.LogDir()
	if dir == "" {
		return ""
	}
	dateStr := time.Now().Format("2006-01-02")
	return filepath.Join(dir, fmt.Sprintf("%s-%s.log", component, dateStr))
}

func shouldLogToStderr(mode string, level logrus.Level, stderr *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		// auto: a terminal is showing the prompt, keep it clean unless debugging.
		if level >= logrus.DebugLevel {
			return true
		}
		fd := stderr.Fd()
		return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
	}
}

// expandPath expands tilde in file paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
