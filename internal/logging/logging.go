package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Logger is shared by every package. It discards output until Initialize enables it.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// DefaultMaxLogFiles is the rotation limit when none is configured
const DefaultMaxLogFiles = 100

// Options controls where and whether debug logs are written
type Options struct {
	Debug       bool
	DebugFile   string
	MaxLogFiles int
	// Quiet suppresses the "logs at" banner on stdout (SSH sessions, CLI subcommands)
	Quiet bool
}

// Initialize configures Logger. Environment variables LUMINA_DEBUG, LUMINA_DEBUG_FILE and
// LUMINA_MAX_LOG_FILES fill in options that were left at their zero/default value.
func Initialize(opts Options) (string, error) {
	opts = applyEnv(opts)

	if !opts.Debug && opts.DebugFile == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return "", nil
	}

	logFilePath := opts.DebugFile
	if logFilePath == "" {
		logDir, err := LogDir()
		if err != nil {
			return "", fmt.Errorf("failed to get log directory: %w", err)
		}
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create log directory: %w", err)
		}
		if opts.MaxLogFiles > 0 {
			if err := rotateLogs(logDir, opts.MaxLogFiles); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
			}
		}
		logFilePath = filepath.Join(logDir, uuid.NewString()+".log")
	} else if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}

	Logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Logger.Info("Debug logging initialized", "log_file", logFilePath, "pid", os.Getpid())

	if !opts.Quiet {
		fmt.Printf("Debug mode enabled. Logs: %s\n", logFilePath)
	}

	return logFilePath, nil
}

func applyEnv(opts Options) Options {
	if os.Getenv("LUMINA_DEBUG") == "1" {
		opts.Debug = true
	}
	if v := os.Getenv("LUMINA_DEBUG_FILE"); v != "" && opts.DebugFile == "" {
		opts.DebugFile = v
	}
	if v := os.Getenv("LUMINA_MAX_LOG_FILES"); v != "" && (opts.MaxLogFiles == 0 || opts.MaxLogFiles == DefaultMaxLogFiles) {
		if parsed, err := strconv.Atoi(v); err == nil {
			opts.MaxLogFiles = parsed
		}
	}
	return opts
}

// rotateLogs deletes the oldest .log files so that one more fits under maxLogFiles
func rotateLogs(logDir string, maxLogFiles int) error {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	type logFile struct {
		modTime time.Time
		path    string
	}
	var files []logFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{modTime: info.ModTime(), path: filepath.Join(logDir, entry.Name())})
	}

	if len(files) < maxLogFiles {
		return nil
	}

	slices.SortFunc(files, func(a, b logFile) int {
		return a.modTime.Compare(b.modTime)
	})

	for _, f := range files[:len(files)-maxLogFiles+1] {
		if err := os.Remove(f.path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to delete old log file %s: %v\n", f.path, err)
		}
	}
	return nil
}

// LogDir returns the OS-specific directory for rotated log files
func LogDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", "lumina"), nil
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "lumina", "logs"), nil
	default:
		stateHome := os.Getenv("XDG_STATE_HOME")
		if stateHome == "" {
			stateHome = filepath.Join(homeDir, ".local", "state")
		}
		return filepath.Join(stateHome, "lumina"), nil
	}
}
