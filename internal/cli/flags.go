package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"phonediff/internal/config"
	"phonediff/internal/observability"
)

// newFlagSet creates the flag set for a command.
func newFlagSet(cmd *Command, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parseFlags parses args and reports the exit code to return when parsing
// did not succeed.
func parseFlags(cmd *Command, fs *flag.FlagSet, args []string, stdout, stderr io.Writer) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}

// resolveLogLevel picks the level from the flag, then the environment.
func resolveLogLevel(flagValue string) (slog.Level, error) {
	value := flagValue
	if strings.TrimSpace(value) == "" {
		value = os.Getenv(observability.LogLevelEnv)
	}
	level, ok := observability.ParseLevel(value)
	if !ok {
		return level, fmt.Errorf("invalid log level %q (expected debug|info|warn|error)", value)
	}
	return level, nil
}

// resolveConfigPath normalizes a config path or finds it from CWD.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// loadConfig resolves and loads the config file.
func loadConfig(configPath string) (config.Config, error) {
	resolved, err := resolveConfigPath(configPath)
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(resolved)
}

// resolveResultsDir picks the results directory from the flag or the
// config. Without either it returns "" so run refs must be paths.
func resolveResultsDir(flagValue, configPath string) (config.Config, string, error) {
	if strings.TrimSpace(flagValue) != "" {
		abs, err := filepath.Abs(flagValue)
		return config.Config{}, abs, err
	}
	if strings.TrimSpace(configPath) == "" {
		if _, err := config.FindConfigPath(""); err != nil {
			return config.Config{}, "", nil
		}
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, cfg.Output.ResultsDir, nil
}

// checkChoice validates an optional flag value against allowed choices.
func checkChoice(name, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, choice := range allowed {
		if value == choice {
			return nil
		}
	}
	return fmt.Errorf("invalid --%s %q (expected %s)", name, value, strings.Join(allowed, "|"))
}
