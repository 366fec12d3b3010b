package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
	// ExitInterrupted follows the shell convention for SIGINT.
	ExitInterrupted = 130
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  phonediff <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"phonediff <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .phonediff/config.yml", []string{
		"phonediff init [--config <path>]",
	}, runInit),
	command("validate", "Validate the config file", []string{
		"phonediff validate [--config <path>]",
	}, runValidate),
	command("run", "Compare two pipelines over text files", []string{
		"phonediff run [--config <path>] [--color auto|always|never] [--ui auto|live|plain] <file>...",
		"phonediff run [--on-read-error abort|skip] [--results-dir <dir>] [--no-results] <file>...",
	}, runRun),
	command("diff", "Compare the verdicts of two runs", []string{
		"phonediff diff [--results-dir <dir>] [--fail-on-regression] [--json] <base-run> <head-run>",
	}, runDiff),
	command("report", "Render an HTML report for a run", []string{
		"phonediff report [--results-dir <dir>] [--output <path>] [run]",
	}, runReport),
	command("serve", "Serve run reports over HTTP", []string{
		"phonediff serve [--results-dir <dir>] [--addr <host:port>]",
	}, runServe),
	command("history", "Query the result database", []string{
		"phonediff history [--db <path>] [--limit <n>]",
		"phonediff history [--db <path>] --sentence <text>",
	}, runHistory),
	command("extract", "Extract sentences from VOICEVOX projects", []string{
		"phonediff extract [--workers <n>] <file.vvproj>...",
	}, runExtract),
	command("preprocess", "Convert Aozora Bunko .raw files to clean UTF-8", []string{
		"phonediff preprocess [--workers <n>] <file.raw>...",
	}, runPreprocess),
}
