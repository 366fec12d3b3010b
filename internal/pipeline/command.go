package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"phonediff/internal/config"
	"phonediff/internal/label"
	"phonediff/internal/phoneme"
)

// Placeholder in command arguments is replaced by the sentence. Without it
// the sentence is written to stdin.
const Placeholder = "{}"

// CommandPipeline runs an external program once per sentence.
type CommandPipeline struct {
	id      string
	argv    []string
	format  string
	timeout time.Duration
	stdin   bool
}

// NewCommand resolves the program and checks the output format.
func NewCommand(id string, argv []string, format string, timeout time.Duration) (*CommandPipeline, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("command is empty")
	}
	if format != config.FormatTokens && format != config.FormatLabels {
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	program, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", argv[0], err)
	}
	resolved := append([]string{program}, argv[1:]...)
	stdin := true
	for _, arg := range resolved[1:] {
		if strings.Contains(arg, Placeholder) {
			stdin = false
			break
		}
	}
	return &CommandPipeline{id: id, argv: resolved, format: format, timeout: timeout, stdin: stdin}, nil
}

func (p *CommandPipeline) ID() string   { return p.id }
func (p *CommandPipeline) Kind() string { return config.KindCommand }
func (p *CommandPipeline) Close() error { return nil }

// Phonemize runs the program and parses its stdout.
func (p *CommandPipeline) Phonemize(ctx context.Context, sentence string) (phoneme.Sequence, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	args := make([]string, 0, len(p.argv)-1)
	for _, arg := range p.argv[1:] {
		args = append(args, strings.ReplaceAll(arg, Placeholder, sentence))
	}
	cmd := exec.CommandContext(ctx, p.argv[0], args...)
	cmd.WaitDelay = time.Second
	if p.stdin {
		cmd.Stdin = strings.NewReader(sentence + "\n")
	}
	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", p.id, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%s failed: %s: %s", p.id, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", p.id, err)
	}
	if p.format == config.FormatLabels {
		return label.Phonemes(string(out))
	}
	return phoneme.Sequence(strings.Fields(string(out))), nil
}
