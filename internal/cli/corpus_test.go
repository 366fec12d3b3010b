package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeTestFile(t, dir, "script.vvproj", `{"talk":{"audioKeys":["k1","k2"],"audioItems":{"k1":{"text":"こんにちは"},"k2":{"text":"さようなら"}}}}`)
	bad := writeTestFile(t, dir, "broken.vvproj", `{"talk":`)

	var out, err bytes.Buffer
	code := Run([]string{"extract", "--workers", "2", good, bad}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d with one broken file, got %d", ExitError, code)
	}
	dst := filepath.Join(dir, "script.txt")
	if !strings.Contains(out.String(), good+" -> "+dst) {
		t.Fatalf("expected conversion line, got %q", out.String())
	}
	if !strings.Contains(err.String(), bad) {
		t.Fatalf("expected broken file in stderr, got %q", err.String())
	}
	data, readErr := os.ReadFile(dst)
	if readErr != nil {
		t.Fatalf("read extracted text: %v", readErr)
	}
	if string(data) != "こんにちは。\nさようなら。" {
		t.Fatalf("unexpected extracted text: %q", data)
	}
}

func TestPreprocessCommandRequiresFiles(t *testing.T) {
	var out, err bytes.Buffer
	code := Run([]string{"preprocess"}, &out, &err)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
}
