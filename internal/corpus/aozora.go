package corpus

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// RawSuffix marks undecoded Aozora Bunko downloads.
const RawSuffix = ".raw"

// Cleanup steps, applied in order.
var aozoraRules = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	// Indentation notes swallow the rest of their line.
	{regexp.MustCompile(`(?m)［＃[０-９]+字下げ］.+$`), ""},
	{regexp.MustCompile(`｜`), ""},
	{regexp.MustCompile(`［.+?］`), ""},
	// Ruby readings.
	{regexp.MustCompile(`《.+?》`), ""},
	// Header: everything up to the last dashed separator line.
	{regexp.MustCompile(`(?s).+-\n\n`), ""},
	// Footer: bibliographic notes.
	{regexp.MustCompile(`(?s)底本：.+`), ""},
}

// DecodeShiftJIS converts Shift_JIS bytes to UTF-8.
func DecodeShiftJIS(data []byte) (string, error) {
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decode shift_jis: %w", err)
	}
	return string(out), nil
}

// CleanAozora strips line-ending, annotation, ruby, header and footer
// markup from decoded Aozora Bunko text.
func CleanAozora(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, rule := range aozoraRules {
		text = rule.pattern.ReplaceAllString(text, rule.repl)
	}
	return text
}

// PreprocessDestination derives the cleaned path by dropping ".raw".
func PreprocessDestination(path string) (string, error) {
	dst := strings.ReplaceAll(path, RawSuffix, "")
	if dst == path {
		return "", fmt.Errorf("%w: %s", ErrSameDestination, path)
	}
	return dst, nil
}

// PreprocessFile decodes and cleans the raw file at src and returns the
// destination path.
func PreprocessFile(src string) (string, error) {
	dst, err := PreprocessDestination(src)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}
	text, err := DecodeShiftJIS(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", src, err)
	}
	if err := os.WriteFile(dst, []byte(CleanAozora(text)), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	return dst, nil
}
