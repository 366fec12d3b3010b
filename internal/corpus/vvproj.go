// Package corpus prepares input text files: it extracts sentences from
// VOICEVOX projects and cleans Aozora Bunko downloads.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrSameDestination is returned when a derived output path would
// overwrite its source.
var ErrSameDestination = errors.New("corpus: destination file is the same as source file")

// vvproj is the subset of a VOICEVOX project file that holds the script.
type vvproj struct {
	Talk struct {
		AudioKeys  []string             `json:"audioKeys"`
		AudioItems map[string]audioItem `json:"audioItems"`
	} `json:"talk"`
}

type audioItem struct {
	Text *string `json:"text"`
}

// ExtractText reads a VOICEVOX project and returns one line per audio item
// in playback order, each terminated by "。". Lines are joined with "\n"
// without a trailing newline.
func ExtractText(r io.Reader) (string, error) {
	var project vvproj
	if err := json.NewDecoder(r).Decode(&project); err != nil {
		return "", fmt.Errorf("decode vvproj: %w", err)
	}
	lines := make([]string, 0, len(project.Talk.AudioKeys))
	for _, key := range project.Talk.AudioKeys {
		item, ok := project.Talk.AudioItems[key]
		if !ok || item.Text == nil {
			return "", fmt.Errorf("vvproj: audio item %q has no text", key)
		}
		lines = append(lines, *item.Text+"。")
	}
	return strings.Join(lines, "\n"), nil
}

// ExtractDestination derives the text path for a project path.
func ExtractDestination(path string) (string, error) {
	dst := strings.ReplaceAll(path, ".vvproj", ".txt")
	if dst == path {
		return "", fmt.Errorf("%w: %s", ErrSameDestination, path)
	}
	return dst, nil
}

// ExtractFile writes the script of the project at src next to it and
// returns the destination path.
func ExtractFile(src string) (string, error) {
	dst, err := ExtractDestination(src)
	if err != nil {
		return "", err
	}
	file, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer file.Close()
	text, err := ExtractText(file)
	if err != nil {
		return "", fmt.Errorf("%s: %w", src, err)
	}
	if err := os.WriteFile(dst, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	return dst, nil
}
