package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

func validatePipeline(prefix string, p PipelineConfig, baseDir string, add issueAdder) {
	if strings.TrimSpace(p.ID) == "" {
		add(prefix+".id", "is required")
	}
	switch p.Kind {
	case KindKana:
		if p.Dictionary != "" {
			validateFile(add, prefix+".dictionary", p.Dictionary, baseDir)
		}
	case KindCommand:
		if len(p.Command) == 0 || strings.TrimSpace(p.Command[0]) == "" {
			add(prefix+".command", "must include a program")
		}
		validateChoice(add, prefix+".format", p.Format, FormatTokens, FormatLabels)
		if p.TimeoutSeconds < 0 {
			add(prefix+".timeout_seconds", "must be >= 0")
		}
	case KindVoicevox:
		parsed, err := url.Parse(p.Endpoint)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			add(prefix+".endpoint", fmt.Sprintf("invalid URL %q", p.Endpoint))
		}
		if p.Speaker < 0 {
			add(prefix+".speaker", "must be >= 0")
		}
		if p.RequestsPerSecond < 0 {
			add(prefix+".requests_per_second", "must be >= 0")
		}
		if p.TimeoutSeconds < 0 {
			add(prefix+".timeout_seconds", "must be >= 0")
		}
	case KindStatic:
		if strings.TrimSpace(p.Fixture) == "" {
			add(prefix+".fixture", "is required")
		} else {
			validateFile(add, prefix+".fixture", p.Fixture, baseDir)
		}
	case "":
		add(prefix+".kind", "is required")
	default:
		add(prefix+".kind", fmt.Sprintf("unsupported kind %q", p.Kind))
	}
}

// validateFile flags paths that do not name a regular file.
func validateFile(add issueAdder, field, path, baseDir string) {
	resolved := resolvePath(baseDir, path)
	info, err := os.Stat(resolved)
	if err != nil {
		add(field, fmt.Sprintf("file not found at %q", path))
		return
	}
	if info.IsDir() {
		add(field, fmt.Sprintf("path %q is a directory", path))
	}
}
