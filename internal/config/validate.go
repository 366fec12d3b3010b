package config

import (
	"fmt"
	"slices"

	"phonediff/internal/segment"
)

// Validate checks a config for correctness and referenced files. Relative
// paths are checked against baseDir.
func Validate(cfg *Config, baseDir string) error {
	collector := &issueCollector{}
	if baseDir == "" {
		baseDir = "."
	}
	validateCore(cfg, collector.add)
	validateOutput(cfg.Output, collector.add)
	validatePipeline("pipelines.a", cfg.Pipelines.A, baseDir, collector.add)
	validatePipeline("pipelines.b", cfg.Pipelines.B, baseDir, collector.add)
	if cfg.Pipelines.A.ID != "" && cfg.Pipelines.A.ID == cfg.Pipelines.B.ID {
		collector.add("pipelines.b.id", fmt.Sprintf("duplicate id %q", cfg.Pipelines.B.ID))
	}
	return collector.result()
}

func validateCore(cfg *Config, add issueAdder) {
	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}
	if cfg.Segmentation.Delimiters == "" {
		add("segmentation.delimiters", "is required")
	}
	validateChoice(add, "segmentation.whitespace", cfg.Segmentation.Whitespace, segment.WhitespaceRemove, segment.WhitespaceCollapse)
	validateChoice(add, "on_read_error", cfg.OnReadError, OnReadErrorAbort, OnReadErrorSkip)
}

func validateOutput(output OutputConfig, add issueAdder) {
	validateChoice(add, "output.compression", output.Compression, CompressionNone, CompressionGzip, CompressionZstd)
	validateChoice(add, "output.color", output.Color, ColorAuto, ColorAlways, ColorNever)
	validateChoice(add, "output.ui", output.UI, UIAuto, UILive, UIPlain)
}

// validateChoice flags values outside an enumeration.
func validateChoice(add issueAdder, field, value string, allowed ...string) {
	if value == "" {
		add(field, "is required")
		return
	}
	if !slices.Contains(allowed, value) {
		add(field, fmt.Sprintf("unsupported value %q", value))
	}
}
