package config

import (
	"strings"

	"phonediff/internal/segment"
)

// Normalize fills defaults for omitted settings.
func Normalize(cfg *Config) {
	if cfg.Segmentation.Delimiters == "" {
		cfg.Segmentation.Delimiters = segment.DefaultDelimiters
	}
	if cfg.Segmentation.Whitespace == "" {
		cfg.Segmentation.Whitespace = DefaultWhitespace
	}
	if cfg.OnReadError == "" {
		cfg.OnReadError = OnReadErrorAbort
	}
	if cfg.Output.Compression == "" {
		cfg.Output.Compression = CompressionNone
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = ColorAuto
	}
	if cfg.Output.UI == "" {
		cfg.Output.UI = UIAuto
	}
	normalizePipeline(&cfg.Pipelines.A, DefaultPipelineAID)
	normalizePipeline(&cfg.Pipelines.B, DefaultPipelineBID)
}

func normalizePipeline(p *PipelineConfig, defaultID string) {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		p.ID = defaultID
	}
	p.Kind = strings.TrimSpace(p.Kind)
	switch p.Kind {
	case KindCommand:
		if p.Format == "" {
			p.Format = FormatTokens
		}
		if p.TimeoutSeconds == 0 {
			p.TimeoutSeconds = DefaultTimeoutSeconds
		}
	case KindVoicevox:
		if p.Endpoint == "" {
			p.Endpoint = DefaultEndpoint
		}
		if p.RequestsPerSecond == 0 {
			p.RequestsPerSecond = DefaultRequestsPerSec
		}
		if p.TimeoutSeconds == 0 {
			p.TimeoutSeconds = DefaultTimeoutSeconds
		}
	}
}
