package config

import "testing"

// TestNormalizeDefaults verifies omitted settings receive defaults.
func TestNormalizeDefaults(t *testing.T) {
	cfg := Config{
		Version: 1,
		Pipelines: PipelinesConfig{
			A: PipelineConfig{Kind: KindCommand, Command: []string{"x"}},
			B: PipelineConfig{Kind: KindVoicevox},
		},
	}

	Normalize(&cfg)

	if cfg.Segmentation.Delimiters != "。「」" || cfg.Segmentation.Whitespace != "remove" {
		t.Fatalf("unexpected segmentation defaults %+v", cfg.Segmentation)
	}
	if cfg.OnReadError != OnReadErrorAbort {
		t.Fatalf("expected abort policy, got %q", cfg.OnReadError)
	}
	if cfg.Output.Compression != CompressionNone || cfg.Output.Color != ColorAuto || cfg.Output.UI != UIAuto {
		t.Fatalf("unexpected output defaults %+v", cfg.Output)
	}
	if cfg.Output.ResultsDir != "" {
		t.Fatalf("expected results dir to stay empty, got %q", cfg.Output.ResultsDir)
	}
	if cfg.Pipelines.A.ID != "a" || cfg.Pipelines.B.ID != "b" {
		t.Fatalf("unexpected pipeline ids %q/%q", cfg.Pipelines.A.ID, cfg.Pipelines.B.ID)
	}
	if cfg.Pipelines.A.Format != FormatTokens || cfg.Pipelines.A.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Fatalf("unexpected command defaults %+v", cfg.Pipelines.A)
	}
	if cfg.Pipelines.B.Endpoint != DefaultEndpoint || cfg.Pipelines.B.RequestsPerSecond != DefaultRequestsPerSec {
		t.Fatalf("unexpected voicevox defaults %+v", cfg.Pipelines.B)
	}
}
