package config

// Config is the top-level phonediff configuration.
type Config struct {
	Version      int                `yaml:"version"`
	Segmentation SegmentationConfig `yaml:"segmentation"`
	OnReadError  string             `yaml:"on_read_error"`
	Output       OutputConfig       `yaml:"output"`
	Pipelines    PipelinesConfig    `yaml:"pipelines"`
}

// SegmentationConfig controls how input text is split into sentences.
type SegmentationConfig struct {
	Delimiters string `yaml:"delimiters"`
	Whitespace string `yaml:"whitespace"`
}

// OutputConfig controls persisted results and console presentation.
type OutputConfig struct {
	ResultsDir  string `yaml:"results_dir"`
	Compression string `yaml:"compression"`
	Color       string `yaml:"color"`
	UI          string `yaml:"ui"`
	Database    string `yaml:"database"`
}

// PipelinesConfig names the two pipelines being compared.
type PipelinesConfig struct {
	A PipelineConfig `yaml:"a"`
	B PipelineConfig `yaml:"b"`
}

// PipelineConfig describes one text-to-phoneme pipeline. Fields beyond ID and
// Kind apply to specific kinds only.
type PipelineConfig struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`

	// kana
	Dictionary string `yaml:"dictionary,omitempty"`
	Devoice    bool   `yaml:"devoice,omitempty"`

	// command
	Command        []string `yaml:"command,omitempty"`
	Format         string   `yaml:"format,omitempty"`
	TimeoutSeconds int      `yaml:"timeout_seconds,omitempty"`

	// voicevox
	Endpoint          string  `yaml:"endpoint,omitempty"`
	Speaker           int     `yaml:"speaker,omitempty"`
	RequestsPerSecond float64 `yaml:"requests_per_second,omitempty"`

	// static
	Fixture string `yaml:"fixture,omitempty"`
}

// Accepted enumeration values.
const (
	OnReadErrorAbort = "abort"
	OnReadErrorSkip  = "skip"

	CompressionNone = "none"
	CompressionGzip = "gzip"
	CompressionZstd = "zstd"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	UIAuto  = "auto"
	UILive  = "live"
	UIPlain = "plain"

	KindKana     = "kana"
	KindCommand  = "command"
	KindVoicevox = "voicevox"
	KindStatic   = "static"

	FormatTokens = "tokens"
	FormatLabels = "labels"
)

// Defaults applied by Normalize.
const (
	DefaultWhitespace     = "remove"
	DefaultEndpoint       = "http://127.0.0.1:50021"
	DefaultTimeoutSeconds = 10
	DefaultRequestsPerSec = 10.0
	DefaultPipelineAID    = "a"
	DefaultPipelineBID    = "b"
)
