package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"phonediff/internal/config"
	"phonediff/internal/kana"
	"phonediff/internal/phoneme"
)

// VoicevoxOptions configures a VOICEVOX engine client.
type VoicevoxOptions struct {
	ID                string
	Endpoint          string
	Speaker           int
	RequestsPerSecond float64
	Timeout           time.Duration
	// Transport overrides the base HTTP transport; it is still wrapped for
	// tracing.
	Transport http.RoundTripper
}

// VoicevoxPipeline reads phonemes from the engine's audio query.
type VoicevoxPipeline struct {
	id       string
	endpoint *url.URL
	speaker  int
	client   *http.Client
	limiter  *rate.Limiter
}

type audioQuery struct {
	AccentPhrases []accentPhrase `json:"accent_phrases"`
}

type accentPhrase struct {
	Moras     []mora `json:"moras"`
	PauseMora *mora  `json:"pause_mora"`
}

type mora struct {
	Text      string  `json:"text"`
	Consonant *string `json:"consonant"`
	Vowel     string  `json:"vowel"`
}

// NewVoicevox builds the client and probes GET /version.
func NewVoicevox(ctx context.Context, opts VoicevoxOptions) (*VoicevoxPipeline, error) {
	endpoint, err := url.Parse(strings.TrimRight(opts.Endpoint, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	limit := rate.Inf
	burst := 1
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
		burst = max(1, int(opts.RequestsPerSecond))
	}
	p := &VoicevoxPipeline{
		id:       opts.ID,
		endpoint: endpoint,
		speaker:  opts.Speaker,
		client:   &http.Client{Transport: otelhttp.NewTransport(base), Timeout: opts.Timeout},
		limiter:  rate.NewLimiter(limit, burst),
	}
	version, err := p.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("probe engine: %w", err)
	}
	if version == "" {
		return nil, fmt.Errorf("probe engine: empty version")
	}
	return p, nil
}

func (p *VoicevoxPipeline) ID() string   { return p.id }
func (p *VoicevoxPipeline) Kind() string { return config.KindVoicevox }

// Close releases idle connections.
func (p *VoicevoxPipeline) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// Version returns the engine version string.
func (p *VoicevoxPipeline) Version(ctx context.Context) (string, error) {
	body, err := p.do(ctx, http.MethodGet, "/version", nil)
	if err != nil {
		return "", err
	}
	var version string
	if err := json.Unmarshal(body, &version); err != nil {
		return strings.TrimSpace(string(body)), nil
	}
	return version, nil
}

// Phonemize requests an audio query and flattens its moras.
func (p *VoicevoxPipeline) Phonemize(ctx context.Context, sentence string) (phoneme.Sequence, error) {
	query := url.Values{}
	query.Set("text", sentence)
	query.Set("speaker", strconv.Itoa(p.speaker))
	body, err := p.do(ctx, http.MethodPost, "/audio_query", query)
	if err != nil {
		return nil, err
	}
	var parsed audioQuery
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode audio query: %w", err)
	}
	return parsed.phonemes(), nil
}

func (p *VoicevoxPipeline) do(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit %s: %w", p.id, err)
	}
	target := p.endpoint.JoinPath(path)
	target.RawQuery = query.Encode()
	req, err := http.NewRequestWithContext(ctx, method, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func (q audioQuery) phonemes() phoneme.Sequence {
	tokens := phoneme.Sequence{kana.Silence}
	for _, phrase := range q.AccentPhrases {
		for _, m := range phrase.Moras {
			if m.Consonant != nil && *m.Consonant != "" {
				tokens = append(tokens, *m.Consonant)
			}
			tokens = append(tokens, m.Vowel)
		}
		if phrase.PauseMora != nil {
			tokens = append(tokens, kana.Pause)
		}
	}
	if tokens[len(tokens)-1] == kana.Pause {
		tokens[len(tokens)-1] = kana.Silence
	} else {
		tokens = append(tokens, kana.Silence)
	}
	return tokens
}
