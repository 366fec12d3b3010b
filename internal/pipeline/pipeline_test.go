package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonediff/internal/config"
	"phonediff/internal/kana"
	"phonediff/internal/phoneme"
)

func writeFixture(t *testing.T, name, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
	return path
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New(context.Background(), config.PipelineConfig{ID: "x", Kind: "mecab"})
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestNew_StaticPipeline(t *testing.T) {
	fixture := writeFixture(t, "static.yml", `sentences:
  猫: [sil, n, e, k, o, sil]
`)
	p, err := New(context.Background(), config.PipelineConfig{ID: "fixture", Kind: config.KindStatic, Fixture: fixture})
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, "fixture", p.ID())
	assert.Equal(t, config.KindStatic, p.Kind())

	got, err := p.Phonemize(context.Background(), "猫")
	require.NoError(t, err)
	assert.Equal(t, phoneme.Sequence{"sil", "n", "e", "k", "o", "sil"}, got)

	_, err = p.Phonemize(context.Background(), "犬")
	require.ErrorIs(t, err, ErrNotInFixture)
}

func TestStaticPipeline_ReturnsCopies(t *testing.T) {
	p := NewStatic("s", map[string]phoneme.Sequence{"a": {"a"}})
	first, err := p.Phonemize(context.Background(), "a")
	require.NoError(t, err)
	first[0] = "changed"

	second, err := p.Phonemize(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, phoneme.Sequence{"a"}, second)
}

func TestNew_KanaPipeline(t *testing.T) {
	dict := writeFixture(t, "dict.tsv", "猫\tネコ\n")
	p, err := New(context.Background(), config.PipelineConfig{ID: "kana", Kind: config.KindKana, Dictionary: dict})
	require.NoError(t, err)

	got, err := p.Phonemize(context.Background(), "猫だ")
	require.NoError(t, err)
	assert.Equal(t, phoneme.Sequence{"sil", "n", "e", "k", "o", "d", "a", "sil"}, got)

	_, err = p.Phonemize(context.Background(), "犬だ")
	require.ErrorIs(t, err, kana.ErrNoReading)
}

func TestNew_KanaMissingDictionaryFailsInit(t *testing.T) {
	_, err := New(context.Background(), config.PipelineConfig{
		ID:         "kana",
		Kind:       config.KindKana,
		Dictionary: filepath.Join(t.TempDir(), "missing.tsv"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init pipeline kana")
}

func TestKanaPipeline_CancelledContext(t *testing.T) {
	p, err := NewKana("kana", "", false)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Phonemize(ctx, "ア")
	require.ErrorIs(t, err, context.Canceled)
}
