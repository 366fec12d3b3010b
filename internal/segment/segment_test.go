package segment

import (
	"slices"
	"testing"
)

func TestSplitJapanese(t *testing.T) {
	splitter, err := NewSplitter(DefaultDelimiters, "")
	if err != nil {
		t.Fatalf("new splitter: %v", err)
	}
	text := "吾輩は猫である。名前は まだ無い。\n\n「どこで 生れたか」とんと見当がつかぬ。\n"
	got := splitter.Split(text)
	want := []string{"吾輩は猫である", "名前はまだ無い", "どこで生れたか", "とんと見当がつかぬ"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSplitCollapse(t *testing.T) {
	splitter, err := NewSplitter(".!?", WhitespaceCollapse)
	if err != nil {
		t.Fatalf("new splitter: %v", err)
	}
	got := splitter.Split("The cat  sat.\nIt was\tfine!  ")
	want := []string{"The cat sat", "It was fine"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSplitDiscardsEmpty(t *testing.T) {
	splitter, err := NewSplitter(DefaultDelimiters, WhitespaceRemove)
	if err != nil {
		t.Fatalf("new splitter: %v", err)
	}
	if got := splitter.Split("。。 \n「」"); len(got) != 0 {
		t.Fatalf("expected no sentences, got %q", got)
	}
}

func TestSplitQuotesRegexMeta(t *testing.T) {
	splitter, err := NewSplitter("].^", WhitespaceRemove)
	if err != nil {
		t.Fatalf("new splitter: %v", err)
	}
	got := splitter.Split("a]b.c^d")
	if !slices.Equal(got, []string{"a", "b", "c", "d"}) {
		t.Fatalf("unexpected split: %q", got)
	}
}

func TestNewSplitterErrors(t *testing.T) {
	if _, err := NewSplitter("", WhitespaceRemove); err == nil {
		t.Fatalf("expected error for empty delimiters")
	}
	if _, err := NewSplitter("。", "squeeze"); err == nil {
		t.Fatalf("expected error for unknown whitespace policy")
	}
}
