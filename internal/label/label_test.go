package label

import (
	"slices"
	"strings"
	"testing"

	"phonediff/internal/phoneme"
)

func TestCurrent(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
		ok   bool
	}{
		{"silence", "xx^xx-sil+k=o/A:xx+xx+xx/B:xx-xx_xx/C:xx_xx+xx", "sil", true},
		{"consonant", "xx^sil-k+o=N/A:-4+1+5/B:xx-xx_xx", "k", true},
		{"devoiced", "sh^I-t+a=sil/A:1+2+2", "I", true},
		{"timed", "0 1000000 sil^k-o+N=n/A:-3+2+4", "o", true},
		{"undefined", "xx^xx-xx+xx=xx/A:xx", "", false},
		{"no_context", "a^b-cl+d=e", "cl", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Current(tt.line)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want || ok != tt.ok {
				t.Fatalf("expected (%q, %v), got (%q, %v)", tt.want, tt.ok, got, ok)
			}
		})
	}
}

func TestCurrentErrors(t *testing.T) {
	for _, line := range []string{"   ", "sil", "a^b-c", "a-b+c", "a^b-+c"} {
		if _, _, err := Current(line); err == nil {
			t.Fatalf("expected error for %q", line)
		}
	}
}

func TestPhonemes(t *testing.T) {
	labels := strings.Join([]string{
		"xx^xx-sil+k=o/A:xx+xx+xx",
		"xx^sil-k+o=N/A:-4+1+5",
		"",
		"sil^k-o+N=n/A:-4+1+5",
		"k^o-N+n=i/A:-3+2+4",
		"o^N-pau+n=i/A:xx+xx+xx",
		"N^pau-sil+xx=xx/A:xx+xx+xx",
	}, "\n")
	got, err := Phonemes(labels)
	if err != nil {
		t.Fatalf("phonemes: %v", err)
	}
	want := phoneme.Sequence{"sil", "k", "o", "N", "pau", "sil"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPhonemesReportsLine(t *testing.T) {
	_, err := Phonemes("xx^xx-sil+k=o\nbroken\n")
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line 2 error, got %v", err)
	}
}
