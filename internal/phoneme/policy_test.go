package phoneme

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want Severity
	}{
		{"identical", "k", "k", Match},
		{"case_only", "pau", "PAU", Light},
		{"devoiced_vowel", "i", "I", Light},
		{"different", "k", "s", Fatal},
		{"different_length", "sh", "s", Fatal},
		{"both_empty", "", "", Match},
		{"non_ascii_identical", "ɕ", "ɕ", Match},
		// Only ASCII letters fold; Greek sigma forms stay distinct.
		{"non_ascii_not_folded", "Σ", "σ", Fatal},
		{"kelvin_sign_not_folded", "K", "k", Fatal},
		{"digits_and_symbols", "a1", "A1", Light},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.a, tt.b); got != tt.want {
				t.Fatalf("Classify(%q, %q) = %s, want %s", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestClassifyIsSymmetric(t *testing.T) {
	tokens := []string{"", "a", "A", "i", "I", "cl", "CL", "Cl", "N", "n", "pau", "sil", "ɕ", "Σ", "σ"}
	for _, a := range tokens {
		for _, b := range tokens {
			if Classify(a, b) != Classify(b, a) {
				t.Fatalf("Classify not symmetric for %q and %q", a, b)
			}
		}
	}
}

func TestSeverityImpliesEqualityRelations(t *testing.T) {
	tokens := []string{"a", "A", "ky", "KY", "Ky", "N", "pau", "Pau", "x"}
	for _, a := range tokens {
		for _, b := range tokens {
			switch Classify(a, b) {
			case Fatal:
				if CaseInsensitivelyEqual(a, b) {
					t.Fatalf("fatal pair %q/%q is case-insensitively equal", a, b)
				}
			case Light:
				if !CaseInsensitivelyEqual(a, b) || ExactlyEqual(a, b) {
					t.Fatalf("light pair %q/%q violates equality relations", a, b)
				}
			case Match:
				if !ExactlyEqual(a, b) {
					t.Fatalf("match pair %q/%q is not exactly equal", a, b)
				}
			}
		}
	}
}

func TestSeverityText(t *testing.T) {
	for _, severity := range []Severity{Match, Light, Fatal} {
		text, err := severity.MarshalText()
		if err != nil {
			t.Fatalf("marshal %s: %v", severity, err)
		}
		var decoded Severity
		if err := decoded.UnmarshalText(text); err != nil {
			t.Fatalf("unmarshal %q: %v", text, err)
		}
		if decoded != severity {
			t.Fatalf("expected %s, got %s", severity, decoded)
		}
	}
	if _, err := Severity(9).MarshalText(); err == nil {
		t.Fatalf("expected error for invalid severity")
	}
	var s Severity
	if err := s.UnmarshalText([]byte("severe")); err == nil {
		t.Fatalf("expected error for unknown severity name")
	}
}
