package phoneme

// ExactlyEqual reports whether two tokens are identical.
func ExactlyEqual(a, b string) bool {
	return a == b
}

// CaseInsensitivelyEqual reports whether two tokens are identical after
// folding ASCII letters. Non-ASCII bytes must match exactly.
func CaseInsensitivelyEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if foldASCII(a[i]) != foldASCII(b[i]) {
			return false
		}
	}
	return true
}

// Classify grades a token pair as Match, Light or Fatal.
func Classify(a, b string) Severity {
	switch {
	case ExactlyEqual(a, b):
		return Match
	case CaseInsensitivelyEqual(a, b):
		return Light
	default:
		return Fatal
	}
}

func foldASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
