package phoneme

// Boundary brackets the divergent region of two sequences of different
// length. Left bounds are indices from the start of both sequences; right
// bounds are distances from the end of each sequence.
//
// For each side the fatal bound is the first position where case-insensitive
// equality fails, and the scan stops there. The light bound is the last
// position before or at that cutoff where exact equality fails, so it equals
// the fatal bound whenever a fatal divergence stops the scan. When the
// shorter sequence runs out first, the fatal bound is the shorter length and
// the light bound is the last exact divergence seen, or the shorter length
// if there was none.
type Boundary struct {
	LenA       int `json:"len_a"`
	LenB       int `json:"len_b"`
	LeftLight  int `json:"left_light"`
	LeftFatal  int `json:"left_fatal"`
	RightLight int `json:"right_light"`
	RightFatal int `json:"right_fatal"`
}

// Zone is a half-open run of positions sharing one display severity.
type Zone struct {
	Start    int
	End      int
	Severity Severity
}

// Localize scans two sequences from both ends to find how far they agree.
// It does not realign tokens: an insertion near the start turns everything
// up to the right agreement into the fatal interior.
//
// Unlike a plain right-to-left scan, the right bounds are clamped so that
// left and right fatal bounds together never exceed the shorter length, and
// the right light bound never exceeds the right fatal bound.
func Localize(a, b Sequence) Boundary {
	shorter := min(len(a), len(b))
	leftLight, leftFatal := scan(shorter, func(i int) (string, string) {
		return a[i], b[i]
	})
	rightLight, rightFatal := scan(shorter, func(i int) (string, string) {
		return a[len(a)-1-i], b[len(b)-1-i]
	})

	// The right scan must not claim tokens of the shorter sequence that the
	// left scan already accounted for.
	if limit := shorter - leftFatal; rightFatal > limit {
		rightFatal = limit
	}
	if rightLight > rightFatal {
		rightLight = rightFatal
	}

	return Boundary{
		LenA:       len(a),
		LenB:       len(b),
		LeftLight:  leftLight,
		LeftFatal:  leftFatal,
		RightLight: rightLight,
		RightFatal: rightFatal,
	}
}

// scan walks n position pairs up to the first index where case-insensitive
// equality fails. It returns the last index where exact equality failed and
// that cutoff index; either is n when no such position exists.
func scan(n int, at func(int) (string, string)) (light, fatal int) {
	light, fatal = n, n
	for i := 0; i < n; i++ {
		x, y := at(i)
		if !ExactlyEqual(x, y) {
			light = i
		}
		if !CaseInsensitivelyEqual(x, y) {
			fatal = i
			break
		}
	}
	return light, fatal
}

// Zones splits a sequence of the given length into display zones:
// unmarked prefix, light prefix zone, fatal interior, light suffix zone and
// unmarked suffix. The light zones are empty when a fatal divergence stopped
// the scan on that side. Empty zones are omitted.
func (b Boundary) Zones(length int) []Zone {
	cuts := []struct {
		end      int
		severity Severity
	}{
		{b.LeftLight, Match},
		{b.LeftFatal, Light},
		{length - b.RightFatal, Fatal},
		{length - b.RightLight, Light},
		{length, Match},
	}
	zones := make([]Zone, 0, len(cuts))
	start := 0
	for _, cut := range cuts {
		end := max(min(cut.end, length), start)
		if end > start {
			zones = append(zones, Zone{Start: start, End: end, Severity: cut.severity})
		}
		start = end
	}
	return zones
}
