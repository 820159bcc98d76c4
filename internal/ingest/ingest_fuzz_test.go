package ingest

import (
	"testing"
)

// FuzzNormalizeScore fuzzes the raw score cell boundary with arbitrary input.
func FuzzNormalizeScore(f *testing.F) {
	seeds := []string{
		"3.5",
		"1",
		"4.0",
		"",
		"  2.25  ",
		"0.9",
		"4.01",
		"-1",
		"n/a",
		"3,5",
		"NaN",
		"Inf",
		"1e2",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		v, ok := NormalizeScore(raw)
		if ok {
			// NaN fails ordered comparisons, so check the accepted range directly.
			if !(v >= MinScore && v <= MaxScore) {
				t.Errorf("NormalizeScore(%q) accepted out-of-range value %v", raw, v)
			}
		} else if v != 0 {
			t.Errorf("NormalizeScore(%q) rejected input but returned %v, want 0", raw, v)
		}
	})
}
