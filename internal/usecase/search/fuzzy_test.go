package search

import "testing"

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "smartphone", "smartphone", 1},
		{"exact substring", "smartphone", "galaxy smartphone 128gb", 1},
		{"empty query", "", "galaxy smartphone", 0},
		{"empty title", "smartphone", "", 0},
		{"disjoint", "zzzz", "qqqq", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := partialRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("partialRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPartialRatio_TypoTolerance(t *testing.T) {
	got := partialRatio("smartphne", "galaxy smartphone case")
	if got <= 0.8 || got >= 1 {
		t.Errorf("one-character typo should score high but below exact: %v", got)
	}
}

func TestPartialRatio_Bounded(t *testing.T) {
	pairs := [][2]string{
		{"television 55 inch", "55in led television"},
		{"headphones", "wired earphones with mic"},
		{"a", "abcdefghij"},
	}
	for _, p := range pairs {
		got := partialRatio(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("partialRatio(%q, %q) = %v, out of [0,1]", p[0], p[1], got)
		}
	}
}
