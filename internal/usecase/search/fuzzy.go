package search

// partialRatio computes a best-aligned substring similarity between two
// strings in [0, 1]: the shorter string is slid across the longer one
// and the best window's indel similarity wins. Tolerates minor
// spelling and ordering differences between a query and a title.
// Pure function, no shared state.
func partialRatio(a, b string) float64 {
	s1, s2 := []rune(a), []rune(b)
	if len(s1) == 0 || len(s2) == 0 {
		return 0
	}
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}

	best := 0.0
	for start := 0; start+len(s1) <= len(s2); start++ {
		r := indelRatio(s1, s2[start:start+len(s1)])
		if r > best {
			best = r
			if best == 1 {
				return 1
			}
		}
	}
	return best
}

// indelRatio is the normalized insert/delete similarity 2*LCS/(m+n),
// equivalent to 1 - indel_distance/(m+n).
func indelRatio(s1, s2 []rune) float64 {
	m, n := len(s1), len(s2)
	if m+n == 0 {
		return 0
	}

	// Single-row LCS table.
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if s1[i-1] == s2[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	lcs := prev[n]
	return 2 * float64(lcs) / float64(m+n)
}
