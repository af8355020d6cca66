package replaces

// BruteForce searches every needle separately from the current position and
// takes the earliest, then longest, occurrence. Fast for short haystacks.
type BruteForce struct{}

var _ Strategy = BruteForce{}

func (BruteForce) Find(haystack string, needles map[string]string, options ...Option) []Match {
	return find(bruteForceFind, haystack, needles, options)
}

func (BruteForce) Replace(haystack string, needles map[string]string, options ...Option) string {
	return replace(bruteForceFind, haystack, needles, options)
}

const notSearched = -2

func bruteForceFind(s *subject, patterns []pattern) (ret []span) {
	// next occurrence per pattern, -1 when exhausted
	next := make([]int, len(patterns))
	for i := range next {
		next[i] = notSearched
	}

	cursor := 0
	for {
		best := -1
		for i, p := range patterns {
			if next[i] == -1 {
				continue
			}
			if next[i] < cursor {
				next[i] = s.index(p.units, cursor)
				if next[i] < 0 {
					continue
				}
			}
			if best < 0 ||
				next[i] < next[best] ||
				next[i] == next[best] && len(p.units) > len(patterns[best].units) {
				best = i
			}
		}
		if best < 0 {
			return
		}
		start := next[best]
		end := start + len(patterns[best].units)
		ret = append(ret, span{
			start:   start,
			end:     end,
			pattern: best,
		})
		cursor = end
	}
}

// index returns the first valid occurrence of units at or after from, or -1.
func (s *subject) index(units []rune, from int) int {
	n := len(units)
	first := units[0]
loop:
	for i := from; i+n <= len(s.units); i++ {
		if s.units[i] != first {
			continue
		}
		for j := 1; j < n; j++ {
			if s.units[i+j] != units[j] {
				continue loop
			}
		}
		if s.valid(i, i+n) {
			return i
		}
	}
	return -1
}
