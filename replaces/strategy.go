package replaces

import (
	"strings"
)

const Theory = `
# Substitution

Every strategy replaces the keys of a needle map found in a haystack with their
values, with one shared match policy:

1. Matches never overlap. Scanning from the left, the earliest start wins; at
   one start the longest needle wins. So "category" beats "cat" on the text
   "category", while "cat" still wins on "cats".
2. Replacement text is emitted verbatim and never scanned again.
3. Matches begin and end on code point boundaries. With case folding each
   haystack rune may fold to several runes; a match must then cover whole
   folded runes.
4. Empty needle keys are ignored. Needle keys equal after folding collapse to
   the lexically smallest key.

BruteForce and Automaton differ only in how they find the matches, so their
outputs are byte-identical for all inputs.
`

type Strategy interface {
	Find(haystack string, needles map[string]string, options ...Option) []Match
	Replace(haystack string, needles map[string]string, options ...Option) string
}

// Match is a needle occurrence. Start and End are byte offsets into the haystack.
type Match struct {
	Start int
	End   int
	Key   string
}

// Func is a substitution function with default options.
type Func func(haystack string, needles map[string]string) string

// FindFunc reports the matches a Func with the same options would replace.
type FindFunc func(haystack string, needles map[string]string) []Match

// finder returns the leftmost-longest non overlapping occurrences as
// unit spans of the subject.
type finder func(s *subject, patterns []pattern) []span

type span struct {
	start   int
	end     int
	pattern int
}

func find(f finder, haystack string, needles map[string]string, options []Option) []Match {
	if haystack == "" || len(needles) == 0 {
		return nil
	}
	opts := newOptions(options)
	patterns := compile(needles, opts)
	if len(patterns) == 0 {
		return nil
	}
	s := newSubject(haystack, opts)
	spans := f(s, patterns)
	ret := make([]Match, 0, len(spans))
	for _, sp := range spans {
		ret = append(ret, Match{
			Start: s.offsets[sp.start],
			End:   s.offsets[sp.end],
			Key:   patterns[sp.pattern].key,
		})
	}
	return ret
}

func replace(f finder, haystack string, needles map[string]string, options []Option) string {
	matches := find(f, haystack, needles, options)
	if len(matches) == 0 {
		return haystack
	}
	var b strings.Builder
	b.Grow(len(haystack) + len(haystack)/4)
	last := 0
	for _, m := range matches {
		b.WriteString(haystack[last:m.Start])
		b.WriteString(needles[m.Key])
		last = m.End
	}
	b.WriteString(haystack[last:])
	return b.String()
}
