package replaces

import (
	"maps"
	"slices"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

type Option func(*options)

type options struct {
	fold       bool
	wholeWords bool
}

func newOptions(list []Option) (ret options) {
	for _, fn := range list {
		fn(&ret)
	}
	return
}

// CaseInsensitive matches needles under Unicode full case folding.
func CaseInsensitive() Option {
	return func(o *options) {
		o.fold = true
	}
}

// WholeWords rejects matches adjacent to a letter, digit or underscore.
func WholeWords() Option {
	return func(o *options) {
		o.wholeWords = true
	}
}

// subject is a haystack prepared for matching. units are the runes compared
// against patterns; offsets and bounds have one extra entry for the end.
type subject struct {
	text       string
	units      []rune
	offsets    []int
	bounds     []bool
	wholeWords bool
}

func newSubject(text string, opts options) *subject {
	n := utf8.RuneCountInString(text)
	s := &subject{
		text:       text,
		units:      make([]rune, 0, n),
		offsets:    make([]int, 0, n+1),
		bounds:     make([]bool, 0, n+1),
		wholeWords: opts.wholeWords,
	}
	var f *folder
	if opts.fold {
		f = newFolder()
	}
	for i, r := range text {
		if f == nil {
			s.units = append(s.units, r)
			s.offsets = append(s.offsets, i)
			s.bounds = append(s.bounds, true)
			continue
		}
		for j, fr := range f.fold(r) {
			s.units = append(s.units, fr)
			s.offsets = append(s.offsets, i)
			s.bounds = append(s.bounds, j == 0)
		}
	}
	s.offsets = append(s.offsets, len(text))
	s.bounds = append(s.bounds, true)
	return s
}

// valid reports whether units[start:end] may be reported as a match.
func (s *subject) valid(start, end int) bool {
	if !s.bounds[start] || !s.bounds[end] {
		return false
	}
	if s.wholeWords {
		if from := s.offsets[start]; from > 0 {
			if r, _ := utf8.DecodeLastRuneInString(s.text[:from]); isWord(r) {
				return false
			}
		}
		if to := s.offsets[end]; to < len(s.text) {
			if r, _ := utf8.DecodeRuneInString(s.text[to:]); isWord(r) {
				return false
			}
		}
	}
	return true
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

type pattern struct {
	key   string
	units []rune
}

func compile(needles map[string]string, opts options) []pattern {
	var f *folder
	if opts.fold {
		f = newFolder()
	}
	keys := slices.Sorted(maps.Keys(needles))
	seen := make(map[string]bool, len(keys))
	ret := make([]pattern, 0, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		var units []rune
		if f == nil {
			units = []rune(key)
		} else {
			for _, r := range key {
				units = append(units, f.fold(r)...)
			}
		}
		id := string(units)
		if seen[id] {
			continue
		}
		seen[id] = true
		ret = append(ret, pattern{
			key:   key,
			units: units,
		})
	}
	return ret
}

type folder struct {
	caser cases.Caser
	buf   []rune
}

func newFolder() *folder {
	return &folder{
		caser: cases.Fold(),
	}
}

// fold returns the folded runes of r. The result is valid until the next call.
func (f *folder) fold(r rune) []rune {
	f.buf = f.buf[:0]
	if r < utf8.RuneSelf {
		if 'A' <= r && r <= 'Z' {
			r += 'a' - 'A'
		}
		f.buf = append(f.buf, r)
		return f.buf
	}
	for _, fr := range f.caser.String(string(r)) {
		f.buf = append(f.buf, fr)
	}
	if len(f.buf) == 0 {
		f.buf = append(f.buf, r)
	}
	return f.buf
}
