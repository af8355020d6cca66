package sigils

import (
	"iter"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const escapeMark = "_x"

// Reference is a wrapped key found in a text. Start and End are byte offsets
// of the whole wrapped form.
type Reference struct {
	Start int
	End   int
	Key   string
}

// References yields the wrapped keys of text from left to right. Native
// references are matched non-greedily and their body must be non-empty and
// free of spaces. Script references without a closing token never end in a
// separator, so keys ending in a dot are only found whole by Matches.
func (o Operator) References(text string) iter.Seq[Reference] {
	switch o.kind {
	case KindScript:
		return o.scriptReferences(text)
	}
	return o.nativeReferences(text)
}

func (o Operator) nativeReferences(text string) iter.Seq[Reference] {
	return func(yield func(Reference) bool) {
		pos := 0
		for pos < len(text) {
			i := strings.Index(text[pos:], o.began)
			if i < 0 {
				return
			}
			start := pos + i
			bodyStart := start + len(o.began)
			j := strings.Index(text[bodyStart:], o.ended)
			if j < 0 {
				return
			}
			body := text[bodyStart : bodyStart+j]
			if body == "" ||
				strings.IndexFunc(body, unicode.IsSpace) >= 0 ||
				o.began != o.ended && strings.Contains(body, o.began) {
				// not a reference, retry after this opening token
				pos = bodyStart
				continue
			}
			end := bodyStart + j + len(o.ended)
			if !yield(Reference{
				Start: start,
				End:   end,
				Key:   body,
			}) {
				return
			}
			pos = end
		}
	}
}

func (o Operator) scriptReferences(text string) iter.Seq[Reference] {
	prefix := o.began + o.namespace + o.separator
	return func(yield func(Reference) bool) {
		pos := 0
		for pos < len(text) {
			i := strings.Index(text[pos:], prefix)
			if i < 0 {
				return
			}
			start := pos + i
			pos = start + len(prefix)

			if o.began == "" {
				// identifiers must not be glued to a preceding word
				if r, _ := utf8.DecodeLastRuneInString(text[:start]); start > 0 && (isLegal(r) || r == '_') {
					continue
				}
			}

			bodyEnd := o.scanBody(text, pos)
			body := text[pos:bodyEnd]
			if o.ended == "" {
				// trailing separators read as punctuation of the surrounding text
				for strings.HasSuffix(body, o.separator) {
					body = body[:len(body)-len(o.separator)]
				}
			}
			if body == "" {
				continue
			}
			end := pos + len(body)
			if o.ended != "" {
				if !strings.HasPrefix(text[end:], o.ended) {
					continue
				}
				end += len(o.ended)
			}
			key, ok := o.decode(body)
			if !ok {
				continue
			}
			if !yield(Reference{
				Start: start,
				End:   end,
				Key:   key,
			}) {
				return
			}
			pos = end
		}
	}
}

// scanBody returns the end offset of the encoded identifier body starting at pos.
func (o Operator) scanBody(text string, pos int) int {
	for pos < len(text) {
		rest := text[pos:]
		if n := escapeLen(rest); n > 0 {
			pos += n
			continue
		}
		if strings.HasPrefix(rest, o.separator) {
			pos += len(o.separator)
			continue
		}
		r, size := utf8.DecodeRuneInString(rest)
		if !isLegal(r) {
			break
		}
		pos += size
	}
	return pos
}

func (o Operator) encode(b *strings.Builder, key string) {
	for _, r := range key {
		switch {
		case r == '.':
			b.WriteString(o.separator)
		case isLegal(r):
			b.WriteRune(r)
		default:
			b.WriteString(escapeMark)
			b.WriteString(strconv.FormatUint(uint64(r), 16))
			b.WriteByte('_')
		}
	}
}

// decode reverses encode. Undecodable input is copied through and reported.
func (o Operator) decode(body string) (string, bool) {
	var b strings.Builder
	b.Grow(len(body))
	ok := true
	for len(body) > 0 {
		if n := escapeLen(body); n > 0 {
			v, _ := strconv.ParseUint(body[len(escapeMark):n-1], 16, 32)
			b.WriteRune(rune(v))
			body = body[n:]
			continue
		}
		if strings.HasPrefix(body, o.separator) {
			b.WriteByte('.')
			body = body[len(o.separator):]
			continue
		}
		r, size := utf8.DecodeRuneInString(body)
		if !isLegal(r) {
			ok = false
		}
		b.WriteString(body[:size])
		body = body[size:]
	}
	return b.String(), ok
}

// escapeLen returns the length of a well formed escape at the start of s, or 0.
func escapeLen(s string) int {
	if !strings.HasPrefix(s, escapeMark) {
		return 0
	}
	end := strings.IndexByte(s[len(escapeMark):], '_')
	if end <= 0 || end > 8 {
		return 0
	}
	v, err := strconv.ParseUint(s[len(escapeMark):len(escapeMark)+end], 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return 0
	}
	return len(escapeMark) + end + 1
}
