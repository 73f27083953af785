// Package knowledge loads keyword/response tables and matches utterances against them.
package knowledge

import (
	"strings"
	"unicode/utf8"
)

// Entry is one keyword with its candidate responses.
type Entry struct {
	Keyword   string
	Responses []string
}

// Limits caps what the loader keeps. A zero field means unbounded.
type Limits struct {
	MaxEntries     int
	MaxKeywordLen  int
	MaxResponses   int
	MaxResponseLen int
	MaxLineLen     int
}

// DefaultLimits returns the bounds of the classic fixed-size table.
func DefaultLimits() Limits {
	return Limits{
		MaxEntries:     200,
		MaxKeywordLen:  127,
		MaxResponses:   20,
		MaxResponseLen: 255,
		MaxLineLen:     1023,
	}
}

// Base is an ordered, read-only collection of entries. Order is file order.
type Base struct {
	entries []Entry
}

// Empty returns a knowledge base without entries.
func Empty() *Base {
	return &Base{}
}

// FromEntries builds a Base from entries, applying the same normalisation
// and limits as the file loaders. Invalid entries are dropped.
func FromEntries(entries []Entry, opts ...LoadOption) *Base {
	p := newParser(opts)
	for i, e := range entries {
		if p.full() {
			break
		}
		p.add(i+1, e.Keyword, e.Responses)
	}
	return p.base()
}

// Len returns the number of entries.
func (b *Base) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// Entries returns a copy of the entries in load order.
func (b *Base) Entries() []Entry {
	if b == nil {
		return nil
	}
	out := make([]Entry, len(b.entries))
	for i, e := range b.entries {
		out[i] = Entry{
			Keyword:   e.Keyword,
			Responses: append([]string(nil), e.Responses...),
		}
	}
	return out
}

// Match returns the first entry, in load order, whose keyword occurs in
// lowered. The caller is expected to pass an already lowercased utterance.
func (b *Base) Match(lowered string) (Entry, bool) {
	if b == nil {
		return Entry{}, false
	}
	for _, e := range b.entries {
		if strings.Contains(lowered, e.Keyword) {
			return e, true
		}
	}
	return Entry{}, false
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
