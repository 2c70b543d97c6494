package compiler

import (
	"strconv"
	"strings"
)

// PoolEntry is a single read-only data pool record: the index of its
// label, the length in characters of the decoded content, and the
// assembler-escaped form emitted in the .data segment.
type PoolEntry struct {
	Index   int
	Length  int
	Escaped string
}

// Label returns the data-segment label of the entry.
func (e *PoolEntry) Label() string { return ".msg_" + strconv.Itoa(e.Index) }

// StringPool is the de-duplicated, insertion-ordered collection of string
// data emitted in the read-only data segment. Entries are keyed by their
// escape-normalized content: adding the same content twice returns the
// entry created by the first add.
type StringPool struct {
	entries map[string]*PoolEntry
	ordered []*PoolEntry
}

// NewStringPool returns an empty pool.
func NewStringPool() *StringPool {
	return &StringPool{entries: make(map[string]*PoolEntry)}
}

// Add inserts the decoded string content into the pool and returns its
// entry. Insertion is idempotent on identical content.
func (p *StringPool) Add(content string) *PoolEntry {
	escaped := Normalize(content)
	if e, ok := p.entries[escaped]; ok {
		return e
	}

	e := &PoolEntry{
		Index:   len(p.ordered),
		Length:  len(content),
		Escaped: escaped,
	}
	p.entries[escaped] = e
	p.ordered = append(p.ordered, e)
	return e
}

// Entries returns the pool entries in insertion order.
func (p *StringPool) Entries() []*PoolEntry { return p.ordered }

// Len returns the number of entries in the pool.
func (p *StringPool) Len() int { return len(p.ordered) }

// Normalize maps the characters that must be escaped in the emitted
// assembly to their two-character assembler forms. A quote or apostrophe
// that already follows a backslash is taken as escaped and kept as is, and
// all other characters pass through unchanged, which makes the
// normalization idempotent.
func Normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	var prev rune
	for _, r := range s {
		switch r {
		case 0:
			sb.WriteString(`\0`)
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		case '"', '\'':
			if prev != '\\' {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
		prev = r
	}
	return sb.String()
}
