package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringPoolAdd(t *testing.T) {
	p := NewStringPool()

	e1 := p.Add("hello")
	assert.Equal(t, 0, e1.Index)
	assert.Equal(t, 5, e1.Length)
	assert.Equal(t, "hello", e1.Escaped)
	assert.Equal(t, ".msg_0", e1.Label())

	e2 := p.Add("world!")
	assert.Equal(t, 1, e2.Index)
	assert.Equal(t, ".msg_1", e2.Label())

	require.Len(t, p.Entries(), 2)
	assert.Equal(t, []*PoolEntry{e1, e2}, p.Entries())
}

func TestStringPoolDedup(t *testing.T) {
	p := NewStringPool()

	e1 := p.Add("hello")
	e2 := p.Add("hello")
	assert.Same(t, e1, e2)
	assert.Equal(t, 1, p.Len())

	// distinct content that normalizes identically shares the entry
	e3 := p.Add("a\nb")
	e4 := p.Add(`a\nb`)
	assert.Same(t, e3, e4)
	assert.Equal(t, 2, p.Len())
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"plain":        "plain",
		"a\nb":         `a\nb`,
		"tab\there":    `tab\there`,
		"\x00\b\t\n\f\r": `\0\b\t\n\f\r`,
		`quote"`:       `quote\"`,
		"tick'":        `tick\'`,
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "%q", in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"plain", "a\nb", "\x00\b\t\n\f\r\"'", `already\nescaped`}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "%q", in)
	}
}
