package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosRoundTrip(t *testing.T) {
	cases := [][2]int{
		{1, 1},
		{1, 80},
		{1234, 42},
		{MaxLines, MaxCols},
	}
	for _, c := range cases {
		pos := MakePos(c[0], c[1])
		line, col := pos.LineCol()
		assert.Equal(t, c[0], line)
		assert.Equal(t, c[1], col)
		assert.True(t, pos.IsValid())
	}
}

func TestPosUnknown(t *testing.T) {
	var zero Pos
	assert.False(t, zero.IsValid())
	assert.False(t, MakePos(0, 3).IsValid())
	assert.False(t, MakePos(3, 0).IsValid())
}

func TestPosString(t *testing.T) {
	assert.Equal(t, "3:14", MakePos(3, 14).String())
	assert.Equal(t, "3:14", FormatPos(PosLong, MakePos(3, 14)))
	assert.Equal(t, "", FormatPos(PosNone, MakePos(3, 14)))
}

func TestPosition(t *testing.T) {
	pos := MakePosition("main.wacc", MakePos(2, 7))
	assert.Equal(t, "main.wacc:2:7", pos.String())
	assert.True(t, pos.IsValid())

	assert.Equal(t, "main.wacc", Position{Filename: "main.wacc"}.String())
	assert.Equal(t, "-", Position{}.String())
}
