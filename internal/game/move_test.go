package game

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestParseMove(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		in   string
		kind MoveKind
		out  string
	}
	cases := []testdata{
		{"-", MovePass, "-"},
		{"a1-a2", MoveExtend, "a1-a2"},
		{"a1b2", MoveExtend, "a1-b2"},
		{"a1-c3", MoveJump, "a1-c3"},
		{"g7e6", MoveJump, "g7-e6"},
		{"d4-d2", MoveJump, "d4-d2"},
	}
	for _, tc := range cases {
		m, err := ParseMove(tc.in)
		is.NoErr(err)
		is.Equal(m.Kind(), tc.kind)
		is.Equal(m.String(), tc.out)
	}
}

func TestParseMoveRejectsMalformed(t *testing.T) {
	is := is.New(t)
	for _, in := range []string{"", "a1", "a1-", "a1-a1", "a1-d1", "a1-a4", "h1-g1", "a0-a1", "a8a7", "a1+a2", "A1-A2"} {
		_, err := ParseMove(in)
		is.True(errors.Is(err, ErrMalformedMove))
	}
}

func TestMoveSquares(t *testing.T) {
	is := is.New(t)
	m := mustParse(t, "b3-d4")
	is.Equal(m.From(), Index(1, 2))
	is.Equal(m.To(), Index(3, 3))
	c, r := m.Origin()
	is.Equal([]int{c, r}, []int{1, 2})
	c, r = m.Dest()
	is.Equal([]int{c, r}, []int{3, 3})
	is.True(m.IsJump())
	is.True(!m.IsExtend())
	is.True(Move{}.IsPass())
}

func TestMoveText(t *testing.T) {
	is := is.New(t)
	var m Move
	is.NoErr(m.UnmarshalText([]byte("c3-c4")))
	is.Equal(m, mustParse(t, "c3c4"))
	b, err := m.MarshalText()
	is.NoErr(err)
	is.Equal(string(b), "c3-c4")
	is.True(m.UnmarshalText([]byte("zz")) != nil)
}

func TestGenerateMovesStart(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	moves := GenerateMoves(b, Red)
	// each corner reaches the other 8 squares of its 3x3 corner block
	is.Equal(len(moves), 16)
	is.Equal(moves[0].String(), "a1-a3")
	is.Equal(moves[1].String(), "a1-a2")
	for _, m := range moves {
		is.True(b.LegalMove(m))
	}
	is.Equal(len(GenerateMoves(b, Blue)), 16)
}

func TestJumpOverObstacle(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	is.NoErr(b.SetBlock(1, 0)) // b1

	want := mustParse(t, "a1-c1")
	found := false
	for _, m := range GenerateMoves(b, Red) {
		is.True(m.String() != "a1-b1")
		if m == want {
			found = true
		}
	}
	is.True(found)
}
