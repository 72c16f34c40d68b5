package game

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestRenderStart(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	want := strings.Join([]string{
		"7  b - - - - - r",
		"6  - - - - - - -",
		"5  - - - - - - -",
		"4  - - - - - - -",
		"3  - - - - - - -",
		"2  - - - - - - -",
		"1  r - - - - - b",
		"   a b c d e f g",
	}, "\n")
	is.Equal(b.Render(true), want)

	plain := strings.Split(b.String(), "\n")
	is.Equal(plain[0], "  b - - - - - r")
	is.Equal(len(plain), Side+1) // trailing newline
}

func TestRenderBlocksAndMoves(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	is.NoErr(b.SetBlock(1, 1))
	is.NoErr(b.Apply(mustParse(t, "a1-a2")))
	is.Equal(b.Rows(), []string{
		"b------",
		"-X---X-",
		"-------",
		"-------",
		"-------",
		"rX---X-",
		"r-----b",
	})
}

func TestSnapshot(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	s := b.Snapshot()
	is.Equal(s.ToMove, "red")
	is.Equal(s.Red, 2)
	is.Equal(s.Blue, 2)
	is.Equal(s.Open, 45)
	is.Equal(len(s.Moves), 0)
	is.True(s.Moves != nil)
	is.Equal(s.Winner, "")

	is.NoErr(b.Apply(mustParse(t, "a1-a3")))
	s = b.Snapshot()
	is.Equal(s.ToMove, "blue")
	is.Equal(s.Jumps, 1)
	is.Equal(s.Moves, []Move{mustParse(t, "a1-a3")})

	raw, err := json.Marshal(s)
	is.NoErr(err)
	is.True(strings.Contains(string(raw), `"moves":["a1-a3"]`))
	is.True(!strings.Contains(string(raw), "winner"))
}

func TestSnapshotWinner(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	for i := 0; i < JumpLimit; i++ {
		b.jumps++
	}
	b.checkWinner()
	is.Equal(b.Snapshot().Winner, "draw")

	b = boardFromRows(t, Red,
		"-------",
		"-------",
		"-------",
		"-------",
		"-------",
		"-------",
		"r-b----",
	)
	is.NoErr(b.Apply(mustParse(t, "a1-b1")))
	s := b.Snapshot()
	is.True(s.GameOver)
	is.Equal(s.Winner, "red")
}

func TestParseRows(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	is.NoErr(b.SetBlock(1, 1))
	is.NoErr(b.Apply(mustParse(t, "a1-b3")))

	nb, err := ParseRows(Blue, b.Rows())
	is.NoErr(err)
	is.True(nb.Equal(b))
	is.Equal(nb.counts, b.counts)
	is.Equal(nb.ToMove(), Blue)
	is.Equal(nb.NumMoves(), 0)
	is.True(!nb.GameOver())

	// a side with pieces but no moves left for either player is decided
	full, err := ParseRows(Red, []string{
		"bbbbbbb",
		"rrrrrrr",
		"rrrrrrr",
		"rrrrrrr",
		"rrrrrrr",
		"rrrrrrr",
		"rrrrrrr",
	})
	is.NoErr(err)
	is.True(full.GameOver())
	is.Equal(full.Winner(), Red)
}

func TestParseRowsRejects(t *testing.T) {
	type testdata struct {
		name   string
		toMove CellState
		rows   []string
	}
	good := NewBoard().Rows()
	short := append([]string{}, good...)
	short[3] = "------"
	glyphs := append([]string{}, good...)
	glyphs[0] = "b-----?"
	for _, tc := range []testdata{
		{"too few rows", Red, good[:6]},
		{"short row", Red, short},
		{"bad glyph", Blue, glyphs},
		{"nobody on move", Empty, good},
	} {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			_, err := ParseRows(tc.toMove, tc.rows)
			is.True(errors.Is(err, ErrBadPosition))
		})
	}
}
