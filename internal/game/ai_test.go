package game

import (
	"testing"

	"github.com/matryer/is"
)

func TestDepthOnePrefersMaterial(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	ai := NewAI(1, WithDepth(1))
	m := ai.FindBestMove(b)
	// nothing can be captured yet, so only an extend gains material
	is.True(m.IsExtend())
	is.True(b.LegalMove(m))
	is.Equal(ai.LastStats().Score, 1)
}

func TestDepthOneTakesBiggestCapture(t *testing.T) {
	is := is.New(t)
	b := boardFromRows(t, Red,
		"r------",
		"-------",
		"--bbb--",
		"--b-b--",
		"--bbb--",
		"-r-----",
		"-------",
	)
	ai := NewAI(1, WithDepth(1))
	m := ai.FindBestMove(b)
	is.Equal(m.To(), Index(3, 3)) // d4 is surrounded by eight blue pieces

	is.NoErr(b.Apply(m))
	is.Equal(b.BluePieces(), 0)
}

func TestFindBestMoveDoesNotTouchBoard(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	is.NoErr(b.Apply(mustParse(t, "a1-b2")))
	calls := 0
	b.SetNotifier(func(*Board) { calls++ })
	before := b.Clone()
	undoLen := len(b.undo)

	NewAI(1, WithDepth(3)).FindBestMove(b)
	is.True(b.Equal(before))
	is.Equal(b.counts, before.counts)
	is.Equal(b.NumMoves(), before.NumMoves())
	is.Equal(len(b.undo), undoLen)
	is.Equal(b.ToMove(), before.ToMove())
	is.Equal(calls, 1)
}

func TestSearchReturnsLegalMoves(t *testing.T) {
	is := is.New(t)
	rng := seededRNG(11)
	ai := NewAI(5, WithDepth(2))
	for game := 0; game < 3; game++ {
		b := NewBoard()
		for ply := 0; ply < 60 && !b.GameOver(); ply++ {
			m := ai.FindBestMove(b)
			if b.CanMove(b.ToMove()) {
				is.True(!m.IsPass())
			} else {
				is.Equal(m, Pass)
			}
			is.True(b.LegalMove(m))
			// alternate searched and random plies to reach varied positions
			if ply%2 == 1 {
				m = randomLegal(b, rng)
			}
			is.NoErr(b.Apply(m))
		}
	}
}

func TestPassWhenStuck(t *testing.T) {
	is := is.New(t)
	b := boardFromRows(t, Red, boxedRed...)
	ai := NewAI(1)
	is.Equal(ai.FindBestMove(b), Pass)
}

func TestForcedPassInsideSearch(t *testing.T) {
	is := is.New(t)
	b := boardFromRows(t, Red, boxedRed...)
	before := b.Clone()
	ai := NewAI(1)
	ai.lastFound = mustParse(t, "a1-a2")

	v := ai.minMax(b, 2, true, sense(Red), -infinity, infinity)
	is.Equal(ai.lastFound, Pass)
	is.True(b.Equal(before))
	is.Equal(b.NumMoves(), 0)
	is.Equal(b.ToMove(), Red)
	// Blue's best reply after the pass is worth what plain minimax says
	is.Equal(v, plainMinimax(b, 2))
}

func TestTakesImmediateWin(t *testing.T) {
	is := is.New(t)
	for depth := 1; depth <= 3; depth++ {
		b := boardFromRows(t, Red,
			"-------",
			"-------",
			"-------",
			"-------",
			"-------",
			"-------",
			"r-b----",
		)
		ai := NewAI(1, WithDepth(depth))
		m := ai.FindBestMove(b)
		is.NoErr(b.Apply(m))
		is.True(b.GameOver())
		is.Equal(b.Winner(), Red)
		is.True(ai.LastStats().Score >= WinningValue)
	}
}

func TestBlueMinimizes(t *testing.T) {
	is := is.New(t)
	b := boardFromRows(t, Blue,
		"-------",
		"-------",
		"-------",
		"-------",
		"-------",
		"-------",
		"b-r----",
	)
	ai := NewAI(1, WithDepth(2))
	m := ai.FindBestMove(b)
	is.NoErr(b.Apply(m))
	is.True(b.GameOver())
	is.Equal(b.Winner(), Blue)
	is.True(ai.LastStats().Score <= -WinningValue)
}

func TestPruningMatchesPlainMinimax(t *testing.T) {
	is := is.New(t)
	rng := seededRNG(21)
	for trial := 0; trial < 6; trial++ {
		b := NewBoard()
		for ply := 0; ply < 6+trial*3 && !b.GameOver(); ply++ {
			is.NoErr(b.Apply(randomLegal(b, rng)))
		}
		if b.GameOver() || !b.CanMove(b.ToMove()) {
			continue
		}
		ai := NewAI(1, WithDepth(3))
		m := ai.FindBestMove(b)
		want := plainMinimax(b.Clone(), 3)
		is.Equal(ai.LastStats().Score, want)

		// the chosen move must actually achieve that value
		nb := b.Clone()
		is.NoErr(nb.Apply(m))
		is.Equal(plainMinimax(nb, 2), want)
	}
}

func TestDeterministic(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	is.NoErr(b.Apply(mustParse(t, "a1-b2")))
	is.NoErr(b.Apply(mustParse(t, "a7-b6")))

	is.Equal(NewAI(1, WithDepth(3)).FindBestMove(b), NewAI(99, WithDepth(3)).FindBestMove(b))

	s1 := NewAI(42, WithDepth(2), WithRootShuffle(true)).FindBestMove(b)
	s2 := NewAI(42, WithDepth(2), WithRootShuffle(true)).FindBestMove(b)
	is.Equal(s1, s2)
	is.True(b.LegalMove(s1))
}

func TestCustomEvaluator(t *testing.T) {
	is := is.New(t)
	calls := 0
	eval := func(b *Board, wv int) int {
		calls++
		return MaterialScore(b, wv)
	}
	ai := NewAI(1, WithDepth(1), WithEvaluator(eval))
	ai.FindBestMove(NewBoard())
	is.Equal(calls, 16)
	is.Equal(ai.LastStats().Nodes, uint64(17))
}

func TestOptionsIgnoreNonsense(t *testing.T) {
	is := is.New(t)
	ai := NewAI(1, WithDepth(0), WithEvaluator(nil))
	is.Equal(ai.Depth(), DefaultDepth)
	is.True(ai.eval != nil)

	is.Equal(NewAI(1, WithDepth(MaxDepth+5)).Depth(), MaxDepth)
}

func TestWinScoreStaysWithinInfinity(t *testing.T) {
	is := is.New(t)
	b := boardFromRows(t, Red,
		"-------",
		"-------",
		"-------",
		"-------",
		"-------",
		"-------",
		"r-b----",
	)
	is.NoErr(b.Apply(mustParse(t, "a1-b1")))
	is.True(b.GameOver())

	ai := NewAI(1, WithDepth(MaxDepth+5))
	v := ai.minMax(b, ai.Depth(), false, sense(b.ToMove()), -infinity, infinity)
	is.Equal(v, WinningValue+MaxDepth)
	is.True(v <= infinity)
}

func TestMovesOnJumpLimitDecidedBoard(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	b.jumps = JumpLimit - 1
	is.NoErr(b.Apply(mustParse(t, "a1-a3")))
	is.True(b.GameOver())
	is.True(b.CanMove(b.ToMove()))

	for depth := 1; depth <= 3; depth++ {
		m := NewAI(1, WithDepth(depth)).FindBestMove(b)
		is.True(!m.IsPass())
		is.True(b.LegalMove(m))
	}
}
