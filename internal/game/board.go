package game

import (
	"github.com/cespare/xxhash"
)

// CellState represents the contents of one square of the bordered grid.
type CellState uint8

const (
	Empty CellState = iota
	Red
	Blue
	Blocked
)

func (c CellState) String() string {
	switch c {
	case Empty:
		return "empty"
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Blocked:
		return "blocked"
	}
	return "unknown"
}

// Opponent returns the other side for Red or Blue, and Empty otherwise.
func Opponent(player CellState) CellState {
	switch player {
	case Red:
		return Blue
	case Blue:
		return Red
	}
	return Empty
}

// Notifier is called with the board after every change of state.
type Notifier func(*Board)

func nop(*Board) {}

// Board is a 7x7 Ataxx board embedded in an 11x11 grid whose outer two
// rings are always Blocked. A Board is not safe for concurrent use.
type Board struct {
	cells  [GridSize]CellState
	counts [Blocked + 1]int

	toMove CellState
	// consecutive jumps since the last extend
	jumps int

	history []Move
	undo    []undoCell

	gameOver bool
	winner   CellState

	notify Notifier
}

// NewBoard returns a board in the starting position.
func NewBoard() *Board {
	b := &Board{notify: nop}
	for sq := range b.cells {
		b.cells[sq] = Blocked
	}
	b.Clear()
	return b
}

// Clear resets b to the starting position: Red on a1 and g7, Blue on a7
// and g1, no blocks, Red to move, empty history.
func (b *Board) Clear() {
	for col := 0; col < Side; col++ {
		for row := 0; row < Side; row++ {
			b.cells[Index(col, row)] = Empty
		}
	}
	b.cells[Index(0, 0)] = Red
	b.cells[Index(Side-1, Side-1)] = Red
	b.cells[Index(0, Side-1)] = Blue
	b.cells[Index(Side-1, 0)] = Blue

	b.counts[Red] = 2
	b.counts[Blue] = 2
	b.counts[Empty] = Side*Side - 4
	b.counts[Blocked] = GridSize - Side*Side

	b.toMove = Red
	b.jumps = 0
	b.history = nil
	b.undo = nil
	b.gameOver = false
	b.winner = Empty
	b.announce()
}

// Clone returns a copy of b with the same contents and history but an
// empty undo log and no notifier.
func (b *Board) Clone() *Board {
	nb := &Board{
		cells:    b.cells,
		counts:   b.counts,
		toMove:   b.toMove,
		jumps:    b.jumps,
		history:  append([]Move(nil), b.history...),
		gameOver: b.gameOver,
		winner:   b.winner,
		notify:   nop,
	}
	return nb
}

// Get returns the contents of column col, row row. Squares in the border
// ring are Blocked.
func (b *Board) Get(col, row int) CellState {
	return b.cells[Index(col, row)]
}

// At returns the contents of linearized square sq.
func (b *Board) At(sq int) CellState {
	return b.cells[sq]
}

// set changes sq to v, recording the prior value in the undo log.
func (b *Board) set(sq int, v CellState) {
	b.addUndo(sq)
	b.unrecordedSet(sq, v)
}

// unrecordedSet changes sq to v and keeps the counts in step, without
// touching the undo log.
func (b *Board) unrecordedSet(sq int, v CellState) {
	b.counts[b.cells[sq]]--
	b.counts[v]++
	b.cells[sq] = v
}

// ToMove returns the side whose turn it is.
func (b *Board) ToMove() CellState { return b.toMove }

// NumPieces returns the number of squares holding c. For Blocked this
// includes the border ring.
func (b *Board) NumPieces(c CellState) int { return b.counts[c] }

func (b *Board) RedPieces() int  { return b.counts[Red] }
func (b *Board) BluePieces() int { return b.counts[Blue] }

// TotalOpen returns the number of empty squares.
func (b *Board) TotalOpen() int { return b.counts[Empty] }

// Jumps returns the number of consecutive jumps since the last extend or
// the start of the game.
func (b *Board) Jumps() int { return b.jumps }

// NumMoves returns the number of moves and passes since the last Clear.
func (b *Board) NumMoves() int { return len(b.history) }

// History returns a copy of the moves played since the last Clear.
func (b *Board) History() []Move {
	return append([]Move(nil), b.history...)
}

// GameOver reports whether the game has been decided.
func (b *Board) GameOver() bool { return b.gameOver }

// Winner returns the winning side, or Empty for a draw. It is only
// meaningful once GameOver is true.
func (b *Board) Winner() CellState { return b.winner }

// SetNotifier replaces the board's only observer and announces the current
// state to it. A nil fn removes the observer.
func (b *Board) SetNotifier(fn Notifier) {
	if fn == nil {
		fn = nop
	}
	b.notify = fn
	b.announce()
}

func (b *Board) announce() {
	b.notify(b)
}

// Equal compares grid contents only.
func (b *Board) Equal(o *Board) bool {
	return b.cells == o.cells
}

// Hash is consistent with Equal.
func (b *Board) Hash() uint64 {
	var buf [GridSize]byte
	for i, c := range b.cells {
		buf[i] = byte(c)
	}
	return xxhash.Sum64(buf[:])
}
