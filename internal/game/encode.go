// internal/game/encode.go
package game

import (
	"fmt"
	"strings"
)

// glyph is the one-character picture of a square.
func glyph(c CellState) byte {
	switch c {
	case Red:
		return 'r'
	case Blue:
		return 'b'
	case Blocked:
		return 'X'
	}
	return '-'
}

// Rows returns the board as Side strings of glyphs, row 7 first.
func (b *Board) Rows() []string {
	rows := make([]string, 0, Side)
	var line [Side]byte
	for row := Side - 1; row >= 0; row-- {
		for col := 0; col < Side; col++ {
			line[col] = glyph(b.Get(col, row))
		}
		rows = append(rows, string(line[:]))
	}
	return rows
}

// ParseRows is the inverse of Rows: it sets up a position from Side glyph
// rows, row 7 first, with toMove on move and an empty history. Blocks need
// not be symmetric. The game is decided at once if the position is over.
func ParseRows(toMove CellState, rows []string) (*Board, error) {
	if toMove != Red && toMove != Blue {
		return nil, fmt.Errorf("%w: %v cannot be on move", ErrBadPosition, toMove)
	}
	if len(rows) != Side {
		return nil, fmt.Errorf("%w: need %d rows, got %d", ErrBadPosition, Side, len(rows))
	}
	b := NewBoard()
	for i, line := range rows {
		if len(line) != Side {
			return nil, fmt.Errorf("%w: row %d: need %d squares, got %q", ErrBadPosition, Side-i, Side, line)
		}
		row := Side - 1 - i
		for col := 0; col < Side; col++ {
			var c CellState
			switch line[col] {
			case 'r':
				c = Red
			case 'b':
				c = Blue
			case 'X':
				c = Blocked
			case '-':
				c = Empty
			default:
				return nil, fmt.Errorf("%w: bad glyph %q at %s", ErrBadPosition, line[col], SquareName(col, row))
			}
			b.unrecordedSet(Index(col, row), c)
		}
	}
	b.toMove = toMove
	b.checkWinner()
	return b, nil
}

// Render draws the board from row 7 down to row 1. With legend, row
// numbers precede each line and column letters follow the last one.
func (b *Board) Render(legend bool) string {
	var sb strings.Builder
	for i, line := range b.Rows() {
		if legend {
			sb.WriteByte(byte('0' + Side - i))
		}
		sb.WriteByte(' ')
		for j := 0; j < len(line); j++ {
			sb.WriteByte(' ')
			sb.WriteByte(line[j])
		}
		sb.WriteByte('\n')
	}
	if legend {
		sb.WriteString("   a b c d e f g")
	}
	return sb.String()
}

func (b *Board) String() string {
	return b.Render(false)
}

// Snapshot is a serializable view of a board for clients.
type Snapshot struct {
	Rows     []string `json:"rows"`
	ToMove   string   `json:"to_move"`
	Red      int      `json:"red"`
	Blue     int      `json:"blue"`
	Open     int      `json:"open"`
	Jumps    int      `json:"jumps"`
	Moves    []Move   `json:"moves"`
	GameOver bool     `json:"game_over"`
	Winner   string   `json:"winner,omitempty"`
}

// Snapshot captures b's current state. Winner is "draw" for a drawn game
// and empty while the game goes on.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Rows:     b.Rows(),
		ToMove:   b.toMove.String(),
		Red:      b.RedPieces(),
		Blue:     b.BluePieces(),
		Open:     b.TotalOpen(),
		Jumps:    b.jumps,
		Moves:    b.History(),
		GameOver: b.gameOver,
	}
	if s.Moves == nil {
		s.Moves = []Move{}
	}
	if b.gameOver {
		s.Winner = "draw"
		if b.winner != Empty {
			s.Winner = b.winner.String()
		}
	}
	return s
}
