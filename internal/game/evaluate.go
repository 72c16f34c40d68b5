// file: internal/game/evaluate.go
package game

import "math"

const (
	// WinningValue is the magnitude of a won position before the depth
	// bonus is added. Positive favours Red.
	WinningValue = math.MaxInt32 - 20
	// infinity bounds every score a search of at most MaxDepth plies can
	// produce.
	infinity = math.MaxInt32
)

// Evaluator scores a position from Red's point of view: positive is good
// for Red, negative for Blue. winningValue is the magnitude to report for a
// decided game; it grows with the remaining depth so that quicker wins
// score higher.
type Evaluator func(b *Board, winningValue int) int

// MaterialScore is ±winningValue for a won game, 0 for a draw and Red's
// piece count minus Blue's otherwise.
func MaterialScore(b *Board, winningValue int) int {
	if b.GameOver() {
		switch b.Winner() {
		case Red:
			return winningValue
		case Blue:
			return -winningValue
		default:
			return 0
		}
	}
	return b.RedPieces() - b.BluePieces()
}
