// game/ai.go
package game

import (
	"encoding/binary"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// DefaultDepth is the number of plies searched before falling back to the
// static evaluation.
const DefaultDepth = 4

// MaxDepth keeps WinningValue plus the depth bonus within infinity.
const MaxDepth = infinity - WinningValue

// AI picks moves by depth-bounded minimax with alpha-beta pruning. Red is
// the maximizing side, Blue the minimizing one. An AI keeps per-search
// scratch state and must not be used from several goroutines at once.
type AI struct {
	depth       int
	eval        Evaluator
	rng         *frand.RNG
	shuffleRoot bool

	lastFound Move
	stats     SearchStats
}

// SearchStats describes the most recent call to FindBestMove.
type SearchStats struct {
	Move    Move
	Score   int
	Nodes   uint64
	Elapsed time.Duration
}

// Option configures an AI.
type Option func(*AI)

// WithDepth sets the search depth in plies. Values below 1 are ignored and
// values above MaxDepth are lowered to it.
func WithDepth(depth int) Option {
	return func(ai *AI) {
		if depth >= 1 {
			ai.depth = min(depth, MaxDepth)
		}
	}
}

// WithEvaluator replaces MaterialScore.
func WithEvaluator(eval Evaluator) Option {
	return func(ai *AI) {
		if eval != nil {
			ai.eval = eval
		}
	}
}

// WithRootShuffle makes the AI visit root moves in a random order drawn
// from its seeded generator, so that equal-valued moves vary between seeds.
func WithRootShuffle(on bool) Option {
	return func(ai *AI) { ai.shuffleRoot = on }
}

// NewAI returns an AI whose random generator is seeded from seed. Identical
// seeds and options give identical choices.
func NewAI(seed int64, opts ...Option) *AI {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	ai := &AI{
		depth: DefaultDepth,
		eval:  MaterialScore,
		rng:   frand.NewCustom(key[:], 1024, 12),
	}
	for _, opt := range opts {
		opt(ai)
	}
	return ai
}

// Depth returns the configured search depth.
func (ai *AI) Depth() int { return ai.depth }

// LastStats returns statistics for the most recent search.
func (ai *AI) LastStats() SearchStats { return ai.stats }

// FindBestMove returns a move for the side to move on b. It passes only
// when that side cannot move, even on a board the jump limit has already
// decided. b itself is never modified; the search runs on a private clone.
func (ai *AI) FindBestMove(b *Board) Move {
	start := time.Now()
	ai.stats = SearchStats{Move: Pass}
	if !b.CanMove(b.ToMove()) {
		return Pass
	}

	nb := b.Clone()
	ai.lastFound = Pass
	score := ai.minMax(nb, ai.depth, true, sense(nb.ToMove()), -infinity, infinity)

	ai.stats.Move = ai.lastFound
	ai.stats.Score = score
	ai.stats.Elapsed = time.Since(start)
	log.Debug().
		Str("side", b.ToMove().String()).
		Str("move", ai.lastFound.String()).
		Int("score", score).
		Int("depth", ai.depth).
		Uint64("nodes", ai.stats.Nodes).
		Dur("elapsed", ai.stats.Elapsed).
		Msg("search-done")
	return ai.lastFound
}

// sense is +1 for the maximizing side and -1 for the minimizing side.
func sense(player CellState) int {
	if player == Blue {
		return -1
	}
	return 1
}

// minMax returns the value of board searched depth plies deep, recording
// the best move in ai.lastFound when saveMove is set. With s == 1 the side
// to move maximizes and the result is at least beta on a cutoff; with
// s == -1 it minimizes and the result is at most alpha on a cutoff. board
// is restored before returning.
func (ai *AI) minMax(board *Board, depth int, saveMove bool, s, alpha, beta int) int {
	ai.stats.Nodes++
	// WinningValue+depth prefers quicker wins and slower losses. The root
	// is searched even when decided so that a legal move is still returned.
	if depth == 0 || (board.GameOver() && !saveMove) {
		return ai.eval(board, WinningValue+depth)
	}

	moves := GenerateMoves(board, board.ToMove())
	if len(moves) == 0 {
		return ai.forcedPass(board, depth, saveMove, s, alpha, beta)
	}
	if saveMove && ai.shuffleRoot {
		ai.rng.Shuffle(len(moves), func(i, j int) {
			moves[i], moves[j] = moves[j], moves[i]
		})
	}

	best := moves[0]
	bestScore := -s * infinity
	for _, m := range moves {
		mustApply(board, m)
		response := ai.minMax(board, depth-1, false, -s, alpha, beta)
		mustUndo(board)

		if s == 1 && response > bestScore {
			best, bestScore = m, response
			alpha = max(alpha, bestScore)
		} else if s == -1 && response < bestScore {
			best, bestScore = m, response
			beta = min(beta, bestScore)
		}
		if alpha >= beta {
			break
		}
	}
	if saveMove {
		ai.lastFound = best
	}
	return bestScore
}

// forcedPass handles a node whose side to move has pieces but no move while
// the game goes on: the pass is played and the opponent searched one ply
// shallower.
func (ai *AI) forcedPass(board *Board, depth int, saveMove bool, s, alpha, beta int) int {
	if saveMove {
		ai.lastFound = Pass
	}
	if !board.LegalMove(Pass) {
		return ai.eval(board, WinningValue+depth)
	}
	mustApply(board, Pass)
	score := ai.minMax(board, depth-1, false, -s, alpha, beta)
	mustUndo(board)
	return score
}

// mustApply and mustUndo are for moves the search generated itself; a
// failure means the board's apply/undo pairing is broken.
func mustApply(b *Board, m Move) {
	if err := b.Apply(m); err != nil {
		panic(err)
	}
}

func mustUndo(b *Board) {
	if err := b.Undo(); err != nil {
		panic(err)
	}
}
