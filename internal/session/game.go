// Package session wraps a board and its AI behind a mutex so that the HTTP
// API, the websocket hub and the shell all mutate a game along one path.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"ataxx_go/internal/game"
)

var (
	ErrGameOver = errors.New("game is over")
	ErrNotFound = errors.New("game not found")
)

// ActionBoardChanged is the broadcast action carrying a fresh snapshot.
const ActionBoardChanged = "board-changed"

// Broadcaster fans a game's events out to its subscribers.
type Broadcaster interface {
	Broadcast(gameID string, action string, data interface{})
}

// Settings configure the AI of a game.
type Settings struct {
	Depth       int
	Seed        int64
	ShuffleRoot bool
}

func (s Settings) newAI() *game.AI {
	return game.NewAI(s.Seed, game.WithDepth(s.Depth), game.WithRootShuffle(s.ShuffleRoot))
}

// Game is one board with its AI.
type Game struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	board    *game.Board
	ai       *game.AI
	settings Settings
}

// NewGame starts a game in the initial position.
func NewGame(s Settings) *Game {
	if s.Depth < 1 {
		s.Depth = game.DefaultDepth
	}
	s.Depth = min(s.Depth, game.MaxDepth)
	g := &Game{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		board:     game.NewBoard(),
		ai:        s.newAI(),
		settings:  s,
	}
	log.Debug().Str("game", g.ID).Int("depth", s.Depth).Msg("game-created")
	return g
}

// Attach publishes a snapshot to b after every change of the board. A nil
// b detaches.
func (g *Game) Attach(b Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if b == nil {
		g.board.SetNotifier(nil)
		return
	}
	id := g.ID
	g.board.SetNotifier(func(board *game.Board) {
		b.Broadcast(id, ActionBoardChanged, board.Snapshot())
	})
}

// Play applies a move in text form for the side to move.
func (g *Game) Play(text string) (game.Move, error) {
	m, err := game.ParseMove(text)
	if err != nil {
		return game.Move{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.board.GameOver() {
		return game.Move{}, ErrGameOver
	}
	if err := g.board.Apply(m); err != nil {
		return game.Move{}, err
	}
	log.Debug().Str("game", g.ID).Str("move", m.String()).Msg("move-played")
	return m, nil
}

// PlayAI lets the AI move for the side to move and reports how long it
// thought.
func (g *Game) PlayAI() (game.Move, time.Duration, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.board.GameOver() {
		return game.Move{}, 0, ErrGameOver
	}
	start := time.Now()
	m := g.ai.FindBestMove(g.board)
	elapsed := time.Since(start)
	if err := g.board.Apply(m); err != nil {
		// the AI only returns legal moves
		return game.Move{}, elapsed, fmt.Errorf("ai chose %s: %w", m, err)
	}
	stats := g.ai.LastStats()
	log.Info().
		Str("game", g.ID).
		Str("move", m.String()).
		Int("score", stats.Score).
		Uint64("nodes", stats.Nodes).
		Dur("elapsed", elapsed).
		Msg("ai-moved")
	return m, elapsed, nil
}

// Undo takes back the last move.
func (g *Game) Undo() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Undo()
}

// Block places a block, with its reflections, on a square such as "c5".
func (g *Game) Block(square string) error {
	col, row, err := game.ParseSquare(square)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.SetBlock(col, row)
}

// Replay plays moves in order. On the first failure the moves already
// played by this call are taken back and the error names the bad move.
func (g *Game) Replay(moves []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, text := range moves {
		err := g.replayOne(text)
		if err == nil {
			continue
		}
		for j := 0; j < i; j++ {
			if uerr := g.board.Undo(); uerr != nil {
				return uerr
			}
		}
		return fmt.Errorf("move %d (%s): %w", i+1, text, err)
	}
	return nil
}

func (g *Game) replayOne(text string) error {
	m, err := game.ParseMove(text)
	if err != nil {
		return err
	}
	if g.board.GameOver() {
		return ErrGameOver
	}
	return g.board.Apply(m)
}

// Reset returns to the starting position, dropping blocks and history.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.board.Clear()
}

// SetDepth replaces the AI with one searching depth plies.
func (g *Game) SetDepth(depth int) error {
	if depth < 1 || depth > game.MaxDepth {
		return fmt.Errorf("depth %d: must be between 1 and %d", depth, game.MaxDepth)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.settings.Depth = depth
	g.ai = g.settings.newAI()
	return nil
}

func (g *Game) Depth() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settings.Depth
}

// LegalMoves lists the moves available to the side to move.
func (g *Game) LegalMoves() []game.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.board.GameOver() {
		return []game.Move{}
	}
	moves := game.GenerateMoves(g.board, g.board.ToMove())
	if len(moves) == 0 && g.board.LegalMove(game.Pass) {
		moves = append(moves, game.Pass)
	}
	return moves
}

func (g *Game) Snapshot() game.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Snapshot()
}

func (g *Game) Render() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Render(true)
}

// GameOver reports whether the game has ended.
func (g *Game) GameOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.GameOver()
}
