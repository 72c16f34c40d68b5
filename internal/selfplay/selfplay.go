// Package selfplay runs AI-versus-AI games in parallel.
package selfplay

import (
	"context"
	"encoding/binary"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"lukechampine.com/frand"

	"ataxx_go/internal/game"
)

// maxPlies drops a game that somehow never ends.
const maxPlies = 5000

type Options struct {
	Games    int
	Workers  int // 0 means one per CPU
	Openings int // random plies per side before the AI takes over
	Depth    int
	Seed     int64
	// Games First to First+Games-1 are played, except those in Skip, which
	// a resumed run has already recorded.
	First int
	Skip  map[int]bool
}

// Result is one finished game.
type Result struct {
	ID     int
	Winner game.CellState // Empty for a draw
	Plies  int
	Red    int
	Blue   int
	Think  time.Duration
	Moves  []game.Move
}

func (r Result) MoveList() string {
	return strings.Join(lo.Map(r.Moves, func(m game.Move, _ int) string { return m.String() }), " ")
}

// Summary aggregates results.
type Summary struct {
	Games     int
	RedWins   int
	BlueWins  int
	Draws     int
	MeanPlies float64
	StdPlies  float64
	MeanThink time.Duration
}

// gameRNG derives a game's random stream from the run seed and the game id
// so that results do not depend on which worker played the game.
func gameRNG(seed int64, id int) *frand.RNG {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[0:], uint64(seed))
	binary.LittleEndian.PutUint64(key[8:], uint64(id))
	return frand.NewCustom(key[:], 1024, 12)
}

// PlayOne plays game id to the end.
func PlayOne(id int, opts Options) (Result, bool) {
	rng := gameRNG(opts.Seed, id)
	b := game.NewBoard()
	addRandomOpening(b, opts.Openings, rng)

	ai := game.NewAI(opts.Seed+int64(id), game.WithDepth(opts.Depth))
	var think time.Duration
	for !b.GameOver() {
		if b.NumMoves() >= maxPlies {
			return Result{}, false
		}
		m := ai.FindBestMove(b)
		think += ai.LastStats().Elapsed
		if err := b.Apply(m); err != nil {
			log.Error().Err(err).Int("game", id).Msg("selfplay-illegal")
			return Result{}, false
		}
	}
	return Result{
		ID:     id,
		Winner: b.Winner(),
		Plies:  b.NumMoves(),
		Red:    b.RedPieces(),
		Blue:   b.BluePieces(),
		Think:  think,
		Moves:  b.History(),
	}, true
}

func addRandomOpening(b *game.Board, n int, rng *frand.RNG) {
	for i := 0; i < n; i++ {
		for side := 0; side < 2 && !b.GameOver(); side++ {
			moves := game.GenerateMoves(b, b.ToMove())
			m := game.Pass
			if len(moves) > 0 {
				m = moves[rng.Intn(len(moves))]
			}
			if err := b.Apply(m); err != nil {
				return
			}
		}
	}
}

// Run plays the games opts selects on a worker pool and hands every result
// to sink, which is never called concurrently. Results arrive in the order
// games finish, not in id order. It stops early when ctx is cancelled or
// sink fails.
func Run(ctx context.Context, opts Options, sink func(Result) error) (Summary, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	ids := make([]int, 0, max(opts.Games, 0))
	for id := opts.First; id < opts.First+opts.Games; id++ {
		if !opts.Skip[id] {
			ids = append(ids, id)
		}
	}
	log.Info().Int("games", len(ids)).Int("skipped", opts.Games-len(ids)).Int("workers", workers).Int("depth", opts.Depth).Msg("selfplay-start")

	jobs := make(chan int, workers*2)
	results := make(chan Result, workers*2)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for _, id := range ids {
			select {
			case jobs <- id:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var workersDone errgroup.Group
	for w := 0; w < workers; w++ {
		workersDone.Go(func() error {
			for id := range jobs {
				r, ok := PlayOne(id, opts)
				if !ok {
					continue
				}
				select {
				case results <- r:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		err := workersDone.Wait()
		close(results)
		return err
	})

	var all []Result
	g.Go(func() error {
		for r := range results {
			all = append(all, r)
			if err := sink(r); err != nil {
				return err
			}
			if len(all)%100 == 0 {
				log.Info().Int("done", len(all)).Int("of", len(ids)).Msg("selfplay-progress")
			}
		}
		return nil
	})

	err := g.Wait()
	return Summarize(all), err
}

// Summarize tallies outcomes and the spread of game lengths.
func Summarize(results []Result) Summary {
	s := Summary{Games: len(results)}
	if len(results) == 0 {
		return s
	}
	s.RedWins = lo.CountBy(results, func(r Result) bool { return r.Winner == game.Red })
	s.BlueWins = lo.CountBy(results, func(r Result) bool { return r.Winner == game.Blue })
	s.Draws = s.Games - s.RedWins - s.BlueWins

	plies := lo.Map(results, func(r Result, _ int) float64 { return float64(r.Plies) })
	s.MeanPlies, s.StdPlies = stat.MeanStdDev(plies, nil)
	think := lo.Map(results, func(r Result, _ int) float64 { return float64(r.Think) })
	s.MeanThink = time.Duration(stat.Mean(think, nil))
	return s
}
