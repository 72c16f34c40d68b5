package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"ataxx_go/internal/api/ws"
	"ataxx_go/internal/game"
	"ataxx_go/internal/session"
)

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrMalformedMove):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrIllegalMove),
		errors.Is(err, game.ErrIllegalBlock),
		errors.Is(err, game.ErrUndoUnderflow),
		errors.Is(err, session.ErrGameOver):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// withGame resolves :id before calling next.
func withGame(store session.Store, next func(*gin.Context, *session.Game)) gin.HandlerFunc {
	return func(c *gin.Context) {
		g, ok := store.Get(c.Param("id"))
		if !ok {
			fail(c, session.ErrNotFound)
			return
		}
		next(c, g)
	}
}

// CreateGameHandler starts a game. The body is optional.
func CreateGameHandler(store session.Store, hub *ws.Hub, defaults session.Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateGameRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		s := defaults
		if req.Depth > 0 {
			s.Depth = req.Depth
		}
		if req.Seed != 0 {
			s.Seed = req.Seed
		}
		s.ShuffleRoot = s.ShuffleRoot || req.ShuffleRoot

		g := session.NewGame(s)
		g.Attach(hub)
		store.Save(g)
		c.JSON(http.StatusCreated, gin.H{"id": g.ID, "game": g.Snapshot()})
	}
}

func GetGameHandler(store session.Store) gin.HandlerFunc {
	return withGame(store, func(c *gin.Context, g *session.Game) {
		c.JSON(http.StatusOK, gin.H{"id": g.ID, "game": g.Snapshot(), "board": g.Render()})
	})
}

func DeleteGameHandler(store session.Store) gin.HandlerFunc {
	return withGame(store, func(c *gin.Context, g *session.Game) {
		g.Attach(nil)
		store.Delete(g.ID)
		c.Status(http.StatusNoContent)
	})
}

func LegalMovesHandler(store session.Store) gin.HandlerFunc {
	return withGame(store, func(c *gin.Context, g *session.Game) {
		c.JSON(http.StatusOK, gin.H{"moves": g.LegalMoves()})
	})
}

func MoveHandler(store session.Store) gin.HandlerFunc {
	return withGame(store, func(c *gin.Context, g *session.Game) {
		var req MoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "move required"})
			return
		}
		m, err := g.Play(req.Move)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"move": m, "game": g.Snapshot()})
	})
}

func AIMoveHandler(store session.Store) gin.HandlerFunc {
	return withGame(store, func(c *gin.Context, g *session.Game) {
		m, elapsed, err := g.PlayAI()
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"move":       m,
			"elapsed_ms": elapsed.Milliseconds(),
			"game":       g.Snapshot(),
		})
	})
}

func UndoHandler(store session.Store) gin.HandlerFunc {
	return withGame(store, func(c *gin.Context, g *session.Game) {
		if err := g.Undo(); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": g.Snapshot()})
	})
}

func BlockHandler(store session.Store) gin.HandlerFunc {
	return withGame(store, func(c *gin.Context, g *session.Game) {
		var req BlockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cell required"})
			return
		}
		if err := g.Block(req.Cell); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": g.Snapshot()})
	})
}

func ReplayHandler(store session.Store) gin.HandlerFunc {
	return withGame(store, func(c *gin.Context, g *session.Game) {
		var req ReplayRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "moves required"})
			return
		}
		if err := g.Replay(req.Moves); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": g.Snapshot()})
	})
}

func ResetHandler(store session.Store) gin.HandlerFunc {
	return withGame(store, func(c *gin.Context, g *session.Game) {
		g.Reset()
		c.JSON(http.StatusOK, gin.H{"game": g.Snapshot()})
	})
}
