package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"ataxx_go/internal/api/ws"
	"ataxx_go/internal/session"
)

// NewRouter wires the game endpoints and the websocket hub. defaults fill
// in whatever a create request leaves out.
func NewRouter(store session.Store, hub *ws.Hub, defaults session.Settings) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/ws", hub.HandleWS)

	// --- GAME ENDPOINTS ---
	r.POST("/games", CreateGameHandler(store, hub, defaults))
	r.GET("/games/:id", GetGameHandler(store))
	r.GET("/games/:id/moves", LegalMovesHandler(store))
	r.POST("/games/:id/move", MoveHandler(store))
	r.POST("/games/:id/ai", AIMoveHandler(store))
	r.POST("/games/:id/undo", UndoHandler(store))
	r.POST("/games/:id/block", BlockHandler(store))
	r.POST("/games/:id/replay", ReplayHandler(store))
	r.POST("/games/:id/reset", ResetHandler(store))
	r.DELETE("/games/:id", DeleteGameHandler(store))

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("http-request")
	}
}
