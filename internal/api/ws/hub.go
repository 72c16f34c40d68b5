package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"ataxx_go/internal/session"
)

// client serialises writes to one connection; gorilla allows a single
// concurrent writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

type message struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Hub keeps the websocket subscribers of every game.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}
	store session.Store
}

func NewHub(store session.Store) *Hub {
	return &Hub{
		rooms: make(map[string]map[*client]struct{}),
		store: store,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWS upgrades GET /ws?game_id=... and serves the client's actions
// until it disconnects.
func (h *Hub) HandleWS(c *gin.Context) {
	gameID := c.Query("game_id")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing game_id"})
		return
	}
	g, ok := h.store.Get(gameID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": session.ErrNotFound.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws-upgrade-failed")
		return
	}
	cl := &client{conn: conn}
	h.join(gameID, cl)
	defer func() {
		h.leave(gameID, cl)
		_ = conn.Close()
	}()
	log.Debug().Str("game", gameID).Msg("ws-connected")

	if err := cl.send(gin.H{"action": session.ActionBoardChanged, "data": g.Snapshot()}); err != nil {
		return
	}

	for {
		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			log.Debug().Err(err).Str("game", gameID).Msg("ws-closed")
			return
		}
		if err := h.dispatch(g, msg); err != nil {
			_ = cl.send(gin.H{"action": "error", "data": gin.H{"error": err.Error()}})
		}
	}
}

// dispatch runs one client action. Board changes reach every subscriber
// through the game's notifier, so only failures are answered directly.
func (h *Hub) dispatch(g *session.Game, msg message) error {
	switch msg.Action {
	case "move":
		var req struct {
			Move string `json:"move"`
		}
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			return err
		}
		_, err := g.Play(req.Move)
		return err
	case "ai":
		_, _, err := g.PlayAI()
		return err
	case "undo":
		return g.Undo()
	case "snapshot":
		h.Broadcast(g.ID, session.ActionBoardChanged, g.Snapshot())
		return nil
	}
	log.Debug().Str("action", msg.Action).Msg("ws-unknown-action")
	return errUnknownAction(msg.Action)
}

type errUnknownAction string

func (e errUnknownAction) Error() string { return "unknown action: " + string(e) }

func (h *Hub) join(gameID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[gameID]; !ok {
		h.rooms[gameID] = make(map[*client]struct{})
	}
	h.rooms[gameID][cl] = struct{}{}
}

func (h *Hub) leave(gameID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[gameID], cl)
	if len(h.rooms[gameID]) == 0 {
		delete(h.rooms, gameID)
	}
}

// Subscribers returns the number of clients watching gameID.
func (h *Hub) Subscribers(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[gameID])
}

// Broadcast sends {action, data} to every subscriber of gameID, dropping
// clients whose connection fails.
func (h *Hub) Broadcast(gameID string, action string, data interface{}) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[gameID]))
	for cl := range h.rooms[gameID] {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	msg := gin.H{"action": action, "data": data}
	for _, cl := range clients {
		if err := cl.send(msg); err != nil {
			log.Debug().Err(err).Str("game", gameID).Msg("ws-send-failed")
			_ = cl.conn.Close()
			h.leave(gameID, cl)
		}
	}
}
