package sessions

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/nestwatch/nestwatch-api/api/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The API already serves any origin; the socket carries no credentials
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// Events streams session snapshots over a websocket
// @Summary Stream session snapshots
// @Description Upgrades to a websocket and pushes a full session snapshot after every state change. The current snapshot is sent immediately on connect. Slow consumers may miss intermediate snapshots; each message is the complete current state.
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 101 {string} string "Switching Protocols"
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/sessions/{id}/events [get]
func Events(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := getSession(c, deps)
		if !ok {
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ERROR] Websocket upgrade failed for session %s: %v", sess.ID(), err)
			return
		}

		updates := sess.Subscribe()
		defer func() {
			sess.Unsubscribe(updates)
			conn.Close()
		}()

		// Reader goroutine: we never expect client messages, but reading is
		// how we learn the peer has gone away
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		// Initial state so the client need not make a separate GET
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(sess.Snapshot()); err != nil {
			return
		}

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case snap, open := <-updates:
				if !open {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(snap); err != nil {
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}
}
