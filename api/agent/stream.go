package agentapi

import (
	"fmt"
	"net/http"

	"github.com/beka-birhanu/vinom-agent/api/identity"
	"github.com/beka-birhanu/vinom-agent/game"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// streamMessage is what the server writes for every percept it reads.
type streamMessage struct {
	Action game.Action `json:"action,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// stream upgrades to a websocket and answers JSON percepts with JSON actions until the agent
// climbs out, a step fails or the client goes away.
func (c *Controller) stream(ctx *gin.Context) {
	sessionID, err := identity.SessionID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Warning(fmt.Sprintf("websocket upgrade failed: %v", err))
		return
	}
	defer conn.Close()

	c.logger.Info(fmt.Sprintf("session %s streaming from %s", sessionID, ctx.Request.RemoteAddr))

	for {
		var percept game.Percept
		if err := conn.ReadJSON(&percept); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warning(fmt.Sprintf("session %s stream closed: %v", sessionID, err))
			}
			return
		}

		action, err := c.sessions.Step(ctx, sessionID, percept)
		if err != nil {
			_ = conn.WriteJSON(streamMessage{Error: err.Error()})
			closeNormally(conn)
			return
		}

		if err := conn.WriteJSON(streamMessage{Action: action}); err != nil {
			c.logger.Warning(fmt.Sprintf("session %s write failed: %v", sessionID, err))
			return
		}
		if action == game.Climb {
			closeNormally(conn)
			return
		}
	}
}

func closeNormally(conn *websocket.Conn) {
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "episode over"))
}
