package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Gateway owns the connection lifecycle: upgrade, register, initial catalog
// push, the per-session read loop, and deregistration on disconnect. It never
// interprets command payloads itself.
type Gateway struct {
	registry  *Registry
	processor *Processor
	upgrader  websocket.Upgrader
}

func NewGateway(reg *Registry, proc *Processor) *Gateway {
	return &Gateway{
		registry:  reg,
		processor: proc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Browser clients connect from arbitrary dev origins; the
			// protocol carries no credentials.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (g *Gateway) Handle(c echo.Context) error {
	conn, err := g.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	sess := NewSession(conn)
	g.registry.Register(sess)
	c.Logger().Infof("session %s connected (%d live)", sess.ID(), g.registry.Len())

	g.serve(c, sess)
	return nil
}

// serve runs the session's read loop. Commands on one session are processed
// in arrival order; sessions run independently of each other, so a stalled
// write for one client never delays another. Command handling uses a
// background context: work already dispatched when the client disconnects
// still runs to completion, including its broadcast to the remaining
// sessions.
func (g *Gateway) serve(c echo.Context, sess *Session) {
	defer func() {
		g.registry.Deregister(sess)
		sess.Close()
		c.Logger().Infof("session %s disconnected (%d live)", sess.ID(), g.registry.Len())
	}()

	ctx := context.Background()
	g.processor.Snapshot(ctx, sess, g.registry)

	for {
		data, err := sess.ReadMessage()
		if err != nil {
			return
		}
		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil || env.Type == "" {
			g.registry.SendTo(sess, errorMessage("invalid message format"))
			continue
		}
		g.processor.Handle(ctx, env, sess, g.registry)
	}
}
