package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"weather-map/internal/session"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	// Events buffered per page before new ones are dropped
	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// clientMessage is a request from the map page
type clientMessage struct {
	Type string  `json:"type"` // "locate" or "click"
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// pageClient is the websocket connection of one map page
type pageClient struct {
	conn      *websocket.Conn
	send      chan []byte
	ip        string
	closeOnce sync.Once
	closeConn func() error
	logger    *slog.Logger
}

// handleSession upgrades to a websocket and runs a page session on it until
// the page disconnects. The visitor is located as soon as the page connects.
func (app *App) handleSession(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		app.logger.Error("failed to upgrade websocket connection", "error", err)
		return
	}

	client := &pageClient{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		ip:     c.ClientIP(),
		logger: app.logger.With("component", "ws", "client_ip", c.ClientIP()),
	}
	client.closeConn = conn.Close

	sess := session.New(app.logger, app.locationService, app.renderService, client.publish, app.sessionOptions)

	go client.writePump()

	sess.Locate(client.ip)
	client.readPump(sess)

	// no events are published once Close returns
	sess.Close()
	close(client.send)
}

// publish queues an event for the page. A page that is not keeping up
// loses clock ticks and is disconnected on any other event.
func (p *pageClient) publish(event session.Event) {
	message, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal event", "type", event.Type, "error", err)
		return
	}

	select {
	case p.send <- message:
		return
	default:
	}

	if event.Type == session.EventClock {
		p.logger.Debug("send buffer full, dropping clock tick", "seq", event.Seq)
		return
	}

	p.closeOnce.Do(func() {
		p.logger.Warn("send buffer full, disconnecting slow page", "type", event.Type, "seq", event.Seq)
		_ = p.closeConn()
	})
}

// readPump feeds page requests to the session until the connection closes
func (p *pageClient) readPump(sess *session.Session) {
	defer func() {
		_ = p.conn.Close()
	}()

	p.conn.SetReadLimit(maxMessageSize)
	_ = p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				p.logger.Error("websocket connection error", "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			p.logger.Warn("invalid client message", "error", err)
			continue
		}

		switch msg.Type {
		case "locate":
			sess.Locate(p.ip)
		case "click":
			if _, err := sess.Click(msg.X, msg.Y); err != nil {
				p.logger.Debug("click rejected", "x", msg.X, "y", msg.Y, "error", err)
			}
		default:
			p.logger.Warn("unknown client message type", "type", msg.Type)
		}
	}
}

// writePump writes queued events and keepalive pings to the connection
func (p *pageClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = p.conn.Close()
	}()

	for {
		select {
		case message, ok := <-p.send:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := p.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
