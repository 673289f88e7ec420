package server

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/TommyGymer/mdns-client/internal/logging"
	"github.com/TommyGymer/mdns-client/internal/metrics"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait).
	pingPeriod = (pongWait * 9) / 10

	// watchInterval is how often the live feed re-checks the store for
	// changes.
	watchInterval = 500 * time.Millisecond

	// maxSubscriberMessage caps what a subscriber may send; the feed is
	// one-way and only control frames are expected back.
	maxSubscriberMessage = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is read-only and carries no credentials, so any origin
	// may subscribe.
	CheckOrigin: func(*http.Request) bool { return true },
}

// handleWS upgrades the connection and streams the record table: one
// snapshot on connect, then a message whenever the table changes.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("websocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	metrics.WebsocketClients.Inc()
	logging.Info("websocket subscriber connected",
		zap.String("remote_addr", r.RemoteAddr),
	)

	go s.readLoop(conn)
	s.writeLoop(conn)

	metrics.WebsocketClients.Dec()
	logging.Info("websocket subscriber disconnected",
		zap.String("remote_addr", r.RemoteAddr),
	)
}

// readLoop drains the connection so close frames and pongs get
// processed. Anything else a subscriber sends is discarded. Closing the
// connection here unblocks the write loop.
func (s *Server) readLoop(conn *websocket.Conn) {
	defer conn.Close()

	conn.SetReadLimit(maxSubscriberMessage)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop pushes table snapshots until the subscriber goes away or the
// server shuts down.
func (s *Server) writeLoop(conn *websocket.Conn) {
	watch := time.NewTicker(watchInterval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		watch.Stop()
		ping.Stop()
		conn.Close()
	}()

	var last []byte
	send := func() error {
		payload, err := s.payload()
		if err != nil {
			return err
		}
		if bytes.Equal(payload, last) {
			return nil
		}
		last = payload
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteMessage(websocket.TextMessage, payload)
	}

	// Initial snapshot so a new subscriber renders immediately.
	if err := send(); err != nil {
		return
	}

	for {
		select {
		case <-s.quit:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		case <-watch.C:
			if err := send(); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
