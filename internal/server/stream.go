package server

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rickgao/debtwatch/internal/realtime"
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

	// Estimates buffered per connection; older ones are dropped when full
	sendBuffer = 16
)

// offer queues est, discarding the oldest queued estimate when the buffer is
// full so a slow peer always receives the most recent value next.
func offer(send chan realtime.Estimate, est realtime.Estimate) {
	for {
		select {
		case send <- est:
			return
		default:
		}
		select {
		case <-send:
		default:
		}
	}
}

// handleEstimateStream upgrades to a websocket and pushes every emitted
// estimate as a JSON text message until the peer goes away.
func (s *Server) handleEstimateStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	send := make(chan realtime.Estimate, sendBuffer)
	handle := s.svc.SubscribeRealTimeEstimate(func(est realtime.Estimate) {
		offer(send, est)
	})
	defer s.svc.Unsubscribe(handle)

	logger := s.logger.With("subscription", handle, "remote_addr", r.RemoteAddr)
	logger.Info("estimate stream opened")

	closed := make(chan struct{})
	go s.readPump(conn, closed)

	// Send the current value right away so clients do not wait a tick.
	if est, ok := s.svc.Estimate(); ok {
		if err := writeEstimate(conn, est); err != nil {
			return
		}
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			logger.Info("estimate stream closed")
			return
		case est := <-send:
			if err := writeEstimate(conn, est); err != nil {
				logger.Debug("estimate write failed", "error", err)
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(writeWait)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

// readPump discards client messages and closes done when the peer goes away.
func (s *Server) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("estimate stream read error", "error", err)
			}
			return
		}
	}
}

func writeEstimate(conn *websocket.Conn, est realtime.Estimate) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(est)
}

// originMatchesHost reports whether an Origin header names the request host.
func originMatchesHost(origin, host string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	originHost := u.Host
	if h, _, err := net.SplitHostPort(originHost); err == nil {
		originHost = h
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.EqualFold(originHost, host)
}
