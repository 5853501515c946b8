package connection

import (
	"errors"
	"time"
)

// Errors
var (
	ErrStaleConnection = errors.New("connection stale (no ping)")
	ErrAlreadyClosed   = errors.New("already closed")
)

// ClientConfig configures an estimate stream client.
type ClientConfig struct {
	URL          string        // Stream URL (e.g., ws://localhost:8080/ws/estimate)
	Origin       string        // Origin header sent during the handshake (empty = none)
	UserAgent    string        // User-Agent header sent during the handshake
	PingTimeout  time.Duration // Max time without ping/pong before considering connection stale
	WriteTimeout time.Duration // Write deadline for control frames
	BufferSize   int           // Estimate channel buffer size
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		PingTimeout:  90 * time.Second,
		WriteTimeout: 5 * time.Second,
		BufferSize:   64,
	}
}
