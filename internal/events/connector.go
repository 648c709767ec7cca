package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// Keepalive tuning for the backend event stream. The backend is expected
// to answer pings; a connection silent past readIdleTimeout is torn down
// and redialed.
const (
	readIdleTimeout = 60 * time.Second
	pingInterval    = 30 * time.Second
	pingWriteWait   = 10 * time.Second

	reconnectMinDelay = time.Second
	reconnectMaxDelay = time.Minute
)

// StreamConnector keeps a websocket subscription to the backend's podium
// event stream alive and feeds every frame to the consumer.
type StreamConnector struct {
	consumer *PodiumEventConsumer
	wsURL    string
}

// NewStreamConnector creates a connector for the given stream URL.
func NewStreamConnector(consumer *PodiumEventConsumer, wsURL string) *StreamConnector {
	return &StreamConnector{
		consumer: consumer,
		wsURL:    wsURL,
	}
}

// Start dials the stream and redials on failure with exponential backoff,
// until the context is cancelled. The backoff resets after any session
// that managed to read at least one frame.
func (c *StreamConnector) Start(ctx context.Context) error {
	log.Printf("[EVENTS] Subscribing to podium stream %s", c.wsURL)

	delay := reconnectMinDelay
	for {
		framesRead, err := c.session(ctx)
		if ctx.Err() != nil {
			log.Printf("[EVENTS] Podium stream subscription stopped")
			return ctx.Err()
		}
		if framesRead > 0 {
			delay = reconnectMinDelay
		}

		log.Printf("[EVENTS] Podium stream disconnected after %d frames: %v (redialing in %s)", framesRead, err, delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if delay > reconnectMaxDelay {
			delay = reconnectMaxDelay
		}
	}
}

// session runs one dial-read-close cycle and reports how many frames it
// consumed before the connection failed.
func (c *StreamConnector) session(ctx context.Context) (int, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.wsURL, nil)
	if err != nil {
		return 0, fmt.Errorf("dial %s: %w", c.wsURL, err)
	}
	defer conn.Close()

	log.Printf("[EVENTS] Connected to podium stream")

	if err := conn.SetReadDeadline(time.Now().Add(readIdleTimeout)); err != nil {
		return 0, fmt.Errorf("arm read deadline: %w", err)
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readIdleTimeout))
	})

	// The pinger owns its own lifetime: it stops when the session context
	// ends, and a failed ping kills the connection so the read loop below
	// unblocks with an error.
	pingCtx, stopPing := context.WithCancel(ctx)
	defer stopPing()
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-pingCtx.Done():
				return
			case <-ticker.C:
				deadline := time.Now().Add(pingWriteWait)
				if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
					conn.Close()
					return
				}
			}
		}
	}()

	frames := 0
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return frames, fmt.Errorf("read frame: %w", err)
		}
		frames++

		var event PodiumEvent
		if err := json.Unmarshal(message, &event); err != nil {
			log.Printf("[EVENTS] Dropping malformed frame: %v", err)
			continue
		}
		if err := c.consumer.HandleEvent(ctx, &event); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("[EVENTS] Event %s not applied: %v", event.Type, err)
		}
	}
}
