package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamServer serves one websocket session per connection, sending the
// given frames and then closing.
func streamServer(t *testing.T, frames []string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		for _, frame := range frames {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestSession_ConsumesFramesUntilClose(t *testing.T) {
	srv := streamServer(t, []string{
		`{"type":"vote.created","fid":7}`,
		`not json`,
		`{"type":"brand.updated","brandId":3}`,
	})
	defer srv.Close()

	cache := &recordingCache{}
	c := NewStreamConnector(NewPodiumEventConsumer(cache), wsURL(srv))

	frames, err := c.session(context.Background())
	require.Error(t, err, "a server close ends the session with a read error")
	assert.Equal(t, 3, frames)

	// The malformed frame is dropped; the two events invalidate.
	invs := cache.invalidations()
	require.Len(t, invs, 2)
	assert.ElementsMatch(t, []string{"brands", "leaderboard"}, invs[0])
	assert.Equal(t, []string{"brands"}, invs[1])
}

func TestSession_DialFailure(t *testing.T) {
	cache := &recordingCache{}
	c := NewStreamConnector(NewPodiumEventConsumer(cache), "ws://127.0.0.1:1/stream")

	frames, err := c.session(context.Background())
	require.Error(t, err)
	assert.Zero(t, frames)
	assert.Empty(t, cache.invalidations())
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	cache := &recordingCache{}
	c := NewStreamConnector(NewPodiumEventConsumer(cache), "ws://127.0.0.1:1/stream")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("connector did not stop on cancellation")
	}
}
