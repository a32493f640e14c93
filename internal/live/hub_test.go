package live

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, hub *Hub, userID string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, userID)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_BroadcastReachesOnlyThatUser(t *testing.T) {
	hub := NewHub()
	alice := dial(t, hub, "alice")
	bob := dial(t, hub, "bob")

	require.Eventually(t, func() bool {
		return hub.Subscribers("alice") == 1 && hub.Subscribers("bob") == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.Broadcast("alice", Message{Type: "stats", Data: map[string]int{"totalFlights": 3}})

	var got map[string]any
	alice.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, alice.ReadJSON(&got))
	assert.Equal(t, "stats", got["type"])
	assert.Equal(t, map[string]any{"totalFlights": float64(3)}, got["data"])

	bob.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err := bob.ReadMessage()
	assert.Error(t, err)
}

func TestHub_UnsubscribesOnClose(t *testing.T) {
	hub := NewHub()
	conn := dial(t, hub, "alice")

	require.Eventually(t, func() bool { return hub.Subscribers("alice") == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Subscribers("alice") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastWithoutSubscribers(t *testing.T) {
	hub := NewHub()
	hub.Broadcast("nobody", Message{Type: "stats"})
	assert.Zero(t, hub.Subscribers("nobody"))
}
