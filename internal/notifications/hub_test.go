package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"matchboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterLimits(t *testing.T) {
	hub := NewHub()
	for i := 0; i < maxConnsPerSession; i++ {
		_, err := hub.Register("s1", nil)
		require.NoError(t, err)
	}
	_, err := hub.Register("s1", nil)
	assert.ErrorIs(t, err, ErrSessionConnLimit)

	_, err = hub.Register("s2", nil)
	assert.NoError(t, err)
	assert.Equal(t, maxConnsPerSession, hub.Subscribers("s1"))
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register("s1", nil)
	require.NoError(t, err)

	hub.UnregisterClient(client)
	hub.UnregisterClient(client)

	_, open := <-client.Send
	assert.False(t, open)
	assert.Zero(t, hub.Subscribers("s1"))
}

func TestHub_BroadcastOnlyReachesSession(t *testing.T) {
	hub := NewHub()
	a, err := hub.Register("s1", nil)
	require.NoError(t, err)
	b, err := hub.Register("s2", nil)
	require.NoError(t, err)

	hub.Broadcast("s1", "hello")

	assert.Equal(t, "hello", string(<-a.Send))
	assert.Empty(t, b.Send)

	hub.BroadcastAll("all")
	assert.Equal(t, "all", string(<-a.Send))
	assert.Equal(t, "all", string(<-b.Send))
}

func TestHub_TrySendDropsWhenFull(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register("s1", nil)
	require.NoError(t, err)

	for i := 0; i < cap(client.Send)+5; i++ {
		client.TrySend([]byte("x"))
	}
	assert.Len(t, client.Send, cap(client.Send))

	hub.UnregisterClient(client)
	assert.NotPanics(t, func() { client.TrySend([]byte("late")) })
}

func TestHub_StartWiringWithRedis(t *testing.T) {
	rdb := newTestRedis(t)
	n := NewNotifier(rdb)
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := hub.Register("s1", nil)
	require.NoError(t, err)
	require.NoError(t, hub.StartWiring(ctx, n))

	require.NoError(t, n.Publish(context.Background(), models.SessionEvent{Type: models.EventRefreshed, SessionID: "s1"}))

	select {
	case msg := <-client.Send:
		assert.Contains(t, string(msg), `"type":"refreshed"`)
	case <-time.After(time.Second):
		t.Fatal("event not forwarded to client")
	}
}

func TestHub_StartWiringInProcess(t *testing.T) {
	n := NewNotifier(nil)
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := hub.Register("s1", nil)
	require.NoError(t, err)
	require.NoError(t, hub.StartWiring(ctx, n))

	require.NoError(t, n.Publish(context.Background(), models.SessionEvent{Type: models.EventRefreshed, SessionID: "s1"}))
	assert.Contains(t, string(<-client.Send), `"session_id":"s1"`)
}

func TestHub_Shutdown(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register("s1", nil)
	require.NoError(t, err)

	require.NoError(t, hub.Shutdown(context.Background()))
	require.NoError(t, hub.Shutdown(context.Background()))

	_, open := <-client.Send
	assert.False(t, open)

	_, err = hub.Register("s1", nil)
	assert.ErrorIs(t, err, ErrServerConnLimit)

	assert.NotPanics(t, func() { hub.UnregisterClient(client) })
}

func TestClient_SendEventEncodesJSON(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register("s1", nil)
	require.NoError(t, err)

	toast := models.SuccessToast("Match accepted successfully")
	client.SendEvent(models.SessionEvent{Type: models.EventToast, SessionID: "s1", Toast: &toast})

	var got models.SessionEvent
	require.NoError(t, json.Unmarshal(<-client.Send, &got))
	assert.Equal(t, models.EventToast, got.Type)
	require.NotNil(t, got.Toast)
	assert.Equal(t, toast, *got.Toast)
}
