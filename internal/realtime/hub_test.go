package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(h *Hub) *Client {
	c := NewClient(h, nil, nil)
	h.Register(c)
	return c
}

func drain(c *Client) []Event {
	var events []Event
	for {
		select {
		case e := <-c.send:
			events = append(events, e)
		default:
			return events
		}
	}
}

func TestBroadcastReachesRoomMembersOnly(t *testing.T) {
	hub := NewHub()
	watcher1 := newTestClient(hub)
	watcher2 := newTestClient(hub)
	outsider := newTestClient(hub)

	hub.JoinSession(watcher1, "abc123")
	hub.JoinSession(watcher2, "abc123")
	hub.JoinSession(outsider, "other")

	hub.BroadcastPlayed("abc123", "₹100")

	for _, c := range []*Client{watcher1, watcher2} {
		events := drain(c)
		require.Len(t, events, 1)
		assert.Equal(t, EventPlayed, events[0].Type)
		assert.Equal(t, "abc123", events[0].SessionID)
		assert.Equal(t, "₹100", events[0].Result)
	}
	assert.Empty(t, drain(outsider))
}

func TestBroadcastToEmptyRoomIsNoop(t *testing.T) {
	hub := NewHub()
	hub.BroadcastPlayed("nobody-here", "₹8")
	assert.Equal(t, 0, hub.RoomSize("nobody-here"))
}

func TestJoinSwitchesRooms(t *testing.T) {
	hub := NewHub()
	c := newTestClient(hub)

	hub.JoinSession(c, "first")
	hub.JoinSession(c, "second")

	assert.Equal(t, 0, hub.RoomSize("first"))
	assert.Equal(t, 1, hub.RoomSize("second"))

	hub.BroadcastPlayed("first", "₹50")
	assert.Empty(t, drain(c))

	hub.BroadcastPlayed("second", "₹50")
	assert.Len(t, drain(c), 1)
}

func TestSendResultTargetsSingleClient(t *testing.T) {
	hub := NewHub()
	player := newTestClient(hub)
	watcher := newTestClient(hub)
	hub.JoinSession(player, "s1")
	hub.JoinSession(watcher, "s1")

	hub.SendResult(player, "s1", "₹300")

	events := drain(player)
	require.Len(t, events, 1)
	assert.Equal(t, EventPrizeResult, events[0].Type)
	assert.Equal(t, "₹300", events[0].Result)
	assert.Empty(t, drain(watcher))
}

func TestSlowClientIsDropped(t *testing.T) {
	hub := NewHub()
	slow := newTestClient(hub)
	hub.JoinSession(slow, "s1")

	// Fill the send buffer without reading.
	for i := 0; i < sendBufferSize; i++ {
		hub.BroadcastPlayed("s1", "₹8")
	}
	assert.Equal(t, 1, hub.RoomSize("s1"))

	// One more overflows the buffer and evicts the client.
	hub.BroadcastPlayed("s1", "₹8")
	assert.Equal(t, 0, hub.RoomSize("s1"))

	// Channel is closed by the eviction.
	_, open := <-slow.send
	for open {
		_, open = <-slow.send
	}
}

func TestUnregisterIsIdempotent(t *testing.T) {
	hub := NewHub()
	c := newTestClient(hub)
	hub.JoinSession(c, "s1")

	hub.Unregister(c)
	hub.Unregister(c)

	assert.Equal(t, 0, hub.RoomSize("s1"))

	// Messages to a removed client are dropped silently.
	hub.SendResult(c, "s1", "₹8")
}
