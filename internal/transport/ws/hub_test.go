package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestConn(id string) *Connection {
	return &Connection{ID: id, Send: make(chan []byte, 8)}
}

func receive(t *testing.T, conn *Connection) Message {
	t.Helper()
	select {
	case data := <-conn.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	default:
		t.Fatalf("connection %s received nothing", conn.ID)
		return Message{}
	}
}

func TestHub_Broadcast_Reaches_Room_Members_Only(t *testing.T) {
	req := require.New(t)
	hub := NewHub()

	alice := newTestConn("alice")
	bob := newTestConn("bob")
	carol := newTestConn("carol")
	hub.add(alice)
	hub.add(bob)
	hub.add(carol)

	hub.Subscribe("alice", "ROOM01")
	hub.Subscribe("bob", "ROOM01")
	hub.Subscribe("carol", "ROOM02")

	hub.Broadcast("ROOM01", "room:updated", map[string]string{"hello": "world"})

	for _, conn := range []*Connection{alice, bob} {
		msg := receive(t, conn)
		req.Equal("room:updated", msg.Type)
		req.JSONEq(`{"hello":"world"}`, string(msg.Payload))
	}
	req.Empty(carol.Send)
}

func TestHub_SendTo_Targets_One_Connection(t *testing.T) {
	req := require.New(t)
	hub := NewHub()

	alice := newTestConn("alice")
	bob := newTestConn("bob")
	hub.add(alice)
	hub.add(bob)

	hub.SendTo("alice", "room:error", "room not found")

	msg := receive(t, alice)
	req.Equal("room:error", msg.Type)
	req.Empty(bob.Send)

	// Unknown targets are dropped silently
	hub.SendTo("ghost", "room:error", "nope")
}

func TestHub_Unsubscribe_Stops_Broadcasts(t *testing.T) {
	req := require.New(t)
	hub := NewHub()

	alice := newTestConn("alice")
	hub.add(alice)
	hub.Subscribe("alice", "ROOM01")
	hub.Unsubscribe("alice")

	hub.Broadcast("ROOM01", "room:updated", nil)
	req.Empty(alice.Send)
}

func TestHub_Resubscribe_Moves_Rooms(t *testing.T) {
	req := require.New(t)
	hub := NewHub()

	alice := newTestConn("alice")
	hub.add(alice)
	hub.Subscribe("alice", "ROOM01")
	hub.Subscribe("alice", "ROOM02")

	hub.Broadcast("ROOM01", "room:updated", nil)
	req.Empty(alice.Send)

	hub.Broadcast("ROOM02", "room:updated", nil)
	req.Len(alice.Send, 1)
}

func TestHub_Remove_Closes_Send_And_Leaves_Room(t *testing.T) {
	req := require.New(t)
	hub := NewHub()

	alice := newTestConn("alice")
	hub.add(alice)
	hub.Subscribe("alice", "ROOM01")
	hub.remove(alice)

	_, open := <-alice.Send
	req.False(open)

	// Broadcasting to the emptied room must not panic on the closed channel
	hub.Broadcast("ROOM01", "room:updated", nil)
}

func TestHub_Full_Buffer_Drops_Instead_Of_Blocking(t *testing.T) {
	hub := NewHub()

	slow := &Connection{ID: "slow", Send: make(chan []byte, 1)}
	hub.add(slow)

	hub.SendTo("slow", "timer:update", 10)
	hub.SendTo("slow", "timer:update", 9) // buffer full, dropped

	require.Len(t, slow.Send, 1)
}
