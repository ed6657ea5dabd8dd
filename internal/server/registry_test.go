package server

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomRegistry_Join(t *testing.T) {
	rr := NewRoomRegistry()

	assert.True(t, rr.Join("conn-1", "room-1"), "expected first join to report newly added")
	assert.False(t, rr.Join("conn-1", "room-1"), "expected repeat join to be a no-op")

	assert.ElementsMatch(t, []string{"conn-1"}, rr.Members("room-1"), "expected room to have one member")
	assert.ElementsMatch(t, []string{"room-1"}, rr.Rooms("conn-1"), "expected session to track the joined room")
}

func TestRoomRegistry_Leave(t *testing.T) {
	rr := NewRoomRegistry()

	assert.False(t, rr.Leave("conn-1", "room-1"), "expected leave of unknown room to be a no-op")

	rr.Join("conn-1", "room-1")
	rr.Join("conn-2", "room-1")

	assert.True(t, rr.Leave("conn-1", "room-1"), "expected leave to report membership removed")
	assert.False(t, rr.Leave("conn-1", "room-1"), "expected repeat leave to be a no-op")

	assert.ElementsMatch(t, []string{"conn-2"}, rr.Members("room-1"), "expected remaining member to be unaffected")
	assert.Empty(t, rr.Rooms("conn-1"), "expected session entry to be cleared")
}

func TestRoomRegistry_Leave_PrunesEmptyRoom(t *testing.T) {
	rr := NewRoomRegistry()

	rr.Join("conn-1", "room-1")
	assert.Equal(t, 1, rr.NumRooms(), "expected one active room")

	rr.Leave("conn-1", "room-1")
	assert.Equal(t, 0, rr.NumRooms(), "expected empty room to be pruned")
	assert.Empty(t, rr.Members("room-1"), "expected no members after prune")
}

func TestRoomRegistry_InverseIndexConsistency(t *testing.T) {
	rr := NewRoomRegistry()

	rr.Join("conn-1", "room-1")
	rr.Join("conn-1", "room-2")
	rr.Join("conn-2", "room-1")

	for _, roomId := range rr.Rooms("conn-1") {
		assert.Containsf(t, rr.Members(roomId), "conn-1",
			"expected room %q members to include conn-1", roomId)
	}
	for _, connId := range rr.Members("room-1") {
		assert.Containsf(t, rr.Rooms(connId), "room-1",
			"expected connection %q session to include room-1", connId)
	}
}

func TestRoomRegistry_DropConnection(t *testing.T) {
	rr := NewRoomRegistry()

	assert.Nil(t, rr.DropConnection("unknown"), "expected drop of unknown connection to be a no-op")

	rr.Join("conn-1", "room-1")
	rr.Join("conn-1", "room-2")
	rr.Join("conn-2", "room-1")

	left := rr.DropConnection("conn-1")
	assert.ElementsMatch(t, []string{"room-1", "room-2"}, left, "expected drop to report every room left")

	assert.Empty(t, rr.Rooms("conn-1"), "expected session entry to be cleared")
	assert.ElementsMatch(t, []string{"conn-2"}, rr.Members("room-1"), "expected other members to survive")
	assert.Equal(t, 1, rr.NumRooms(), "expected room-2 to be pruned once empty")

	assert.Nil(t, rr.DropConnection("conn-1"), "expected repeat drop to be a no-op")
}

func TestRoomRegistry_MembersSnapshot(t *testing.T) {
	rr := NewRoomRegistry()

	rr.Join("conn-1", "room-1")
	rr.Join("conn-2", "room-1")

	snapshot := rr.Members("room-1")
	assert.Len(t, snapshot, 2, "expected snapshot of both members")

	// Mutations after the snapshot must not be visible in it.
	rr.Leave("conn-2", "room-1")
	rr.Join("conn-3", "room-1")

	assert.ElementsMatch(t, []string{"conn-1", "conn-2"}, snapshot,
		"expected snapshot to be isolated from later joins and leaves")
}

func TestRoomRegistry_ConcurrentAccess(t *testing.T) {
	rr := NewRoomRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			connId := fmt.Sprintf("conn-%d", n)
			for j := 0; j < 100; j++ {
				roomId := fmt.Sprintf("room-%d", j%4)
				rr.Join(connId, roomId)
				rr.Members(roomId)
				rr.Leave(connId, roomId)
			}
			rr.DropConnection(connId)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, rr.NumRooms(), "expected all rooms empty after every connection dropped")
}
