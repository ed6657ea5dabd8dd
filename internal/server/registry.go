package server

import (
	"sync"
)

// RoomRegistry tracks which live connections belong to which room. It keeps
// two maps that are exact inverses of each other: room id to the set of
// connection ids joined to it, and connection id to the set of rooms it has
// joined. The inverse index makes disconnect cleanup O(rooms joined) without
// the caller having to enumerate rooms.
//
// Registry membership is purely in-memory and says nothing about durable
// chatroom participation; it is lost on process restart.
type RoomRegistry struct {
	mu       sync.Mutex
	rooms    map[string]map[string]struct{}
	sessions map[string]map[string]struct{}
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms:    make(map[string]map[string]struct{}),
		sessions: make(map[string]map[string]struct{}),
	}
}

// Join adds the connection to the room's member set. It is idempotent and
// reports whether the connection was newly added.
func (rr *RoomRegistry) Join(connId, roomId string) bool {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	if _, ok := rr.rooms[roomId]; !ok {
		rr.rooms[roomId] = make(map[string]struct{})
	}
	if _, ok := rr.rooms[roomId][connId]; ok {
		return false
	}

	rr.rooms[roomId][connId] = struct{}{}
	if _, ok := rr.sessions[connId]; !ok {
		rr.sessions[connId] = make(map[string]struct{})
	}
	rr.sessions[connId][roomId] = struct{}{}

	return true
}

// Leave removes the connection from the room's member set. It is idempotent
// and reports whether the connection was a member. Empty room entries are
// pruned.
func (rr *RoomRegistry) Leave(connId, roomId string) bool {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	return rr.leaveLocked(connId, roomId)
}

func (rr *RoomRegistry) leaveLocked(connId, roomId string) bool {
	members, ok := rr.rooms[roomId]
	if !ok {
		return false
	}
	if _, ok := members[connId]; !ok {
		return false
	}

	delete(members, connId)
	if len(members) == 0 {
		delete(rr.rooms, roomId)
	}

	if roomSet, ok := rr.sessions[connId]; ok {
		delete(roomSet, roomId)
		if len(roomSet) == 0 {
			delete(rr.sessions, connId)
		}
	}

	return true
}

// DropConnection removes the connection from every room it has joined and
// clears its session entry. Safe to call for connections that never joined
// anything, and safe to call more than once. It returns the rooms the
// connection was removed from.
func (rr *RoomRegistry) DropConnection(connId string) []string {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	roomSet, ok := rr.sessions[connId]
	if !ok {
		return nil
	}

	left := make([]string, 0, len(roomSet))
	for roomId := range roomSet {
		left = append(left, roomId)
	}
	for _, roomId := range left {
		rr.leaveLocked(connId, roomId)
	}

	return left
}

// Members returns a point-in-time copy of the room's member set. The copy is
// what broadcast delivery iterates over, so joins and leaves that happen
// mid-delivery cannot affect it.
func (rr *RoomRegistry) Members(roomId string) []string {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	members, ok := rr.rooms[roomId]
	if !ok {
		return nil
	}

	snapshot := make([]string, 0, len(members))
	for connId := range members {
		snapshot = append(snapshot, connId)
	}

	return snapshot
}

// Rooms returns a copy of the set of rooms the connection has joined.
func (rr *RoomRegistry) Rooms(connId string) []string {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	roomSet, ok := rr.sessions[connId]
	if !ok {
		return nil
	}

	rooms := make([]string, 0, len(roomSet))
	for roomId := range roomSet {
		rooms = append(rooms, roomId)
	}

	return rooms
}

// NumRooms returns the number of rooms with at least one member.
func (rr *RoomRegistry) NumRooms() int {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	return len(rr.rooms)
}
