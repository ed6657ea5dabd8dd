package server

import (
	"time"

	"github.com/chattyhq/chatty/internal/types"
)

// ClientMessage is the envelope for events a connection sends to the
// dispatcher. Exactly one of the event fields is set.
type ClientMessage struct {
	Join  *JoinRequest  `json:"join,omitempty"`
	Leave *LeaveRequest `json:"leave,omitempty"`
}

type JoinRequest struct {
	UserId     string `json:"user_id"`
	ChatroomId string `json:"chatroom_id"`
}

type LeaveRequest struct {
	UserId     string `json:"user_id"`
	ChatroomId string `json:"chatroom_id"`
}

// ServerMessage is the envelope for events sent to a connection. Exactly one
// of the event fields is set.
type ServerMessage struct {
	Joined     *RoomAck       `json:"joined,omitempty"`
	Left       *RoomAck       `json:"left,omitempty"`
	Error      *ErrorEvent    `json:"error,omitempty"`
	NewMessage *types.Message `json:"new_message,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

type RoomAck struct {
	ChatroomId string `json:"chatroom_id"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}

func JoinedAck(chatroomId string) *ServerMessage {
	return &ServerMessage{
		Joined:    &RoomAck{ChatroomId: chatroomId},
		Timestamp: Now(),
	}
}

func LeftAck(chatroomId string) *ServerMessage {
	return &ServerMessage{
		Left:      &RoomAck{ChatroomId: chatroomId},
		Timestamp: Now(),
	}
}

func ErrMissingFields() *ServerMessage {
	return &ServerMessage{
		Error:     &ErrorEvent{Message: "user_id and chatroom_id are required"},
		Timestamp: Now(),
	}
}

func ErrInvalidMessage() *ServerMessage {
	return &ServerMessage{
		Error:     &ErrorEvent{Message: "invalid message format"},
		Timestamp: Now(),
	}
}

func NewMessageEvent(msg types.Message) *ServerMessage {
	return &ServerMessage{
		NewMessage: &msg,
		Timestamp:  Now(),
	}
}

func Now() time.Time {
	return time.Now().UTC().Round(time.Millisecond)
}
