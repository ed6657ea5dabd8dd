package database

import "time"

type User struct {
	Id              string
	Name            string
	Handle          string
	CreatedDate     time.Time
	LastUpdatedDate time.Time
}

type Chatroom struct {
	Id              string
	Name            string
	CreatedDate     time.Time
	LastUpdatedDate time.Time
}

type Participant struct {
	Id              string
	UserId          string
	ChatroomId      string
	CreatedDate     time.Time
	LastUpdatedDate time.Time
}

type Message struct {
	Id              string
	MessageText     string
	UserId          string
	ChatroomId      string
	IsReply         bool
	ParentMessageId *string
	CreatedDate     time.Time
	LastUpdatedDate time.Time
}

// UserChatroom is a chatroom joined with the participant row that links a
// user to it.
type UserChatroom struct {
	Chatroom
	JoinedDate time.Time
}

type CreateUserParams struct {
	Name   string
	Handle string
}

type UpdateUserParams struct {
	UserId string
	Name   string
	Handle string
}

type CreateMessageParams struct {
	MessageText     string
	UserId          string
	ChatroomId      string
	IsReply         bool
	ParentMessageId *string
}
