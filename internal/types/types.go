package types

import (
	"time"
)

type User struct {
	Id              string    `json:"id"`
	Name            string    `json:"name"`
	Handle          string    `json:"handle"`
	CreatedDate     time.Time `json:"created_date"`
	LastUpdatedDate time.Time `json:"last_updated_date"`
}

type Chatroom struct {
	Id              string    `json:"id"`
	Name            string    `json:"name"`
	CreatedDate     time.Time `json:"created_date"`
	LastUpdatedDate time.Time `json:"last_updated_date"`
}

type Participant struct {
	Id              string    `json:"id"`
	UserId          string    `json:"user_id"`
	ChatroomId      string    `json:"chatroom_id"`
	CreatedDate     time.Time `json:"created_date"`
	LastUpdatedDate time.Time `json:"last_updated_date"`
}

type Message struct {
	Id              string    `json:"id"`
	MessageText     string    `json:"message_text"`
	UserId          string    `json:"user_id"`
	ChatroomId      string    `json:"chatroom_id"`
	IsReply         bool      `json:"is_reply"`
	ParentMessageId *string   `json:"parent_message_id"`
	CreatedDate     time.Time `json:"created_date"`
	LastUpdatedDate time.Time `json:"last_updated_date"`
}
