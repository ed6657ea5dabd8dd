package database

type ChattyRepository interface {
	Ping() error

	CreateUser(params CreateUserParams) (User, error)
	GetUserById(userId string) (User, error)
	ListUsers() ([]User, error)
	UpdateUser(params UpdateUserParams) (User, error)
	DeleteUser(userId string) error
	ListChatroomsForUser(userId string) ([]UserChatroom, error)

	CreateChatroom(name string) (Chatroom, error)
	GetChatroomById(chatroomId string) (Chatroom, error)
	ListChatrooms() ([]Chatroom, error)
	UpdateChatroom(chatroomId, name string) (Chatroom, error)
	DeleteChatroom(chatroomId string) error
	ListUsersForChatroom(chatroomId string) ([]User, error)

	CreateParticipant(userId, chatroomId string) (Participant, error)
	ParticipantExists(userId, chatroomId string) bool
	DeleteParticipant(userId, chatroomId string) error

	CreateMessage(params CreateMessageParams) (Message, error)
	GetMessageById(messageId string) (Message, error)
	ListMessagesByChatroom(chatroomId string) ([]Message, error)
	UpdateMessageText(messageId, text string) (Message, error)
	DeleteMessage(messageId string) error
}
