package database

import (
	"github.com/stretchr/testify/mock"
)

type MockChattyRepository struct {
	mock.Mock
}

func (m *MockChattyRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockChattyRepository) CreateUser(params CreateUserParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockChattyRepository) GetUserById(userId string) (User, error) {
	args := m.Called(userId)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockChattyRepository) ListUsers() ([]User, error) {
	args := m.Called()
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockChattyRepository) UpdateUser(params UpdateUserParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockChattyRepository) DeleteUser(userId string) error {
	args := m.Called(userId)
	return args.Error(0)
}

func (m *MockChattyRepository) ListChatroomsForUser(userId string) ([]UserChatroom, error) {
	args := m.Called(userId)
	return args.Get(0).([]UserChatroom), args.Error(1)
}

func (m *MockChattyRepository) CreateChatroom(name string) (Chatroom, error) {
	args := m.Called(name)
	return args.Get(0).(Chatroom), args.Error(1)
}

func (m *MockChattyRepository) GetChatroomById(chatroomId string) (Chatroom, error) {
	args := m.Called(chatroomId)
	return args.Get(0).(Chatroom), args.Error(1)
}

func (m *MockChattyRepository) ListChatrooms() ([]Chatroom, error) {
	args := m.Called()
	return args.Get(0).([]Chatroom), args.Error(1)
}

func (m *MockChattyRepository) UpdateChatroom(chatroomId, name string) (Chatroom, error) {
	args := m.Called(chatroomId, name)
	return args.Get(0).(Chatroom), args.Error(1)
}

func (m *MockChattyRepository) DeleteChatroom(chatroomId string) error {
	args := m.Called(chatroomId)
	return args.Error(0)
}

func (m *MockChattyRepository) ListUsersForChatroom(chatroomId string) ([]User, error) {
	args := m.Called(chatroomId)
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockChattyRepository) CreateParticipant(userId, chatroomId string) (Participant, error) {
	args := m.Called(userId, chatroomId)
	return args.Get(0).(Participant), args.Error(1)
}

func (m *MockChattyRepository) ParticipantExists(userId, chatroomId string) bool {
	args := m.Called(userId, chatroomId)
	return args.Bool(0)
}

func (m *MockChattyRepository) DeleteParticipant(userId, chatroomId string) error {
	args := m.Called(userId, chatroomId)
	return args.Error(0)
}

func (m *MockChattyRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	args := m.Called(params)
	return args.Get(0).(Message), args.Error(1)
}

func (m *MockChattyRepository) GetMessageById(messageId string) (Message, error) {
	args := m.Called(messageId)
	return args.Get(0).(Message), args.Error(1)
}

func (m *MockChattyRepository) ListMessagesByChatroom(chatroomId string) ([]Message, error) {
	args := m.Called(chatroomId)
	return args.Get(0).([]Message), args.Error(1)
}

func (m *MockChattyRepository) UpdateMessageText(messageId, text string) (Message, error) {
	args := m.Called(messageId, text)
	return args.Get(0).(Message), args.Error(1)
}

func (m *MockChattyRepository) DeleteMessage(messageId string) error {
	args := m.Called(messageId)
	return args.Error(0)
}
