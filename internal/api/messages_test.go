package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chattyhq/chatty/internal/database"
	"github.com/chattyhq/chatty/internal/types"
)

func TestCreateMessageHandler(t *testing.T) {
	now := time.Now().UTC()
	parentId := "msg-0"

	t.Run("persists and returns the message", func(t *testing.T) {
		mockRepo := &database.MockChattyRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetUserById", "user-1").Return(database.User{Id: "user-1"}, nil).Once()
		mockRepo.On("GetChatroomById", "room-1").Return(database.Chatroom{Id: "room-1"}, nil).Once()
		mockRepo.On("CreateMessage", database.CreateMessageParams{
			MessageText: "hello",
			UserId:      "user-1",
			ChatroomId:  "room-1",
		}).Return(database.Message{
			Id:              "msg-1",
			MessageText:     "hello",
			UserId:          "user-1",
			ChatroomId:      "room-1",
			CreatedDate:     now,
			LastUpdatedDate: now,
		}, nil).Once()

		app := newTestApp(t, mockRepo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/messages",
			jsonBody(t, CreateMessageRequest{MessageText: "hello", UserId: "user-1", ChatroomId: "room-1"}))
		app.createMessage(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var msg types.Message
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&msg))
		assert.Equal(t, "msg-1", msg.Id)
		assert.Equal(t, "hello", msg.MessageText)
		assert.False(t, msg.IsReply)
		assert.Nil(t, msg.ParentMessageId)
	})

	t.Run("trims surrounding whitespace before persisting", func(t *testing.T) {
		mockRepo := &database.MockChattyRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetUserById", "user-1").Return(database.User{Id: "user-1"}, nil).Once()
		mockRepo.On("GetChatroomById", "room-1").Return(database.Chatroom{Id: "room-1"}, nil).Once()
		mockRepo.On("CreateMessage", database.CreateMessageParams{
			MessageText: "hello",
			UserId:      "user-1",
			ChatroomId:  "room-1",
		}).Return(database.Message{Id: "msg-1", MessageText: "hello", UserId: "user-1", ChatroomId: "room-1"}, nil).Once()

		app := newTestApp(t, mockRepo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/messages",
			jsonBody(t, CreateMessageRequest{MessageText: "  hello  ", UserId: "user-1", ChatroomId: "room-1"}))
		app.createMessage(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("creates a reply with a parent", func(t *testing.T) {
		mockRepo := &database.MockChattyRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetUserById", "user-1").Return(database.User{Id: "user-1"}, nil).Once()
		mockRepo.On("GetChatroomById", "room-1").Return(database.Chatroom{Id: "room-1"}, nil).Once()
		mockRepo.On("GetMessageById", parentId).Return(database.Message{Id: parentId, ChatroomId: "room-1"}, nil).Once()
		mockRepo.On("CreateMessage", database.CreateMessageParams{
			MessageText:     "a reply",
			UserId:          "user-1",
			ChatroomId:      "room-1",
			IsReply:         true,
			ParentMessageId: &parentId,
		}).Return(database.Message{
			Id: "msg-1", MessageText: "a reply", UserId: "user-1", ChatroomId: "room-1",
			IsReply: true, ParentMessageId: &parentId,
		}, nil).Once()

		app := newTestApp(t, mockRepo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/messages",
			jsonBody(t, CreateMessageRequest{
				MessageText: "a reply", UserId: "user-1", ChatroomId: "room-1",
				IsReply: true, ParentMessageId: &parentId,
			}))
		app.createMessage(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("rejects whitespace-only text", func(t *testing.T) {
		mockRepo := &database.MockChattyRepository{}
		defer mockRepo.AssertExpectations(t)

		app := newTestApp(t, mockRepo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/messages",
			jsonBody(t, CreateMessageRequest{MessageText: "   ", UserId: "user-1", ChatroomId: "room-1"}))
		app.createMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "message text cannot be empty or only whitespace")
	})

	t.Run("rejects a reply without a parent", func(t *testing.T) {
		mockRepo := &database.MockChattyRepository{}
		defer mockRepo.AssertExpectations(t)

		app := newTestApp(t, mockRepo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/messages",
			jsonBody(t, CreateMessageRequest{MessageText: "hello", UserId: "user-1", ChatroomId: "room-1", IsReply: true}))
		app.createMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "parent_message_id is required when is_reply is true")
	})

	t.Run("rejects a parent without the reply flag", func(t *testing.T) {
		mockRepo := &database.MockChattyRepository{}
		defer mockRepo.AssertExpectations(t)

		app := newTestApp(t, mockRepo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/messages",
			jsonBody(t, CreateMessageRequest{MessageText: "hello", UserId: "user-1", ChatroomId: "room-1", ParentMessageId: &parentId}))
		app.createMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("returns 404 for unknown user", func(t *testing.T) {
		mockRepo := &database.MockChattyRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetUserById", "missing").Return(database.User{}, sql.ErrNoRows).Once()

		app := newTestApp(t, mockRepo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/messages",
			jsonBody(t, CreateMessageRequest{MessageText: "hello", UserId: "missing", ChatroomId: "room-1"}))
		app.createMessage(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("returns 404 for unknown parent message", func(t *testing.T) {
		mockRepo := &database.MockChattyRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetUserById", "user-1").Return(database.User{Id: "user-1"}, nil).Once()
		mockRepo.On("GetChatroomById", "room-1").Return(database.Chatroom{Id: "room-1"}, nil).Once()
		mockRepo.On("GetMessageById", "missing").Return(database.Message{}, sql.ErrNoRows).Once()

		missing := "missing"
		app := newTestApp(t, mockRepo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/messages",
			jsonBody(t, CreateMessageRequest{
				MessageText: "hello", UserId: "user-1", ChatroomId: "room-1",
				IsReply: true, ParentMessageId: &missing,
			}))
		app.createMessage(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestGetMessageHandler(t *testing.T) {
	t.Run("returns the message", func(t *testing.T) {
		mockRepo := &database.MockChattyRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetMessageById", "msg-1").
			Return(database.Message{Id: "msg-1", MessageText: "hello", ChatroomId: "room-1"}, nil).Once()

		app := newTestApp(t, mockRepo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/messages/msg-1", nil)
		req.SetPathValue("id", "msg-1")
		app.getMessage(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("returns 404 for unknown message", func(t *testing.T) {
		mockRepo := &database.MockChattyRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetMessageById", "missing").Return(database.Message{}, sql.ErrNoRows).Once()

		app := newTestApp(t, mockRepo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/messages/missing", nil)
		req.SetPathValue("id", "missing")
		app.getMessage(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListChatroomMessagesHandler(t *testing.T) {
	mockRepo := &database.MockChattyRepository{}
	defer mockRepo.AssertExpectations(t)
	mockRepo.On("GetChatroomById", "room-1").Return(database.Chatroom{Id: "room-1"}, nil).Once()
	mockRepo.On("ListMessagesByChatroom", "room-1").Return([]database.Message{
		{Id: "msg-1", MessageText: "first", ChatroomId: "room-1"},
		{Id: "msg-2", MessageText: "second", ChatroomId: "room-1"},
	}, nil).Once()

	app := newTestApp(t, mockRepo)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chatrooms/room-1/messages", nil)
	req.SetPathValue("id", "room-1")
	app.listChatroomMessages(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp MessageListResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Messages, 2)
}

func TestUpdateMessageHandler(t *testing.T) {
	t.Run("updates the message text", func(t *testing.T) {
		mockRepo := &database.MockChattyRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetMessageById", "msg-1").
			Return(database.Message{Id: "msg-1", MessageText: "old"}, nil).Once()
		mockRepo.On("UpdateMessageText", "msg-1", "new text").
			Return(database.Message{Id: "msg-1", MessageText: "new text"}, nil).Once()

		app := newTestApp(t, mockRepo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/messages/msg-1",
			jsonBody(t, UpdateMessageRequest{MessageText: " new text "}))
		req.SetPathValue("id", "msg-1")
		app.updateMessage(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("returns 404 for unknown message", func(t *testing.T) {
		mockRepo := &database.MockChattyRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetMessageById", "missing").Return(database.Message{}, sql.ErrNoRows).Once()

		app := newTestApp(t, mockRepo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/messages/missing",
			jsonBody(t, UpdateMessageRequest{MessageText: "new text"}))
		req.SetPathValue("id", "missing")
		app.updateMessage(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteMessageHandler(t *testing.T) {
	t.Run("deletes the message", func(t *testing.T) {
		mockRepo := &database.MockChattyRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetMessageById", "msg-1").Return(database.Message{Id: "msg-1"}, nil).Once()
		mockRepo.On("DeleteMessage", "msg-1").Return(nil).Once()

		app := newTestApp(t, mockRepo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/messages/msg-1", nil)
		req.SetPathValue("id", "msg-1")
		app.deleteMessage(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("returns 409 when the message has replies", func(t *testing.T) {
		mockRepo := &database.MockChattyRepository{}
		defer mockRepo.AssertExpectations(t)
		mockRepo.On("GetMessageById", "msg-1").Return(database.Message{Id: "msg-1"}, nil).Once()
		mockRepo.On("DeleteMessage", "msg-1").Return(&pq.Error{Code: "23503"}).Once()

		app := newTestApp(t, mockRepo)
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/messages/msg-1", nil)
		req.SetPathValue("id", "msg-1")
		app.deleteMessage(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "message has replies and cannot be deleted")
	})
}
