package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/chattyhq/chatty/internal/database"
	"github.com/chattyhq/chatty/internal/types"
)

type CreateMessageRequest struct {
	MessageText     string  `json:"message_text" validate:"required,max=1024"`
	UserId          string  `json:"user_id" validate:"required"`
	ChatroomId      string  `json:"chatroom_id" validate:"required"`
	IsReply         bool    `json:"is_reply"`
	ParentMessageId *string `json:"parent_message_id"`
}

type UpdateMessageRequest struct {
	MessageText string `json:"message_text" validate:"required,max=1024"`
}

type MessageListResponse struct {
	Messages []types.Message `json:"messages"`
	Total    int             `json:"total"`
}

func messageResponse(m database.Message) types.Message {
	return types.Message{
		Id:              m.Id,
		MessageText:     m.MessageText,
		UserId:          m.UserId,
		ChatroomId:      m.ChatroomId,
		IsReply:         m.IsReply,
		ParentMessageId: m.ParentMessageId,
		CreatedDate:     m.CreatedDate,
		LastUpdatedDate: m.LastUpdatedDate,
	}
}

// createMessage persists a message and, only after the write is durable,
// hands it to the dispatcher for fan-out to the chatroom's live members. The
// per-room lock is held across persist and notify so that delivery order
// matches commit order within a room.
func (s *ChattyApp) createMessage(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError(""))
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, NewBadRequestError(err.Error()))
		return
	}

	text := strings.TrimSpace(req.MessageText)
	if text == "" {
		s.writeError(w, NewBadRequestError("message text cannot be empty or only whitespace"))
		return
	}

	if req.IsReply && req.ParentMessageId == nil {
		s.writeError(w, NewBadRequestError("parent_message_id is required when is_reply is true"))
		return
	}
	if !req.IsReply && req.ParentMessageId != nil {
		s.writeError(w, NewBadRequestError("parent_message_id should only be set when is_reply is true"))
		return
	}

	if _, err := s.db.GetUserById(req.UserId); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("user not found"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	if _, err := s.db.GetChatroomById(req.ChatroomId); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("chatroom not found"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	if req.ParentMessageId != nil {
		if _, err := s.db.GetMessageById(*req.ParentMessageId); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				s.writeError(w, NewNotFoundError("parent message not found"))
				return
			}
			s.writeError(w, NewInternalServerError(err))
			return
		}
	}

	unlock := s.postLocks.Lock(req.ChatroomId)
	defer unlock()

	newMessage, err := s.db.CreateMessage(database.CreateMessageParams{
		MessageText:     text,
		UserId:          req.UserId,
		ChatroomId:      req.ChatroomId,
		IsReply:         req.IsReply,
		ParentMessageId: req.ParentMessageId,
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			s.writeError(w, NewNotFoundError("user or chatroom not found"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	resp := messageResponse(newMessage)
	s.dispatcher.OnMessageCreated(resp)

	s.writeJson(w, http.StatusCreated, resp)
}

func (s *ChattyApp) getMessage(w http.ResponseWriter, r *http.Request) {
	message, err := s.db.GetMessageById(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("message not found"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, messageResponse(message))
}

func (s *ChattyApp) listChatroomMessages(w http.ResponseWriter, r *http.Request) {
	chatroom, err := s.db.GetChatroomById(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("chatroom not found"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	dbMessages, err := s.db.ListMessagesByChatroom(chatroom.Id)
	if err != nil {
		s.writeError(w, NewInternalServerError(err))
		return
	}

	messages := make([]types.Message, 0, len(dbMessages))
	for _, m := range dbMessages {
		messages = append(messages, messageResponse(m))
	}

	s.writeJson(w, http.StatusOK, MessageListResponse{Messages: messages, Total: len(messages)})
}

func (s *ChattyApp) updateMessage(w http.ResponseWriter, r *http.Request) {
	message, err := s.db.GetMessageById(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("message not found"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	var req UpdateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError(""))
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, NewBadRequestError(err.Error()))
		return
	}

	text := strings.TrimSpace(req.MessageText)
	if text == "" {
		s.writeError(w, NewBadRequestError("message text cannot be empty or only whitespace"))
		return
	}

	updated, err := s.db.UpdateMessageText(message.Id, text)
	if err != nil {
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, messageResponse(updated))
}

func (s *ChattyApp) deleteMessage(w http.ResponseWriter, r *http.Request) {
	message, err := s.db.GetMessageById(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("message not found"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	if err := s.db.DeleteMessage(message.Id); err != nil {
		if database.IsForeignKeyViolation(err) {
			s.writeError(w, NewConflictError("message has replies and cannot be deleted"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, DeleteResponse{Deleted: true})
}
