package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chattyhq/chatty/internal/database"
	"github.com/chattyhq/chatty/internal/types"
)

type CreateChatroomRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type UpdateChatroomRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type ChatroomListResponse struct {
	Chatrooms []types.Chatroom `json:"chatrooms"`
	Total     int              `json:"total"`
}

func chatroomResponse(c database.Chatroom) types.Chatroom {
	return types.Chatroom{
		Id:              c.Id,
		Name:            c.Name,
		CreatedDate:     c.CreatedDate,
		LastUpdatedDate: c.LastUpdatedDate,
	}
}

func (s *ChattyApp) createChatroom(w http.ResponseWriter, r *http.Request) {
	var req CreateChatroomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError(""))
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, NewBadRequestError(err.Error()))
		return
	}

	name, err := normalizeChatroomName(req.Name)
	if err != nil {
		s.writeError(w, NewBadRequestError(err.Error()))
		return
	}

	newChatroom, err := s.db.CreateChatroom(name)
	if err != nil {
		if database.IsUniqueViolation(err) {
			s.writeError(w, NewConflictError("chatroom with this name already exists"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusCreated, chatroomResponse(newChatroom))
}

func (s *ChattyApp) getChatroom(w http.ResponseWriter, r *http.Request) {
	chatroom, err := s.db.GetChatroomById(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("chatroom not found"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, chatroomResponse(chatroom))
}

func (s *ChattyApp) listChatrooms(w http.ResponseWriter, _ *http.Request) {
	dbChatrooms, err := s.db.ListChatrooms()
	if err != nil {
		s.writeError(w, NewInternalServerError(err))
		return
	}

	chatrooms := make([]types.Chatroom, 0, len(dbChatrooms))
	for _, c := range dbChatrooms {
		chatrooms = append(chatrooms, chatroomResponse(c))
	}

	s.writeJson(w, http.StatusOK, ChatroomListResponse{Chatrooms: chatrooms, Total: len(chatrooms)})
}

func (s *ChattyApp) updateChatroom(w http.ResponseWriter, r *http.Request) {
	chatroom, err := s.db.GetChatroomById(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("chatroom not found"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	var req UpdateChatroomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError(""))
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, NewBadRequestError(err.Error()))
		return
	}

	name, err := normalizeChatroomName(req.Name)
	if err != nil {
		s.writeError(w, NewBadRequestError(err.Error()))
		return
	}

	updated, err := s.db.UpdateChatroom(chatroom.Id, name)
	if err != nil {
		if database.IsUniqueViolation(err) {
			s.writeError(w, NewConflictError("chatroom with this name already exists"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, chatroomResponse(updated))
}

func (s *ChattyApp) deleteChatroom(w http.ResponseWriter, r *http.Request) {
	chatroom, err := s.db.GetChatroomById(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("chatroom not found"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	if err := s.db.DeleteChatroom(chatroom.Id); err != nil {
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, DeleteResponse{Deleted: true})
}

func (s *ChattyApp) listChatroomUsers(w http.ResponseWriter, r *http.Request) {
	chatroom, err := s.db.GetChatroomById(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("chatroom not found"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	dbUsers, err := s.db.ListUsersForChatroom(chatroom.Id)
	if err != nil {
		s.writeError(w, NewInternalServerError(err))
		return
	}

	users := make([]types.User, 0, len(dbUsers))
	for _, u := range dbUsers {
		users = append(users, userResponse(u))
	}

	s.writeJson(w, http.StatusOK, UserListResponse{Users: users, Total: len(users)})
}
