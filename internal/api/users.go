package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/chattyhq/chatty/internal/database"
	"github.com/chattyhq/chatty/internal/types"
)

type CreateUserRequest struct {
	Name   string `json:"name" validate:"required,max=255"`
	Handle string `json:"handle" validate:"required,max=50"`
}

type UpdateUserRequest struct {
	Name   string `json:"name" validate:"omitempty,max=255"`
	Handle string `json:"handle" validate:"omitempty,max=50"`
}

type UserListResponse struct {
	Users []types.User `json:"users"`
	Total int          `json:"total"`
}

type UserChatroomResponse struct {
	types.Chatroom
	JoinedDate time.Time `json:"joined_date"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

func userResponse(u database.User) types.User {
	return types.User{
		Id:              u.Id,
		Name:            u.Name,
		Handle:          u.Handle,
		CreatedDate:     u.CreatedDate,
		LastUpdatedDate: u.LastUpdatedDate,
	}
}

func (s *ChattyApp) createUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError(""))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, NewBadRequestError(err.Error()))
		return
	}

	handle, err := normalizeHandle(req.Handle)
	if err != nil {
		s.writeError(w, NewBadRequestError(err.Error()))
		return
	}

	newUser, err := s.db.CreateUser(database.CreateUserParams{
		Name:   req.Name,
		Handle: handle,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			s.writeError(w, NewConflictError("user with this handle already exists"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusCreated, userResponse(newUser))
}

func (s *ChattyApp) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.db.GetUserById(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("user not found"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, userResponse(user))
}

func (s *ChattyApp) listUsers(w http.ResponseWriter, _ *http.Request) {
	dbUsers, err := s.db.ListUsers()
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

func (s *ChattyApp) updateUser(w http.ResponseWriter, r *http.Request) {
	curUser, err := s.db.GetUserById(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("user not found"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError(""))
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, NewBadRequestError(err.Error()))
		return
	}

	params := database.UpdateUserParams{
		UserId: curUser.Id,
		Name:   curUser.Name,
		Handle: curUser.Handle,
	}
	if strings.TrimSpace(req.Name) != "" {
		params.Name = strings.TrimSpace(req.Name)
	}
	if req.Handle != "" {
		handle, err := normalizeHandle(req.Handle)
		if err != nil {
			s.writeError(w, NewBadRequestError(err.Error()))
			return
		}
		params.Handle = handle
	}

	dbUser, err := s.db.UpdateUser(params)
	if err != nil {
		if database.IsUniqueViolation(err) {
			s.writeError(w, NewConflictError("user with this handle already exists"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, userResponse(dbUser))
}

func (s *ChattyApp) deleteUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.db.GetUserById(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("user not found"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	if err := s.db.DeleteUser(user.Id); err != nil {
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, DeleteResponse{Deleted: true})
}

func (s *ChattyApp) listUserChatrooms(w http.ResponseWriter, r *http.Request) {
	user, err := s.db.GetUserById(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, NewNotFoundError("user not found"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	dbChatrooms, err := s.db.ListChatroomsForUser(user.Id)
	if err != nil {
		s.writeError(w, NewInternalServerError(err))
		return
	}

	chatrooms := make([]UserChatroomResponse, 0, len(dbChatrooms))
	for _, c := range dbChatrooms {
		chatrooms = append(chatrooms, UserChatroomResponse{
			Chatroom: types.Chatroom{
				Id:              c.Id,
				Name:            c.Name,
				CreatedDate:     c.CreatedDate,
				LastUpdatedDate: c.LastUpdatedDate,
			},
			JoinedDate: c.JoinedDate,
		})
	}

	s.writeJson(w, http.StatusOK, map[string]any{
		"chatrooms": chatrooms,
		"total":     len(chatrooms),
	})
}
