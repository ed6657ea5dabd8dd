package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chattyhq/chatty/internal/database"
	"github.com/chattyhq/chatty/internal/types"
)

// ParticipantRequest identifies a durable (user, chatroom) membership. This
// is independent of live websocket room membership: a durable participant may
// have no open connection, and a connection may join a room's broadcast set
// without a participant row.
type ParticipantRequest struct {
	UserId     string `json:"user_id" validate:"required"`
	ChatroomId string `json:"chatroom_id" validate:"required"`
}

func (s *ChattyApp) createParticipant(w http.ResponseWriter, r *http.Request) {
	var req ParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError(""))
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, NewBadRequestError(err.Error()))
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

	participant, err := s.db.CreateParticipant(req.UserId, req.ChatroomId)
	if err != nil {
		if database.IsUniqueViolation(err) {
			s.writeError(w, NewConflictError("user is already a participant of this chatroom"))
			return
		}
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusCreated, types.Participant{
		Id:              participant.Id,
		UserId:          participant.UserId,
		ChatroomId:      participant.ChatroomId,
		CreatedDate:     participant.CreatedDate,
		LastUpdatedDate: participant.LastUpdatedDate,
	})
}

func (s *ChattyApp) deleteParticipant(w http.ResponseWriter, r *http.Request) {
	var req ParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError(""))
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, NewBadRequestError(err.Error()))
		return
	}

	if !s.db.ParticipantExists(req.UserId, req.ChatroomId) {
		s.writeError(w, NewNotFoundError("participant not found"))
		return
	}

	if err := s.db.DeleteParticipant(req.UserId, req.ChatroomId); err != nil {
		s.writeError(w, NewInternalServerError(err))
		return
	}

	s.writeJson(w, http.StatusOK, DeleteResponse{Deleted: true})
}
