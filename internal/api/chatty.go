package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/handlers"
	"github.com/teris-io/shortid"

	"github.com/chattyhq/chatty/internal/config"
	"github.com/chattyhq/chatty/internal/database"
	"github.com/chattyhq/chatty/internal/server"
	"github.com/chattyhq/chatty/internal/stats"
)

type ChattyApp struct {
	log            *log.Logger
	db             database.ChattyRepository
	mux            *http.Server
	dispatcher     *server.Dispatcher
	stats          stats.StatsProvider
	validate       *validator.Validate
	allowedOrigins []string
	postLocks      *roomLockSet
	generateConnId func() (string, error)
}

func NewChattyApp(mux *http.ServeMux, logger *log.Logger, d *server.Dispatcher,
	db database.ChattyRepository, sp stats.StatsProvider, cfg *config.Config) *ChattyApp {

	s := &ChattyApp{
		log:            logger,
		db:             db,
		dispatcher:     d,
		stats:          sp,
		validate:       validator.New(),
		allowedOrigins: cfg.AllowedOrigins,
		postLocks:      newRoomLockSet(),
		generateConnId: shortid.Generate,
	}

	mux.HandleFunc("GET /api/health", s.healthCheck)

	mux.HandleFunc("POST /api/users", s.createUser)
	mux.HandleFunc("GET /api/users", s.listUsers)
	mux.HandleFunc("GET /api/users/{id}", s.getUser)
	mux.HandleFunc("PUT /api/users/{id}", s.updateUser)
	mux.HandleFunc("DELETE /api/users/{id}", s.deleteUser)
	mux.HandleFunc("GET /api/users/{id}/chatrooms", s.listUserChatrooms)

	mux.HandleFunc("POST /api/chatrooms", s.createChatroom)
	mux.HandleFunc("GET /api/chatrooms", s.listChatrooms)
	mux.HandleFunc("GET /api/chatrooms/{id}", s.getChatroom)
	mux.HandleFunc("PUT /api/chatrooms/{id}", s.updateChatroom)
	mux.HandleFunc("DELETE /api/chatrooms/{id}", s.deleteChatroom)
	mux.HandleFunc("GET /api/chatrooms/{id}/users", s.listChatroomUsers)
	mux.HandleFunc("GET /api/chatrooms/{id}/messages", s.listChatroomMessages)

	mux.HandleFunc("POST /api/participants", s.createParticipant)
	mux.HandleFunc("DELETE /api/participants", s.deleteParticipant)

	mux.HandleFunc("POST /api/messages", s.createMessage)
	mux.HandleFunc("GET /api/messages/{id}", s.getMessage)
	mux.HandleFunc("PUT /api/messages/{id}", s.updateMessage)
	mux.HandleFunc("DELETE /api/messages/{id}", s.deleteMessage)

	mux.HandleFunc("GET /ws", s.serveWs)

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
		handlers.AllowCredentials(),
	)(mux)

	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

func (s *ChattyApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *ChattyApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

func (s *ChattyApp) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("json encode: %v", err)
	}
}

func (s *ChattyApp) writeError(w http.ResponseWriter, errResp *ApiError) {
	s.writeJson(w, errResp.StatusCode, errResp)
}
