package api

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"

	"github.com/chattyhq/chatty/internal/server"
)

// serveWs upgrades the request to a websocket connection and registers it
// with the dispatcher. Connections are identified by a server-minted short
// id; they carry no room memberships until they issue join events.
func (s *ChattyApp) serveWs(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}

			return slices.Contains(s.allowedOrigins, origin)
		},
	}

	connId, err := s.generateConnId()
	if err != nil {
		s.log.Println("generate connection id:", err)
		s.writeError(w, NewInternalServerError(err))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Println("error upgrading connection:", err)
		return
	}

	client := server.NewClient(connId, conn, s.dispatcher, s.log)
	s.dispatcher.OnConnect(client)

	go client.Write()
	go client.Read()
}
