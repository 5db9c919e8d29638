package api

import (
	"context"
	"encoding/json"
	"errors"
	"linkbio/internal/availability"
	"linkbio/internal/websocket"
	"log/slog"
	"net/http"
	"time"
)

const (
	wsMessageCheck        = "check"
	wsMessageClaim        = "claim"
	wsMessageAvailability = "availability"
	wsMessageClaimResult  = "claim_result"
	wsMessageError        = "error"
)

type wsInbound struct {
	Type      string `json:"type"`
	Candidate string `json:"candidate,omitempty"`
}

type wsAvailability struct {
	Type string `json:"type"`
	availability.Status
}

type wsClaimResult struct {
	Type     string `json:"type"`
	Success  bool   `json:"success"`
	Username string `json:"username,omitempty"`
	Error    string `json:"error,omitempty"`
	Kind     string `json:"kind,omitempty"`
}

type wsError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// ServeWsHandler upgrades to a websocket that carries both the account's
// profile events and the interactive username picker protocol.
func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(slog.String("component", "ws"))

	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		log.Debug("ws connection attempt without token")
		http.Error(w, "token required", http.StatusUnauthorized)
		return
	}

	claims, err := s.verifyToken(tokenString)
	if err != nil {
		log.Debug("ws connection attempt with invalid token", slog.Any("error", err))
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}
	accountID := claims.AccountID()

	own := ""
	slug, err := s.directory.Lookup(r.Context(), accountID)
	if err != nil {
		log.Error("failed to look up username", slog.String("account_id", accountID), slog.Any("error", err))
		http.Error(w, "Failed to load account", http.StatusInternalServerError)
		return
	}
	if slug.IsClaimed() {
		own = slug.String()
	}

	conn, err := websocket.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := websocket.NewClient(s.wsHub, conn, accountID)
	if !s.wsHub.Add(client) {
		conn.Close()
		return
	}

	send := func(v interface{}) {
		data, err := json.Marshal(v)
		if err != nil {
			log.Error("failed to marshal ws message", slog.Any("error", err))
			return
		}
		client.Send(data)
	}

	tracker := availability.NewTracker(s.directory, accountID, own, s.config.Availability.Debounce, func(st availability.Status) {
		send(wsAvailability{Type: wsMessageAvailability, Status: st})
	}, log)

	handle := func(message []byte) {
		var in wsInbound
		if err := json.Unmarshal(message, &in); err != nil {
			send(wsError{Type: wsMessageError, Error: "malformed message"})
			return
		}

		switch in.Type {
		case wsMessageCheck:
			tracker.Input(in.Candidate)
		case wsMessageClaim:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			verdict, err := tracker.Submit(ctx)
			result := wsClaimResult{Type: wsMessageClaimResult}
			switch {
			case errors.Is(err, availability.ErrNotSubmittable):
				result.Error = err.Error()
			case err != nil:
				log.Error("ws claim failed", slog.String("account_id", accountID), slog.Any("error", err))
				result.Error = "could not claim username, try again"
			case verdict.OK():
				result.Success = true
				result.Username = verdict.Username
			default:
				result.Username = verdict.Username
				result.Error = verdict.Reason.Message()
				result.Kind = verdict.Reason.Kind().String()
			}
			send(result)
		default:
			send(wsError{Type: wsMessageError, Error: "unknown message type"})
		}
	}

	go client.WritePump()
	go func() {
		defer tracker.Stop()
		client.ReadPump(handle)
	}()
}
