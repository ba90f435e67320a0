// Package api exposes the bot's entry points over HTTP for clients other
// than Telegram.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"ycbot/bot"
)

// Server serves the HTTP front end over a shared bot.Handler.
type Server struct {
	handler *bot.Handler
	logger  *log.Logger
	mux     http.Handler
}

type startRequest struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
}

type messageRequest struct {
	UserID int64  `json:"userId"`
	Text   string `json:"text"`
}

type clearRequest struct {
	UserID int64 `json:"userId"`
}

type replyResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(handler *bot.Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{handler: handler, logger: logger}
	s.mux = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/start", s.handleStart)
	mux.HandleFunc("/v1/message", s.handleMessage)
	mux.HandleFunc("/v1/clear", s.handleClear)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if !s.decode(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "there"
	}

	s.writeJSON(w, http.StatusOK, replyResponse{Reply: s.handler.Start(req.UserID, name)})
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if !s.decode(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	s.writeJSON(w, http.StatusOK, replyResponse{Reply: s.handler.Message(r.Context(), req.UserID, req.Text)})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	var req clearRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.writeJSON(w, http.StatusOK, replyResponse{Reply: s.handler.Clear(req.UserID)})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Printf("encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
