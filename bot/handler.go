// Package bot implements the chat front end: a transport-independent message
// handler plus the Telegram adapter that drives it.
package bot

import (
	"context"
	"fmt"
	"log"

	"ycbot/chat"
	"ycbot/session"
)

const (
	greetingTemplate = "Hello, <b>%s</b>!"

	helpReply = "Hey, I'm YC Bot, your personal assistant for the Y Combinator.\n" +
		"I can answer questions about the Y Combinator."

	clearReply = "✅ Conversation history cleared! Starting fresh."

	apologyReply = "Sorry, I encountered an error processing your question."

	humanPrefix     = "Human: "
	assistantPrefix = "Assistant: "
)

// Answerer is the retrieval-augmented pipeline behind the handler.
type Answerer interface {
	Answer(ctx context.Context, question string, history []string) (chat.Response, error)
}

// Handler exposes the three front-end entry points: Start, Clear and Message.
// Transport adapters (Telegram, HTTP) translate their own message types into
// these calls.
type Handler struct {
	answerer       Answerer
	sessions       session.Store
	logger         *log.Logger
	includeHistory bool
}

func NewHandler(answerer Answerer, sessions session.Store, logger *log.Logger, includeHistory bool) *Handler {
	if logger == nil {
		logger = log.Default()
	}

	return &Handler{
		answerer:       answerer,
		sessions:       sessions,
		logger:         logger,
		includeHistory: includeHistory,
	}
}

// Start greets a user by display name.
func (h *Handler) Start(userID int64, name string) string {
	return fmt.Sprintf(greetingTemplate, name)
}

// Help describes the bot.
func (h *Handler) Help(userID int64) string {
	return helpReply
}

// Clear drops the user's conversation history. Clearing an empty session
// still confirms success.
func (h *Handler) Clear(userID int64) string {
	h.sessions.Clear(userID)
	h.logger.Printf("cleared conversation history for user %d", userID)
	return clearReply
}

// Message runs the retrieval-augmented pipeline for one inbound message and
// records the exchange. A capability failure is logged and mapped to the
// apology reply; no error ever escapes to the transport, so one user's
// failure cannot take the loop down for others.
func (h *Handler) Message(ctx context.Context, userID int64, text string) string {
	var history []string
	if h.includeHistory {
		history = h.sessions.History(userID)
	}

	h.sessions.Append(userID, humanPrefix+text)

	resp, err := h.answerer.Answer(ctx, text, history)
	if err != nil {
		h.logger.Printf("answer failed for user %d: %v", userID, err)
		return apologyReply
	}

	h.sessions.Append(userID, assistantPrefix+resp.Answer)
	return resp.Answer
}
