package bot_test

import (
	"context"
	"io"
	"log"
	"testing"

	"ycbot/bot"
	"ycbot/chat"
	"ycbot/session"
)

type stubAnswerer struct {
	resp      chat.Response
	err       error
	histories [][]string
}

func (s *stubAnswerer) Answer(ctx context.Context, question string, history []string) (chat.Response, error) {
	s.histories = append(s.histories, history)
	if s.err != nil {
		return chat.Response{}, s.err
	}
	return s.resp, nil
}

var _ bot.Answerer = (*stubAnswerer)(nil)

func discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestStartGreeting(t *testing.T) {
	h := bot.NewHandler(&stubAnswerer{}, session.NewMemoryStore(), discard(), false)

	if got := h.Start(1, "Ada Lovelace"); got != "Hello, <b>Ada Lovelace</b>!" {
		t.Fatalf("unexpected greeting: %q", got)
	}
}

func TestMessageRecordsExchange(t *testing.T) {
	store := session.NewMemoryStore()
	h := bot.NewHandler(&stubAnswerer{resp: chat.Response{Answer: "YC funds startups."}}, store, discard(), false)

	reply := h.Message(context.Background(), 5, "What does YC do?")
	if reply != "YC funds startups." {
		t.Fatalf("unexpected reply: %q", reply)
	}

	history := store.History(5)
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
	if history[0] != "Human: What does YC do?" {
		t.Fatalf("unexpected human entry: %q", history[0])
	}
	if history[1] != "Assistant: YC funds startups." {
		t.Fatalf("unexpected assistant entry: %q", history[1])
	}
}

func TestMessageMapsFailureToApology(t *testing.T) {
	store := session.NewMemoryStore()
	answerer := &stubAnswerer{err: &chat.CapabilityError{Op: chat.OpSearch, Err: context.DeadlineExceeded}}
	h := bot.NewHandler(answerer, store, discard(), false)

	reply := h.Message(context.Background(), 5, "anything?")
	if reply != "Sorry, I encountered an error processing your question." {
		t.Fatalf("unexpected reply: %q", reply)
	}

	// the failed exchange keeps the question but records no answer
	history := store.History(5)
	if len(history) != 1 || history[0] != "Human: anything?" {
		t.Fatalf("unexpected history after failure: %v", history)
	}
}

func TestClearRemovesHistory(t *testing.T) {
	store := session.NewMemoryStore()
	h := bot.NewHandler(&stubAnswerer{resp: chat.Response{Answer: "ok"}}, store, discard(), false)

	h.Message(context.Background(), 9, "first question")
	if reply := h.Clear(9); reply != "✅ Conversation history cleared! Starting fresh." {
		t.Fatalf("unexpected clear reply: %q", reply)
	}
	if history := store.History(9); history != nil {
		t.Fatalf("expected empty history after clear, got %v", history)
	}

	// clearing again is a no-op that still confirms
	if reply := h.Clear(9); reply != "✅ Conversation history cleared! Starting fresh." {
		t.Fatalf("unexpected second clear reply: %q", reply)
	}
}

func TestMessageHistoryFlag(t *testing.T) {
	store := session.NewMemoryStore()
	answerer := &stubAnswerer{resp: chat.Response{Answer: "ok"}}
	h := bot.NewHandler(answerer, store, discard(), true)

	h.Message(context.Background(), 3, "first")
	h.Message(context.Background(), 3, "second")

	if len(answerer.histories) != 2 {
		t.Fatalf("expected 2 answer calls, got %d", len(answerer.histories))
	}
	if answerer.histories[0] != nil {
		t.Fatalf("first call should carry no history, got %v", answerer.histories[0])
	}
	second := answerer.histories[1]
	if len(second) != 2 || second[0] != "Human: first" || second[1] != "Assistant: ok" {
		t.Fatalf("second call carries wrong history: %v", second)
	}

	// with the flag off, history never reaches the pipeline
	off := &stubAnswerer{resp: chat.Response{Answer: "ok"}}
	hOff := bot.NewHandler(off, session.NewMemoryStore(), discard(), false)
	hOff.Message(context.Background(), 3, "first")
	hOff.Message(context.Background(), 3, "second")
	if off.histories[1] != nil {
		t.Fatalf("history leaked into the pipeline with the flag off: %v", off.histories[1])
	}
}

func TestHelpReply(t *testing.T) {
	h := bot.NewHandler(&stubAnswerer{}, session.NewMemoryStore(), discard(), false)

	help := h.Help(1)
	if help == "" {
		t.Fatal("expected help text")
	}
	if want := "Hey, I'm YC Bot"; len(help) < len(want) || help[:len(want)] != want {
		t.Fatalf("unexpected help text: %q", help)
	}
}
