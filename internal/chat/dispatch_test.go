package chat

import (
	"context"
	"errors"
	"testing"
)

type fakeResponder struct {
	reply string
	ok    bool
	err   error

	calls []struct {
		text      string
		projectID int
	}
}

func (f *fakeResponder) SendMessage(_ context.Context, text string, projectID int) (string, bool, error) {
	f.calls = append(f.calls, struct {
		text      string
		projectID int
	}{text, projectID})
	return f.reply, f.ok, f.err
}

func TestValidate(t *testing.T) {
	d := NewDispatcher(&fakeStore{}, &fakeResponder{}, nil)
	if _, err := d.Validate("   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("blank input: err = %v", err)
	}
	text, err := d.Validate("  Hola  ")
	if err != nil || text != "Hola" {
		t.Fatalf("Validate = (%q, %v)", text, err)
	}
}

// The end-to-end send property: "Hola" on project 3 persists the user
// message, forwards it, then renders and persists the bot reply.
func TestExchange_FullCycle(t *testing.T) {
	store := &fakeStore{}
	responder := &fakeResponder{reply: "¡Hola!", ok: true}
	d := NewDispatcher(store, responder, nil)

	reply, ok, err := d.Exchange(context.Background(), 3, "Hola")
	if err != nil || !ok || reply != "¡Hola!" {
		t.Fatalf("Exchange = (%q, %v, %v)", reply, ok, err)
	}

	if len(store.saved) != 2 {
		t.Fatalf("persist calls = %d, want 2", len(store.saved))
	}
	user := store.saved[0]
	if user.Content != "Hola" || user.FromBot || user.ProjectID != 3 {
		t.Fatalf("user persist = %+v", user)
	}
	bot := store.saved[1]
	if bot.Content != "¡Hola!" || !bot.FromBot || bot.ProjectID != 3 {
		t.Fatalf("bot persist = %+v", bot)
	}

	if len(responder.calls) != 1 || responder.calls[0].text != "Hola" || responder.calls[0].projectID != 3 {
		t.Fatalf("responder calls = %+v", responder.calls)
	}
}

func TestExchange_NoReplyIsNotAnError(t *testing.T) {
	store := &fakeStore{}
	d := NewDispatcher(store, &fakeResponder{ok: false}, nil)

	reply, ok, err := d.Exchange(context.Background(), 3, "Hola")
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if ok || reply != "" {
		t.Fatalf("expected no reply, got (%q, %v)", reply, ok)
	}
	// Only the user message was persisted.
	if len(store.saved) != 1 {
		t.Fatalf("persist calls = %d, want 1", len(store.saved))
	}
}

func TestExchange_UserPersistFailureAbortsBeforeResponder(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("500")}
	responder := &fakeResponder{reply: "¡Hola!", ok: true}
	d := NewDispatcher(store, responder, nil)

	if _, _, err := d.Exchange(context.Background(), 3, "Hola"); err == nil {
		t.Fatal("expected error")
	}
	if len(responder.calls) != 0 {
		t.Fatalf("responder must not be called after persist failure, calls = %d", len(responder.calls))
	}
}

func TestExchange_ResponderFailure(t *testing.T) {
	store := &fakeStore{}
	d := NewDispatcher(store, &fakeResponder{err: errors.New("timeout")}, nil)

	_, ok, err := d.Exchange(context.Background(), 3, "Hola")
	if err == nil || ok {
		t.Fatalf("Exchange = (ok=%v, err=%v)", ok, err)
	}
	if b := ErrDispatchBubble(); b.Text != ErrDispatchText || !b.FromBot {
		t.Fatalf("error bubble = %+v", b)
	}
}

func TestExchange_ReplyPersistFailureStillReturnsReply(t *testing.T) {
	// The reply was already obtained, so the caller renders it and then the
	// generic failure bubble, matching the original flow.
	store := &fakeStore{}
	responder := &fakeResponder{reply: "¡Hola!", ok: true}
	d := NewDispatcher(store, responder, nil)

	// Fail only the second save.
	store.failAfter = 1

	reply, ok, err := d.Exchange(context.Background(), 3, "Hola")
	if err == nil {
		t.Fatal("expected error")
	}
	if !ok || reply != "¡Hola!" {
		t.Fatalf("reply should survive persist failure, got (%q, %v)", reply, ok)
	}
}
