package chat

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"panel-cli/internal/api"
)

// Responder turns a user message into a bot reply. ok=false with a nil
// error means the responder had nothing to say.
type Responder interface {
	SendMessage(ctx context.Context, text string, projectID int) (reply string, ok bool, err error)
}

// ErrEmptyMessage aborts a send before any rendering or network call.
var ErrEmptyMessage = errors.New("mensaje vacío")

// Dispatcher runs the persistence half of one send cycle. The optimistic
// render of the user's message happens in the UI before Exchange is called,
// so the input never blocks on the network.
type Dispatcher struct {
	store     Store
	responder Responder
	logger    *zap.Logger
}

func NewDispatcher(store Store, responder Responder, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{store: store, responder: responder, logger: logger}
}

// Validate trims the text and rejects blank input. Callers check for an
// active project themselves; by this layer the id is already an integer.
func (d *Dispatcher) Validate(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}
	return text, nil
}

// Exchange persists the user's message, forwards it to the responder and
// persists the reply. One failure anywhere aborts the whole cycle; the
// caller renders a single generic bot error bubble and the already-rendered
// user message stays (no rollback, no retry).
func (d *Dispatcher) Exchange(ctx context.Context, projectID int, text string) (reply string, ok bool, err error) {
	if err := d.store.SaveMessage(ctx, api.NewMessage{
		Content:   text,
		FromBot:   false,
		ProjectID: projectID,
	}); err != nil {
		d.logger.Error("guardar mensaje del usuario", zap.Int("proyecto_id", projectID), zap.Error(err))
		return "", false, err
	}

	reply, ok, err = d.responder.SendMessage(ctx, text, projectID)
	if err != nil {
		d.logger.Error("respuesta del chatbot", zap.Int("proyecto_id", projectID), zap.Error(err))
		return "", false, err
	}
	if !ok {
		// No message field in the response: nothing to show, not an error.
		return "", false, nil
	}

	if err := d.store.SaveMessage(ctx, api.NewMessage{
		Content:   reply,
		FromBot:   true,
		ProjectID: projectID,
	}); err != nil {
		d.logger.Error("guardar respuesta del bot", zap.Int("proyecto_id", projectID), zap.Error(err))
		// The reply was obtained, so it still renders; the caller also gets
		// the error and shows the generic failure bubble after it.
		return reply, true, err
	}
	return reply, true, nil
}

// ErrDispatchBubble is what the caller renders when Exchange fails.
func ErrDispatchBubble() Bubble {
	return Bubble{Text: ErrDispatchText, FromBot: true}
}
