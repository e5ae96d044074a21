package chat

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"panel-cli/internal/api"
)

// Store is the slice of the panel API the conversation flows need.
type Store interface {
	Messages(ctx context.Context, projectID int) ([]api.Message, error)
	SaveMessage(ctx context.Context, msg api.NewMessage) error
}

// Loader replaces the visible conversation with a project's history.
type Loader struct {
	store  Store
	logger *zap.Logger
}

func NewLoader(store Store, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{store: store, logger: logger}
}

// LoadProject fetches and orders a project's history. The caller clears the
// transcript before calling and renders the returned bubbles; on error it
// renders one bot error bubble instead, no retry.
//
// The server does not guarantee order, so messages are re-sorted ascending
// by creation time here; rendering them unsorted would interleave the
// conversation.
//
// An empty history seeds the bot greeting and persists it. Syncing an
// already-seeded-but-still-empty project seeds again: the client is
// stateless and the server does not deduplicate. Kept as-is.
func (l *Loader) LoadProject(ctx context.Context, projectID int) ([]Bubble, error) {
	msgs, err := l.store.Messages(ctx, projectID)
	if err != nil {
		l.logger.Error("cargar mensajes", zap.Int("proyecto_id", projectID), zap.Error(err))
		return nil, err
	}

	if len(msgs) == 0 {
		if err := l.store.SaveMessage(ctx, api.NewMessage{
			Content:   GreetingEmptyProject,
			FromBot:   true,
			ProjectID: projectID,
		}); err != nil {
			// The greeting still renders; persistence is best-effort here,
			// matching the original client.
			l.logger.Error("guardar saludo inicial", zap.Int("proyecto_id", projectID), zap.Error(err))
		}
		return []Bubble{{Text: GreetingEmptyProject, FromBot: true}}, nil
	}

	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt.Time)
	})

	bubbles := make([]Bubble, 0, len(msgs))
	for _, m := range msgs {
		bubbles = append(bubbles, Bubble{Text: m.Text(), FromBot: bool(m.FromBot)})
	}
	return bubbles, nil
}

// ErrLoadBubble is what the caller renders when LoadProject fails.
func ErrLoadBubble() Bubble {
	return Bubble{Text: ErrLoadHistoryText, FromBot: true}
}
