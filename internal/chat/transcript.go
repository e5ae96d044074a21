// Package chat holds the conversation logic behind the panel's chat pane:
// the transcript view-model, history loading and the send cycle. Nothing in
// here touches a terminal, so every flow is testable without one.
package chat

import (
	"bytes"
	"encoding/json"

	"go.uber.org/zap"
)

// Spanish copy shown to the user; kept verbatim from the panel product.
const (
	FallbackBotText  = "Error al cargar el mensaje del bot"
	FallbackUserText = "Error al cargar el mensaje"

	GreetingEmptyProject = "Hola, soy un bot. ¿En qué puedo ayudarte con este proyecto?"
	GreetingNoProject    = "Hola, soy un bot. Selecciona un proyecto para comenzar."
	PlaceholderPrompt    = "Selecciona un proyecto para comenzar."

	ErrLoadHistoryText = "Error al cargar los mensajes del proyecto. Inténtalo de nuevo."
	ErrDispatchText    = "Hubo un problema al procesar tu mensaje. Por favor, inténtalo de nuevo."
)

// Bubble is one rendered message: literal text plus attribution. Immutable
// once appended.
type Bubble struct {
	Text    string
	FromBot bool
}

// Transcript is the view-model for the conversation pane. It is mutated
// only from the UI goroutine; loaders and dispatchers return bubbles rather
// than appending concurrently.
type Transcript struct {
	bubbles []Bubble
	logger  *zap.Logger
}

func NewTranscript(logger *zap.Logger) *Transcript {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transcript{logger: logger}
}

// AppendText adds a bubble. Empty text never produces a blank bubble: a
// role-dependent fallback is shown instead and the incident is logged.
func (t *Transcript) AppendText(text string, fromBot bool) {
	if text == "" {
		t.logger.Error("mensaje con texto vacío o inválido", zap.Bool("es_bot", fromBot))
		if fromBot {
			text = FallbackBotText
		} else {
			text = FallbackUserText
		}
	}
	t.bubbles = append(t.bubbles, Bubble{Text: text, FromBot: fromBot})
}

// AppendContent adds a bubble from a raw server value. JSON strings render
// as their value; any other shape is serialized losslessly to JSON text so
// the view never receives a non-renderable value.
func (t *Transcript) AppendContent(raw json.RawMessage, fromBot bool) {
	t.AppendText(rawText(raw), fromBot)
}

func rawText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}
	return buf.String()
}

// Append adds ready-made bubbles, e.g. a freshly loaded history.
func (t *Transcript) Append(bs ...Bubble) {
	for _, b := range bs {
		t.AppendText(b.Text, b.FromBot)
	}
}

// Clear drops every bubble; used unconditionally before a project switch so
// stale messages never leak across conversations.
func (t *Transcript) Clear() {
	t.bubbles = nil
}

// Bubbles returns the rendered history, oldest first.
func (t *Transcript) Bubbles() []Bubble {
	return t.bubbles
}

func (t *Transcript) Len() int { return len(t.bubbles) }
