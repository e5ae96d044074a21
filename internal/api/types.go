package api

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// BoolFlag tolerates the server's mixed encodings of es_bot: true/false,
// 0/1, "0"/"1" and null have all been observed. Anything falsy decodes to
// false.
type BoolFlag bool

func (b *BoolFlag) UnmarshalJSON(data []byte) error {
	switch s := strings.TrimSpace(string(data)); s {
	case "true", "1", `"1"`, `"true"`:
		*b = true
	default:
		// null, false, 0, "", unknown strings: treat as user-authored.
		*b = false
	}
	return nil
}

func (b BoolFlag) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}

// Timestamp parses fecha_creacion, which the server emits as Python
// isoformat (no zone) but has also been seen as RFC3339.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Not a string (null, number...): leave the zero time so the
		// message still renders, just unordered.
		t.Time = time.Time{}
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// Message is one chat record as served by GET /api/proyecto/{id}/mensajes.
// Content stays raw: the server owns the value and has produced non-string
// payloads; the view serializes them losslessly.
type Message struct {
	Content   json.RawMessage `json:"contenido"`
	FromBot   BoolFlag        `json:"es_bot"`
	CreatedAt Timestamp       `json:"fecha_creacion"`
}

// Text decodes Content for display. JSON strings become their value;
// everything else is rendered as compact JSON so no payload is ever lost.
func (m Message) Text() string {
	return rawToText(m.Content)
}

func rawToText(raw json.RawMessage) string {
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

// NewMessage is the POST /api/mensaje payload.
type NewMessage struct {
	Content   string `json:"contenido"`
	FromBot   bool   `json:"es_bot"`
	ProjectID int    `json:"proyecto_id"`
}

// UserEdit is the PUT /api/usuario/editar/{id} payload. A blank password is
// omitted so the server keeps the current one.
type UserEdit struct {
	FirstName string `json:"nombre"`
	LastName  string `json:"apellidos"`
	Email     string `json:"correo"`
	Username  string `json:"user"`
	Password  string `json:"contrasena,omitempty"`
}

// NewUser feeds the /usuario/nuevo form.
type NewUser struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
}
