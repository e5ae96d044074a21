package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL, ChatURL: srv.URL}, zap.NewNop())
}

func TestMessages_DecodesWireForms(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/proyecto/3/mensajes" {
			t.Errorf("path = %s", r.URL.Path)
		}
		io.WriteString(w, `[
			{"contenido": "hola", "es_bot": 0, "fecha_creacion": "2024-03-01T10:30:00"},
			{"contenido": "¡Hola!", "es_bot": 1, "fecha_creacion": "2024-03-01T10:30:05"},
			{"contenido": {"k": 1}, "es_bot": true, "fecha_creacion": null}
		]`)
	}))

	msgs, err := c.Messages(context.Background(), 3)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("len = %d", len(msgs))
	}
	if msgs[0].FromBot || !msgs[1].FromBot || !msgs[2].FromBot {
		t.Fatalf("es_bot coercion wrong: %v %v %v", msgs[0].FromBot, msgs[1].FromBot, msgs[2].FromBot)
	}
	if msgs[0].Text() != "hola" || msgs[2].Text() != `{"k":1}` {
		t.Fatalf("content decoding wrong: %q %q", msgs[0].Text(), msgs[2].Text())
	}
}

func TestSaveMessage_SendsOriginalPayload(t *testing.T) {
	var got map[string]any
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/mensaje" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("body: %v", err)
		}
		io.WriteString(w, `{"success": true, "message": "Mensaje guardado correctamente"}`)
	}))

	err := c.SaveMessage(context.Background(), NewMessage{Content: "Hola", FromBot: false, ProjectID: 3})
	if err != nil {
		t.Fatalf("SaveMessage: %v", err)
	}
	if got["contenido"] != "Hola" || got["es_bot"] != false || got["proyecto_id"] != float64(3) {
		t.Fatalf("payload = %v", got)
	}
}

func TestSendMessage_ReplyAndNoReply(t *testing.T) {
	reply := `{"message": "¡Hola!"}`
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/send-message" {
			t.Errorf("path = %s", r.URL.Path)
		}
		io.WriteString(w, reply)
	}))

	text, ok, err := c.SendMessage(context.Background(), "Hola", 3)
	if err != nil || !ok || text != "¡Hola!" {
		t.Fatalf("SendMessage = (%q, %v, %v)", text, ok, err)
	}

	// A body without a message field is "no response to show", not an error.
	reply = `{}`
	text, ok, err = c.SendMessage(context.Background(), "Hola", 3)
	if err != nil {
		t.Fatalf("SendMessage without message field: %v", err)
	}
	if ok || text != "" {
		t.Fatalf("expected no reply, got (%q, %v)", text, ok)
	}
}

func TestDelete_SurfacesServerError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Requested-With") != "XMLHttpRequest" {
			t.Errorf("missing X-Requested-With header")
		}
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error": "No tienes permiso para eliminar este proyecto"}`)
	}))

	err := c.DeleteProject(context.Background(), 9)
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusForbidden || apiErr.Message != "No tienes permiso para eliminar este proyecto" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestDelete_MalformedErrorBodyFallsBackToStatus(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `<html>boom</html>`)
	}))

	err := c.DeleteUser(context.Background(), 1)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.Error() != "Error del servidor: 500" {
		t.Fatalf("message = %q", apiErr.Error())
	}
}

func TestUpdateUser_OmitsBlankPasswordOnTheWire(t *testing.T) {
	var raw []byte
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{}`)
	}))

	err := c.UpdateUser(context.Background(), 5, UserEdit{
		FirstName: "Ana", LastName: "García", Email: "ana@example.com", Username: "ana",
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	if _, present := m["contrasena"]; present {
		t.Fatalf("contrasena key must be absent: %s", raw)
	}
}

func TestCreateProject_SubmitsForm(t *testing.T) {
	var name, desc string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/proyecto/nuevo" {
			// The form route redirects back to the page; the client follows it.
			io.WriteString(w, "ok")
			return
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		name = r.PostFormValue("project_name")
		desc = r.PostFormValue("project_description")
		http.Redirect(w, r, "/chat", http.StatusFound)
	}))

	if err := c.CreateProject(context.Background(), "Demo", "Proyecto de prueba"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if name != "Demo" || desc != "Proyecto de prueba" {
		t.Fatalf("form = (%q, %q)", name, desc)
	}
}

func TestProjectsAndUsers_DecodeEnvelopes(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/proyectos":
			io.WriteString(w, `{"projects": [{"id": 1, "nombre": "Demo", "descripcion": "d"}]}`)
		case "/api/usuarios":
			io.WriteString(w, `{"users": [{"id": 5, "nombre": "Ana", "apellidos": "García", "correo": "a@b.c", "user": "ana"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))

	ps, err := c.Projects(context.Background())
	if err != nil || len(ps) != 1 || ps[0].Name != "Demo" {
		t.Fatalf("Projects = %v, %v", ps, err)
	}
	us, err := c.Users(context.Background())
	if err != nil || len(us) != 1 || us[0].DisplayName() != "Ana García" {
		t.Fatalf("Users = %v, %v", us, err)
	}
}
