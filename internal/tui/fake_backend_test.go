package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"panel-cli/internal/api"
	"panel-cli/internal/model"
)

// fakeBackend records every call so tests can assert which requests a key
// sequence produced (including "none at all").
type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	projects    []model.Project
	projectsErr error
	users       []model.User
	usersErr    error

	messages    map[int][]api.Message
	messagesErr error
	saveErr     error
	saved       []api.NewMessage

	reply    string
	replyOK  bool
	replyErr error

	detailErr error
}

func (f *fakeBackend) record(format string, args ...any) {
	f.mu.Lock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	f.mu.Unlock()
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBackend) Projects(context.Context) ([]model.Project, error) {
	f.record("Projects")
	return f.projects, f.projectsErr
}

func (f *fakeBackend) Project(_ context.Context, id int) (model.Project, error) {
	f.record("Project %d", id)
	if f.detailErr != nil {
		return model.Project{}, f.detailErr
	}
	for _, p := range f.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Project{}, &api.Error{Status: 404, Message: "Proyecto no encontrado"}
}

func (f *fakeBackend) UpdateProject(_ context.Context, id int, nombre, descripcion string) error {
	f.record("UpdateProject %d %s %s", id, nombre, descripcion)
	return nil
}

func (f *fakeBackend) DeleteProject(_ context.Context, id int) error {
	f.record("DeleteProject %d", id)
	return nil
}

func (f *fakeBackend) CreateProject(_ context.Context, nombre, descripcion string) error {
	f.record("CreateProject %s %s", nombre, descripcion)
	return nil
}

func (f *fakeBackend) Users(context.Context) ([]model.User, error) {
	f.record("Users")
	return f.users, f.usersErr
}

func (f *fakeBackend) User(_ context.Context, id int) (model.User, error) {
	f.record("User %d", id)
	if f.detailErr != nil {
		return model.User{}, f.detailErr
	}
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, &api.Error{Status: 404, Message: "Usuario no encontrado"}
}

func (f *fakeBackend) UpdateUser(_ context.Context, id int, edit api.UserEdit) error {
	f.record("UpdateUser %d %s", id, edit.Email)
	return nil
}

func (f *fakeBackend) DeleteUser(_ context.Context, id int) error {
	f.record("DeleteUser %d", id)
	return nil
}

func (f *fakeBackend) CreateUser(_ context.Context, u api.NewUser) error {
	f.record("CreateUser %s", u.Username)
	return nil
}

func (f *fakeBackend) Messages(_ context.Context, projectID int) ([]api.Message, error) {
	f.record("Messages %d", projectID)
	return f.messages[projectID], f.messagesErr
}

func (f *fakeBackend) SaveMessage(_ context.Context, msg api.NewMessage) error {
	f.record("SaveMessage %d", msg.ProjectID)
	f.mu.Lock()
	f.saved = append(f.saved, msg)
	f.mu.Unlock()
	return f.saveErr
}

func (f *fakeBackend) SendMessage(_ context.Context, text string, projectID int) (string, bool, error) {
	f.record("SendMessage %d %s", projectID, text)
	return f.reply, f.replyOK, f.replyErr
}

func textMsg(s string, fromBot bool) api.Message {
	raw, _ := json.Marshal(s)
	m := api.Message{Content: raw}
	if fromBot {
		m.FromBot = true
	}
	return m
}

// newTestModel builds an appModel with a sized window and the projects
// already loaded, the state right after startup settles.
func newTestModel(b *fakeBackend) appModel {
	m := newAppModel(b, zap.NewNop())
	mAny, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = mAny.(appModel)
	mAny, _ = m.Update(projectsLoadedMsg{projects: b.projects})
	m = mAny.(appModel)
	mAny, _ = m.Update(usersLoadedMsg{users: b.users})
	return mAny.(appModel)
}

func runes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
