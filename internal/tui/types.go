package tui

import (
	"context"

	"panel-cli/internal/api"
	"panel-cli/internal/chat"
	"panel-cli/internal/model"
)

type view int

const (
	viewChat view = iota
	viewUsers
)

// focus says which widget receives typing in the chat view. Lists and the
// message input both want plain letters, so only one owns the keyboard.
type focus int

const (
	focusList focus = iota
	focusInput
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmDelete
	modalProjectForm
	modalUserForm
	modalNotice
	modalHelp
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// backend is the slice of the HTTP client the TUI drives. Tests substitute
// an in-memory fake.
type backend interface {
	chat.Store
	chat.Responder

	Projects(ctx context.Context) ([]model.Project, error)
	Project(ctx context.Context, id int) (model.Project, error)
	UpdateProject(ctx context.Context, id int, nombre, descripcion string) error
	DeleteProject(ctx context.Context, id int) error
	CreateProject(ctx context.Context, nombre, descripcion string) error

	Users(ctx context.Context) ([]model.User, error)
	User(ctx context.Context, id int) (model.User, error)
	UpdateUser(ctx context.Context, id int, edit api.UserEdit) error
	DeleteUser(ctx context.Context, id int) error
	CreateUser(ctx context.Context, u api.NewUser) error
}

// deleteTarget remembers what the confirm modal is about to remove.
type deleteTarget struct {
	kind string // "proyecto" | "usuario"
	id   int
	name string
}

// Messages produced by backend commands. Each carries its own error so a
// failed request never gets lost between goroutines.

type projectsLoadedMsg struct {
	projects []model.Project
	err      error
}

type usersLoadedMsg struct {
	users []model.User
	err   error
}

type historyLoadedMsg struct {
	projectID int
	bubbles   []chat.Bubble
	err       error
}

type exchangeDoneMsg struct {
	projectID int
	reply     string
	ok        bool
	err       error
}

type projectDetailMsg struct {
	forID   int
	project model.Project
	err     error
}

type userDetailMsg struct {
	forID int
	user  model.User
	err   error
}

type formSavedMsg struct {
	kind    string // "proyecto" | "usuario"
	created bool
	err     error
}

type deleteDoneMsg struct {
	target deleteTarget
	err    error
}
