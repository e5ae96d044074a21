package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"panel-cli/internal/api"
	"panel-cli/internal/chat"
)

// Commands run off the update goroutine, so they only read the backend and
// report results as messages. The transcript is mutated exclusively by
// Update when those messages land.

func (m appModel) loadProjectsCmd() tea.Cmd {
	return func() tea.Msg {
		ps, err := m.api.Projects(context.Background())
		return projectsLoadedMsg{projects: ps, err: err}
	}
}

func (m appModel) loadUsersCmd() tea.Cmd {
	return func() tea.Msg {
		us, err := m.api.Users(context.Background())
		return usersLoadedMsg{users: us, err: err}
	}
}

func (m appModel) loadHistoryCmd(projectID int) tea.Cmd {
	loader := chat.NewLoader(m.api, m.logger)
	return func() tea.Msg {
		bs, err := loader.LoadProject(context.Background(), projectID)
		return historyLoadedMsg{projectID: projectID, bubbles: bs, err: err}
	}
}

func (m appModel) exchangeCmd(projectID int, text string) tea.Cmd {
	d := chat.NewDispatcher(m.api, m.api, m.logger)
	return func() tea.Msg {
		reply, ok, err := d.Exchange(context.Background(), projectID, text)
		return exchangeDoneMsg{projectID: projectID, reply: reply, ok: ok, err: err}
	}
}

func (m appModel) loadProjectDetailCmd(id int) tea.Cmd {
	return func() tea.Msg {
		p, err := m.api.Project(context.Background(), id)
		return projectDetailMsg{forID: id, project: p, err: err}
	}
}

func (m appModel) loadUserDetailCmd(id int) tea.Cmd {
	return func() tea.Msg {
		u, err := m.api.User(context.Background(), id)
		return userDetailMsg{forID: id, user: u, err: err}
	}
}

func (m appModel) saveProjectCmd(id int, nombre, descripcion string) tea.Cmd {
	return func() tea.Msg {
		var err error
		if id == 0 {
			err = m.api.CreateProject(context.Background(), nombre, descripcion)
		} else {
			err = m.api.UpdateProject(context.Background(), id, nombre, descripcion)
		}
		return formSavedMsg{kind: "proyecto", created: id == 0, err: err}
	}
}

func (m appModel) saveUserCmd(f *entityForm) tea.Cmd {
	id := f.id
	first := f.value(userFieldFirstName)
	last := f.value(userFieldLastName)
	email := f.value(userFieldEmail)
	username := f.value(userFieldUsername)
	password := f.value(userFieldPassword)
	return func() tea.Msg {
		var err error
		if id == 0 {
			err = m.api.CreateUser(context.Background(), api.NewUser{
				FirstName: first,
				LastName:  last,
				Email:     email,
				Username:  username,
				Password:  password,
			})
		} else {
			// A blank password stays off the wire, which keeps the
			// current one on the server.
			err = m.api.UpdateUser(context.Background(), id, api.UserEdit{
				FirstName: first,
				LastName:  last,
				Email:     email,
				Username:  username,
				Password:  password,
			})
		}
		return formSavedMsg{kind: "usuario", created: id == 0, err: err}
	}
}

func (m appModel) deleteCmd(target deleteTarget) tea.Cmd {
	return func() tea.Msg {
		var err error
		if target.kind == "usuario" {
			err = m.api.DeleteUser(context.Background(), target.id)
		} else {
			err = m.api.DeleteProject(context.Background(), target.id)
		}
		return deleteDoneMsg{target: target, err: err}
	}
}
