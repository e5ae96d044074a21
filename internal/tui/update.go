package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"panel-cli/internal/chat"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case projectsLoadedMsg:
		if msg.err != nil {
			m.logger.Error("no se pudieron cargar los proyectos", zap.Error(msg.err))
			m.statusText = "Error al cargar los proyectos"
			return m, nil
		}
		m.projects = msg.projects
		m.statusText = ""
		m.refreshProjectItems()
		return m, nil

	case usersLoadedMsg:
		if msg.err != nil {
			m.logger.Error("no se pudieron cargar los usuarios", zap.Error(msg.err))
			m.statusText = "Error al cargar los usuarios"
			return m, nil
		}
		m.users = msg.users
		m.statusText = ""
		m.refreshUserItems()
		return m, nil

	case historyLoadedMsg:
		// A stale answer for a project the user already left is dropped.
		if msg.projectID != m.activeProjectID {
			return m, nil
		}
		m.loadingHistory = false
		m.transcript.Clear()
		if msg.err != nil {
			m.transcript.Append(chat.ErrLoadBubble())
		} else {
			m.transcript.Append(msg.bubbles...)
		}
		m.refreshTranscriptView()
		return m, nil

	case exchangeDoneMsg:
		m.sending = false
		if msg.projectID != m.activeProjectID {
			return m, nil
		}
		// The reply renders even when persisting it failed; the error
		// bubble then follows it.
		if msg.ok {
			m.transcript.AppendText(msg.reply, true)
		}
		if msg.err != nil {
			m.transcript.Append(chat.ErrDispatchBubble())
		}
		m.refreshTranscriptView()
		return m, nil

	case projectDetailMsg:
		if m.form == nil || m.form.kind != "proyecto" || m.form.id != msg.forID {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Error("no se pudieron cargar los datos del proyecto", zap.Int("id", msg.forID), zap.Error(msg.err))
			m.showNotice("Error al cargar los datos del proyecto")
			return m, nil
		}
		m.form.populateFromProject(msg.project)
		return m, nil

	case userDetailMsg:
		if m.form == nil || m.form.kind != "usuario" || m.form.id != msg.forID {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Error("no se pudieron cargar los datos del usuario", zap.Int("id", msg.forID), zap.Error(msg.err))
			m.showNotice("Error al cargar los datos del usuario")
			return m, nil
		}
		m.form.populateFromUser(msg.user)
		return m, nil

	case formSavedMsg:
		return m.onFormSaved(msg)

	case deleteDoneMsg:
		return m.onDeleteDone(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		if !m.listFiltering() {
			if h, ok := keyRoutes[routeKey{m.routeContext(), msg.String()}]; ok {
				cmd := h(&m)
				return m, cmd
			}
		}
	}

	return m.updateFocusedWidget(msg)
}

// listFiltering reports whether the visible list's "/" filter owns the
// keyboard, in which case plain letters must not trigger bindings.
func (m *appModel) listFiltering() bool {
	if m.view == viewUsers {
		return m.usersList.FilterState() == list.Filtering
	}
	return m.focus == focusList && m.projectsList.FilterState() == list.Filtering
}

func (m appModel) updateFocusedWidget(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.modal == modalProjectForm || m.modal == modalUserForm:
		if m.form != nil {
			cmd = m.form.update(msg)
		}
	case m.view == viewUsers:
		m.usersList, cmd = m.usersList.Update(msg)
	case m.focus == focusInput:
		if key, ok := msg.(tea.KeyMsg); ok && isScrollKey(key) {
			m.chatView, cmd = m.chatView.Update(msg)
		} else {
			m.input, cmd = m.input.Update(msg)
		}
	default:
		m.projectsList, cmd = m.projectsList.Update(msg)
	}
	return m, cmd
}

func isScrollKey(key tea.KeyMsg) bool {
	switch key.String() {
	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		return true
	}
	return false
}

func (m appModel) updateModal(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalNotice:
		switch key.String() {
		case "enter", "esc", " ":
			m.closeNotice()
		}
		return m, nil

	case modalHelp:
		switch key.String() {
		case "enter", "esc", "q", "?":
			m.modal = modalNone
		}
		return m, nil

	case modalConfirmDelete:
		switch key.String() {
		case "tab", "left", "right":
			if m.confirmFocus == confirmFocusConfirm {
				m.confirmFocus = confirmFocusCancel
			} else {
				m.confirmFocus = confirmFocusConfirm
			}
			return m, nil
		case "y", "s":
			return m.runPendingDelete()
		case "n", "esc":
			m.modal = modalNone
			m.pendingDelete = deleteTarget{}
			return m, nil
		case "enter":
			if m.confirmFocus == confirmFocusConfirm {
				return m.runPendingDelete()
			}
			m.modal = modalNone
			m.pendingDelete = deleteTarget{}
			return m, nil
		}
		return m, nil

	case modalProjectForm, modalUserForm:
		return m.updateFormModal(key)
	}
	return m, nil
}

func (m appModel) runPendingDelete() (tea.Model, tea.Cmd) {
	target := m.pendingDelete
	m.modal = modalNone
	m.pendingDelete = deleteTarget{}
	return m, m.deleteCmd(target)
}

func (m appModel) updateFormModal(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil {
		m.modal = modalNone
		return m, nil
	}

	inTextarea := f.hasArea && f.focus == len(f.inputs)

	switch key.String() {
	case "esc":
		m.form = nil
		m.modal = modalNone
		return m, nil
	case "tab":
		f.focusNext()
		return m, nil
	case "shift+tab":
		f.focusPrev()
		return m, nil
	case "down":
		if !inTextarea {
			f.focusNext()
			return m, nil
		}
	case "up":
		if !inTextarea {
			f.focusPrev()
			return m, nil
		}
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		// Enter inside the description keeps writing; on the last input
		// it submits, anywhere else it advances.
		if !inTextarea {
			if f.focus == fieldCount(f)-1 {
				return m.submitForm()
			}
			f.focusNext()
			return m, nil
		}
	}

	cmd := f.update(key)
	return m, cmd
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil {
		m.modal = modalNone
		return m, nil
	}
	if notice, ok := f.validate(); !ok {
		m.showNotice(notice)
		return m, nil
	}
	if f.kind == "usuario" {
		return m, m.saveUserCmd(f)
	}
	return m, m.saveProjectCmd(f.id, f.value(projectFieldName), f.description())
}

func (m appModel) onFormSaved(msg formSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Error("no se pudo guardar", zap.String("tipo", msg.kind), zap.Error(msg.err))
		verb := "editar"
		if msg.created {
			verb = "crear"
		}
		article := "el proyecto"
		if msg.kind == "usuario" {
			article = "el usuario"
		}
		m.showNotice("No se pudo " + verb + " " + article + ": " + msg.err.Error())
		return m, nil
	}

	m.form = nil
	m.modal = modalNone

	var reload tea.Cmd
	if msg.kind == "usuario" {
		reload = m.loadUsersCmd()
		if !msg.created {
			m.showNotice("Usuario modificado correctamente")
		}
	} else {
		reload = m.loadProjectsCmd()
		if !msg.created {
			m.showNotice("Proyecto modificado correctamente")
		}
	}
	return m, reload
}

func (m appModel) onDeleteDone(msg deleteDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Error("no se pudo eliminar", zap.String("tipo", msg.target.kind), zap.Int("id", msg.target.id), zap.Error(msg.err))
		if msg.target.kind == "usuario" {
			m.showNotice("No se pudo eliminar el usuario: " + msg.err.Error())
		} else {
			m.showNotice("No se pudo eliminar el proyecto: " + msg.err.Error())
		}
		return m, nil
	}

	if msg.target.kind == "usuario" {
		m.showNotice("Usuario eliminado correctamente")
		return m, m.loadUsersCmd()
	}

	// Deleting the open conversation's project resets the chat pane to
	// its pick-a-project state.
	if msg.target.id == m.activeProjectID {
		m.activeProjectID = 0
		m.activeProjectName = ""
		m.transcript.Clear()
		m.transcript.AppendText(chat.GreetingNoProject, true)
		m.refreshTranscriptView()
		m.focus = focusList
		m.input.Blur()
	}
	m.showNotice("Proyecto eliminado correctamente")
	return m, m.loadProjectsCmd()
}
