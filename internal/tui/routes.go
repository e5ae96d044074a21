package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"panel-cli/internal/chat"
	"panel-cli/internal/model"
)

// Key handling is a lookup table over (context, key) instead of a switch
// per view. Adding a binding means adding a row here, and the table itself
// documents what each screen answers to.

type routeContext int

const (
	routeChatList routeContext = iota
	routeChatInput
	routeUsers
)

type routeKey struct {
	ctx routeContext
	key string
}

type keyHandler func(m *appModel) tea.Cmd

var keyRoutes = map[routeKey]keyHandler{
	{routeChatList, "enter"}: (*appModel).activateSelectedProject,
	{routeChatList, "tab"}:   (*appModel).focusMessageInput,
	{routeChatList, "n"}:     (*appModel).openNewProjectForm,
	{routeChatList, "e"}:     (*appModel).openEditProjectForm,
	{routeChatList, "d"}:     (*appModel).confirmDeleteProject,
	{routeChatList, "r"}:     (*appModel).reloadProjects,
	{routeChatList, "u"}:     (*appModel).gotoUsers,
	{routeChatList, "?"}:     (*appModel).openHelp,
	{routeChatList, "q"}:     quitHandler,

	{routeChatInput, "enter"}: (*appModel).sendMessage,
	{routeChatInput, "tab"}:   (*appModel).focusProjectsList,
	{routeChatInput, "esc"}:   (*appModel).focusProjectsList,

	{routeUsers, "enter"}: (*appModel).openEditUserForm,
	{routeUsers, "e"}:     (*appModel).openEditUserForm,
	{routeUsers, "n"}:     (*appModel).openNewUserForm,
	{routeUsers, "d"}:     (*appModel).confirmDeleteUser,
	{routeUsers, "r"}:     (*appModel).reloadUsers,
	{routeUsers, "p"}:     (*appModel).gotoChat,
	{routeUsers, "esc"}:   (*appModel).gotoChat,
	{routeUsers, "?"}:     (*appModel).openHelp,
	{routeUsers, "q"}:     quitHandler,
}

func quitHandler(_ *appModel) tea.Cmd { return tea.Quit }

func (m *appModel) routeContext() routeContext {
	if m.view == viewUsers {
		return routeUsers
	}
	if m.focus == focusInput {
		return routeChatInput
	}
	return routeChatList
}

func (m *appModel) activateSelectedProject() tea.Cmd {
	it, ok := m.projectsList.SelectedItem().(projectListItem)
	if !ok {
		return nil
	}
	m.activeProjectID = it.project.ID
	m.activeProjectName = projectDisplayName(it.project)
	m.transcript.Clear()
	m.loadingHistory = true
	m.refreshProjectItems()
	m.refreshTranscriptView()
	m.focus = focusInput
	m.input.Focus()
	return m.loadHistoryCmd(it.project.ID)
}

func (m *appModel) focusMessageInput() tea.Cmd {
	m.focus = focusInput
	m.input.Focus()
	return nil
}

func (m *appModel) focusProjectsList() tea.Cmd {
	m.focus = focusList
	m.input.Blur()
	return nil
}

// sendMessage validates, renders the user bubble right away, and only then
// talks to the network. A blank message is a silent no-op all the way down.
func (m *appModel) sendMessage() tea.Cmd {
	d := chat.NewDispatcher(m.api, m.api, m.logger)
	text, err := d.Validate(m.input.Value())
	if err != nil {
		return nil
	}
	if m.activeProjectID == 0 {
		m.showNotice("Por favor, selecciona un proyecto primero")
		return nil
	}
	m.transcript.AppendText(text, false)
	m.refreshTranscriptView()
	m.input.SetValue("")
	m.sending = true
	return m.exchangeCmd(m.activeProjectID, text)
}

func (m *appModel) openNewProjectForm() tea.Cmd {
	m.form = newProjectForm(model.Project{})
	m.modal = modalProjectForm
	return nil
}

// openEditProjectForm opens the form immediately with the list row's
// values and fills in the rest when the detail request answers.
func (m *appModel) openEditProjectForm() tea.Cmd {
	it, ok := m.projectsList.SelectedItem().(projectListItem)
	if !ok {
		return nil
	}
	m.form = newProjectForm(it.project)
	m.modal = modalProjectForm
	return m.loadProjectDetailCmd(it.project.ID)
}

func (m *appModel) confirmDeleteProject() tea.Cmd {
	it, ok := m.projectsList.SelectedItem().(projectListItem)
	if !ok {
		return nil
	}
	m.pendingDelete = deleteTarget{kind: "proyecto", id: it.project.ID, name: projectDisplayName(it.project)}
	m.confirmFocus = confirmFocusCancel
	m.modal = modalConfirmDelete
	return nil
}

func (m *appModel) reloadProjects() tea.Cmd {
	return m.loadProjectsCmd()
}

func (m *appModel) gotoUsers() tea.Cmd {
	m.view = viewUsers
	return m.loadUsersCmd()
}

func (m *appModel) gotoChat() tea.Cmd {
	m.view = viewChat
	m.focus = focusList
	m.input.Blur()
	return nil
}

func (m *appModel) openEditUserForm() tea.Cmd {
	it, ok := m.usersList.SelectedItem().(userListItem)
	if !ok {
		return nil
	}
	// Seed the form from the row's joined display name so it never opens
	// blank; the detail request replaces it with the stored fields.
	fallback := it.user
	fallback.FirstName, fallback.LastName = model.SplitFullName(it.user.DisplayName())
	m.form = newUserForm(fallback)
	m.modal = modalUserForm
	return m.loadUserDetailCmd(it.user.ID)
}

func (m *appModel) openNewUserForm() tea.Cmd {
	m.form = newUserForm(model.User{})
	m.modal = modalUserForm
	return nil
}

func (m *appModel) confirmDeleteUser() tea.Cmd {
	it, ok := m.usersList.SelectedItem().(userListItem)
	if !ok {
		return nil
	}
	m.pendingDelete = deleteTarget{kind: "usuario", id: it.user.ID, name: it.user.DisplayName()}
	m.confirmFocus = confirmFocusCancel
	m.modal = modalConfirmDelete
	return nil
}

func (m *appModel) reloadUsers() tea.Cmd {
	return m.loadUsersCmd()
}

func (m *appModel) openHelp() tea.Cmd {
	m.modal = modalHelp
	return nil
}

func (m *appModel) showNotice(text string) {
	m.noticeText = text
	m.modal = modalNotice
}

// closeNotice returns to the form the notice interrupted, if any.
func (m *appModel) closeNotice() {
	m.noticeText = ""
	m.modal = modalNone
	if m.form != nil {
		if m.form.kind == "usuario" {
			m.modal = modalUserForm
		} else {
			m.modal = modalProjectForm
		}
	}
}
