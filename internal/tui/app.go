package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"panel-cli/internal/api"
	"panel-cli/internal/chat"
	"panel-cli/internal/model"
)

// Run starts the interactive panel on the alternate screen.
func Run(client *api.Client, logger *zap.Logger) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()

	m := newAppModel(client, logger)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type appModel struct {
	api    backend
	logger *zap.Logger

	width  int
	height int

	view  view
	focus focus

	projectsList list.Model
	usersList    list.Model

	transcript *chat.Transcript
	chatView   viewport.Model
	input      textinput.Model

	// activeProjectID is the conversation currently on screen; zero means
	// none selected yet.
	activeProjectID   int
	activeProjectName string
	loadingHistory    bool
	sending           bool

	projects []model.Project
	users    []model.User

	modal         modalKind
	confirmFocus  confirmModalFocus
	pendingDelete deleteTarget
	noticeText    string
	form          *entityForm

	// statusText is one-line footer feedback (load errors and the like).
	statusText string
}

func newAppModel(b backend, logger *zap.Logger) appModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := appModel{
		api:    b,
		logger: logger,
		view:   viewChat,
		focus:  focusList,
	}

	m.projectsList = newList("Proyectos", "Selecciona un proyecto", []list.Item{})
	m.projectsList.SetDelegate(newCompactItemDelegate())
	m.usersList = newList("Usuarios", "Gestiona los usuarios", []list.Item{})
	m.usersList.SetDelegate(newCompactItemDelegate())

	m.transcript = chat.NewTranscript(logger)
	// The pane opens with the bot asking for a project, like the web
	// panel does on page load.
	m.transcript.AppendText(chat.GreetingNoProject, true)
	m.chatView = viewport.New(0, 0)

	m.input = textinput.New()
	m.input.Placeholder = "Escribe un mensaje…"
	m.input.CharLimit = 0
	m.input.Width = 40

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadProjectsCmd(), m.loadUsersCmd())
}

func (m appModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(m.headerLine())

	var body string
	switch m.view {
	case viewUsers:
		body = m.usersList.View()
	default:
		body = m.viewChat()
	}

	footer := styleMuted().Render(m.footerLine())
	if m.statusText != "" {
		footer = lipgloss.NewStyle().Foreground(colorError).Render(m.statusText)
	}
	screen := strings.Join([]string{header, body, footer}, "\n\n")

	if m.modal != modalNone {
		return placeCentered(m.width, m.height, m.renderModal())
	}
	return screen
}

func (m appModel) headerLine() string {
	switch m.view {
	case viewUsers:
		return "Panel · Usuarios"
	default:
		if m.activeProjectID != 0 {
			return "Panel · " + m.activeProjectName
		}
		return "Panel · Proyectos"
	}
}

func (m appModel) footerLine() string {
	if m.statusText != "" {
		return m.statusText
	}
	switch m.view {
	case viewUsers:
		return "enter/e: editar  n: nuevo  d: eliminar  r: recargar  esc: chat  ?: ayuda  q: salir"
	default:
		if m.focus == focusInput {
			return "enter: enviar  tab/esc: volver a la lista  ctrl+c: salir"
		}
		return "enter: abrir chat  tab: escribir  n/e/d: proyecto  u: usuarios  ?: ayuda  q: salir"
	}
}

func (m appModel) renderModal() string {
	switch m.modal {
	case modalConfirmDelete:
		title := "Eliminar proyecto"
		body := "¿Estás seguro que deseas eliminar este proyecto?"
		if m.pendingDelete.kind == "usuario" {
			title = "Eliminar usuario"
			body = "¿Estás seguro que deseas eliminar este usuario?"
		}
		if m.pendingDelete.name != "" {
			body += "\n\n" + lipgloss.NewStyle().Bold(true).Render(m.pendingDelete.name)
		}
		return renderConfirmModal(m.width, title, body, "Eliminar", "Cancelar", m.confirmFocus)
	case modalProjectForm, modalUserForm:
		if m.form != nil {
			return m.form.render(m.width)
		}
		return ""
	case modalNotice:
		return renderNoticeModal(m.width, m.noticeText)
	case modalHelp:
		return renderHelpModal(m.width)
	default:
		return ""
	}
}

func (m appModel) viewChat() string {
	leftW, rightW, bodyH := m.chatLayout()

	left := normalizePane(m.projectsList.View(), leftW, bodyH)

	transcriptBox := m.chatView.View()
	if m.loadingHistory {
		transcriptBox = styleMuted().Render("Cargando la conversación…")
	}
	inputBox := lipgloss.NewStyle().
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Width(rightW).
		Render(m.input.View())
	// The rule doubles as the typing indicator while the bot answers.
	rule := styleMuted().Render(strings.Repeat(glyphHRule(), rightW))
	if m.sending {
		rule = styleMuted().Render(glyphBot() + " escribiendo…")
	}
	right := normalizePane(strings.Join([]string{transcriptBox, rule, inputBox}, "\n"), rightW, bodyH)

	gap := strings.Repeat(" ", 2)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)
}

func (m appModel) chatLayout() (leftW, rightW, bodyH int) {
	leftW = m.width / 3
	if leftW < 24 {
		leftW = 24
	}
	if leftW > 44 {
		leftW = 44
	}
	rightW = m.width - leftW - 2
	if rightW < 30 {
		rightW = 30
	}
	bodyH = m.height - 6
	if bodyH < 8 {
		bodyH = 8
	}
	return leftW, rightW, bodyH
}

func (m *appModel) resize() {
	leftW, rightW, bodyH := m.chatLayout()
	m.projectsList.SetSize(leftW, bodyH)
	m.usersList.SetSize(m.width, bodyH)
	m.chatView.Width = rightW
	m.chatView.Height = bodyH - 2
	m.input.Width = rightW - 2
	m.refreshTranscriptView()
}

// refreshTranscriptView re-renders the conversation and pins the viewport
// to the newest message, like the browser panel's scroll-to-bottom.
func (m *appModel) refreshTranscriptView() {
	m.chatView.SetContent(renderTranscript(m.transcript.Bubbles(), m.chatView.Width))
	m.chatView.GotoBottom()
}

func (m *appModel) refreshProjectItems() {
	curID := 0
	if it, ok := m.projectsList.SelectedItem().(projectListItem); ok {
		curID = it.project.ID
	}
	items := make([]list.Item, 0, len(m.projects))
	for _, p := range m.projects {
		items = append(items, projectListItem{project: p, active: p.ID == m.activeProjectID})
	}
	m.projectsList.SetItems(items)
	if curID != 0 {
		selectProjectByID(&m.projectsList, curID)
	}
}

func (m *appModel) refreshUserItems() {
	curID := 0
	if it, ok := m.usersList.SelectedItem().(userListItem); ok {
		curID = it.user.ID
	}
	items := make([]list.Item, 0, len(m.users))
	for _, u := range m.users {
		items = append(items, userListItem{user: u})
	}
	m.usersList.SetItems(items)
	if curID != 0 {
		selectUserByID(&m.usersList, curID)
	}
}
