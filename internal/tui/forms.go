package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"panel-cli/internal/model"
)

// Form field indexes. The project description lives in the textarea,
// which always sits after the inputs; the user form is inputs only.
const projectFieldName = 0

const (
	userFieldFirstName = iota
	userFieldLastName
	userFieldEmail
	userFieldUsername
	userFieldPassword
)

// entityForm is the modal edit/create form for projects and users. A zero
// id means "create".
type entityForm struct {
	kind  string // "proyecto" | "usuario"
	id    int
	title string

	inputs   []textinput.Model
	labels   []string
	textarea textarea.Model
	hasArea  bool
	focus    int

	// fetched reports whether the detail request already populated the
	// fields; until then they hold the fallback taken from the list row.
	fetched bool
}

func fieldCount(f *entityForm) int {
	n := len(f.inputs)
	if f.hasArea {
		n++
	}
	return n
}

func newFormInput(placeholder string, value string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	in.SetValue(value)
	return in
}

func newProjectForm(p model.Project) *entityForm {
	f := &entityForm{
		kind:   "proyecto",
		id:     p.ID,
		title:  "Editar proyecto",
		labels: []string{"Nombre"},
	}
	if p.ID == 0 {
		f.title = "Nuevo proyecto"
	}
	f.inputs = []textinput.Model{
		newFormInput("Nombre del proyecto", p.Name, 120),
	}

	f.textarea = textarea.New()
	f.textarea.Placeholder = "Descripción"
	f.textarea.CharLimit = 0
	f.textarea.SetWidth(40)
	f.textarea.SetHeight(4)
	f.textarea.ShowLineNumbers = false
	f.textarea.SetValue(p.Description)
	f.hasArea = true

	f.setFocus(0)
	return f
}

func newUserForm(u model.User) *entityForm {
	f := &entityForm{
		kind:   "usuario",
		id:     u.ID,
		title:  "Editar usuario",
		labels: []string{"Nombre", "Apellidos", "Correo", "Usuario", "Contraseña"},
	}
	if u.ID == 0 {
		f.title = "Nuevo usuario"
	}
	f.inputs = []textinput.Model{
		newFormInput("Nombre", u.FirstName, 80),
		newFormInput("Apellidos", u.LastName, 120),
		newFormInput("correo@ejemplo.com", u.Email, 120),
		newFormInput("usuario", u.Username, 60),
		newFormInput("(en blanco para no cambiarla)", "", 120),
	}
	f.inputs[userFieldPassword].EchoMode = textinput.EchoPassword
	if u.ID == 0 {
		f.inputs[userFieldPassword].Placeholder = "Contraseña"
	}
	f.setFocus(0)
	return f
}

// populateFromProject overwrites the fallback values once the detail
// request lands. The caller checks the form still targets that project.
func (f *entityForm) populateFromProject(p model.Project) {
	f.inputs[projectFieldName].SetValue(p.Name)
	f.textarea.SetValue(p.Description)
	f.fetched = true
}

func (f *entityForm) populateFromUser(u model.User) {
	f.inputs[userFieldFirstName].SetValue(u.FirstName)
	f.inputs[userFieldLastName].SetValue(u.LastName)
	f.inputs[userFieldEmail].SetValue(u.Email)
	f.inputs[userFieldUsername].SetValue(u.Username)
	f.fetched = true
}

func (f *entityForm) setFocus(idx int) {
	n := fieldCount(f)
	if n == 0 {
		return
	}
	idx = ((idx % n) + n) % n
	f.focus = idx
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	if f.hasArea {
		if idx == len(f.inputs) {
			f.textarea.Focus()
		} else {
			f.textarea.Blur()
		}
	}
}

func (f *entityForm) focusNext() { f.setFocus(f.focus + 1) }
func (f *entityForm) focusPrev() { f.setFocus(f.focus - 1) }

// update forwards a message to the focused widget.
func (f *entityForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.hasArea && f.focus == len(f.inputs) {
		f.textarea, cmd = f.textarea.Update(msg)
		return cmd
	}
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *entityForm) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *entityForm) description() string {
	return strings.TrimSpace(f.textarea.Value())
}

// validate mirrors the panel's form checks: a project needs a name, a
// user needs every field except the password (which, on edit, blank
// means "keep the current one").
func (f *entityForm) validate() (notice string, ok bool) {
	switch f.kind {
	case "proyecto":
		if f.value(projectFieldName) == "" {
			return "Faltan datos para editar el proyecto", false
		}
	case "usuario":
		required := []int{userFieldFirstName, userFieldLastName, userFieldEmail, userFieldUsername}
		for _, i := range required {
			if f.value(i) == "" {
				return "Faltan datos para editar el usuario", false
			}
		}
		if f.id == 0 && f.value(userFieldPassword) == "" {
			return "Faltan datos para editar el usuario", false
		}
	}
	return "", true
}

func (f *entityForm) render(width int) string {
	bodyW := modalBodyWidth(width)
	label := styleMuted()

	var rows []string
	for i := range f.inputs {
		rows = append(rows, label.Render(f.labels[i]), f.inputs[i].View())
	}
	if f.hasArea {
		rows = append(rows, label.Render("Descripción"), f.textarea.View())
	}
	rows = append(rows, "", styleMuted().Width(bodyW).Render("tab: siguiente campo   ctrl+s/enter: guardar   esc: cancelar"))

	return renderModalBox(width, f.title, lipgloss.JoinVertical(lipgloss.Left, rows...))
}
