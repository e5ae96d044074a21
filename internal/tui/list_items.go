package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"panel-cli/internal/model"
)

type projectListItem struct {
	project model.Project
	active  bool
}

func (i projectListItem) FilterValue() string { return i.project.Name }
func (i projectListItem) Title() string {
	t := projectDisplayName(i.project)
	if i.active {
		return t + " " + glyphBullet()
	}
	return t
}
func (i projectListItem) Description() string { return fmt.Sprintf("#%d", i.project.ID) }

func projectDisplayName(p model.Project) string {
	if strings.TrimSpace(p.Name) == "" {
		return "(proyecto sin nombre)"
	}
	return strings.TrimSpace(p.Name)
}

type userListItem struct {
	user model.User
}

func (i userListItem) FilterValue() string {
	return i.user.DisplayName() + " " + i.user.Email
}
func (i userListItem) Title() string {
	name := i.user.DisplayName()
	if strings.TrimSpace(name) == "" {
		name = "(usuario sin nombre)"
	}
	if strings.TrimSpace(i.user.Email) != "" {
		return name + "  " + styleMuted().Render("<"+i.user.Email+">")
	}
	return name
}
func (i userListItem) Description() string { return fmt.Sprintf("#%d", i.user.ID) }

func newList(title, help string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// We render our own header + footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("item", "items")
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("ctrl+c")
	// Emacs-style navigation aliases.
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)
	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}

func selectProjectByID(l *list.Model, id int) {
	for i, it := range l.Items() {
		if p, ok := it.(projectListItem); ok && p.project.ID == id {
			l.Select(i)
			return
		}
	}
}

func selectUserByID(l *list.Model, id int) {
	for i, it := range l.Items() {
		if u, ok := it.(userListItem); ok && u.user.ID == id {
			l.Select(i)
			return
		}
	}
}
