package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"panel-cli/internal/chat"
	"panel-cli/internal/model"
)

func TestDeleteActiveProject_ClearsTranscript(t *testing.T) {
	b := &fakeBackend{projects: []model.Project{{ID: 3, Name: "Demo"}, {ID: 4, Name: "Otro"}}}
	m := newTestModel(b)
	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)
	mAny, _ = m.Update(historyLoadedMsg{projectID: 3, bubbles: []chat.Bubble{{Text: "hola"}}})
	m = mAny.(appModel)
	if m.transcript.Len() != 1 {
		t.Fatalf("history not loaded")
	}

	// Back to the list, open the confirm, accept it.
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = mAny.(appModel)
	mAny, _ = m.Update(runes('d'))
	m = mAny.(appModel)
	if m.modal != modalConfirmDelete || m.pendingDelete.id != 3 {
		t.Fatalf("confirm modal not armed: modal=%v target=%+v", m.modal, m.pendingDelete)
	}
	mAny, cmd := m.Update(runes('y'))
	m = mAny.(appModel)
	if cmd == nil {
		t.Fatal("expected a delete command")
	}

	mAny, _ = m.Update(cmd())
	m = mAny.(appModel)
	if m.activeProjectID != 0 {
		t.Fatalf("active project must reset; got %d", m.activeProjectID)
	}
	// The pane falls back to the pick-a-project greeting, nothing else.
	got := m.transcript.Bubbles()
	if len(got) != 1 || got[0].Text != chat.GreetingNoProject || !got[0].FromBot {
		t.Fatalf("transcript must reset to the greeting; got %+v", got)
	}
	if m.modal != modalNotice || m.noticeText != "Proyecto eliminado correctamente" {
		t.Fatalf("modal=%v notice=%q", m.modal, m.noticeText)
	}
}

func TestDeleteOtherProject_KeepsTranscript(t *testing.T) {
	b := &fakeBackend{projects: []model.Project{{ID: 3, Name: "Demo"}, {ID: 4, Name: "Otro"}}}
	m := newTestModel(b)
	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)
	mAny, _ = m.Update(historyLoadedMsg{projectID: 3, bubbles: []chat.Bubble{{Text: "hola"}}})
	m = mAny.(appModel)

	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = mAny.(appModel)
	m.projectsList.Select(1) // project 4, not the active one
	mAny, _ = m.Update(runes('d'))
	m = mAny.(appModel)
	mAny, cmd := m.Update(runes('y'))
	m = mAny.(appModel)
	mAny, _ = m.Update(cmd())
	m = mAny.(appModel)

	if m.activeProjectID != 3 {
		t.Fatalf("active project must survive; got %d", m.activeProjectID)
	}
	if m.transcript.Len() != 1 {
		t.Fatalf("transcript must survive; got %d bubbles", m.transcript.Len())
	}
}

func TestDeclinedConfirm_NoRequest(t *testing.T) {
	b := &fakeBackend{projects: []model.Project{{ID: 3, Name: "Demo"}}}
	m := newTestModel(b)
	before := b.callCount()

	mAny, _ := m.Update(runes('d'))
	m = mAny.(appModel)
	// Enter with the default focus (Cancelar) must close without deleting.
	mAny, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)

	if cmd != nil || m.modal != modalNone {
		t.Fatalf("declined confirm: cmd=%v modal=%v", cmd, m.modal)
	}
	if b.callCount() != before {
		t.Fatalf("declined confirm hit the network: %v", b.calls[before:])
	}
}

func TestDeleteUserFlow(t *testing.T) {
	b := &fakeBackend{users: []model.User{{ID: 5, FirstName: "Ana", LastName: "García"}}}
	m := newTestModel(b)

	mAny, _ := m.Update(runes('u'))
	m = mAny.(appModel)
	if m.view != viewUsers {
		t.Fatalf("view = %v", m.view)
	}
	mAny, _ = m.Update(runes('d'))
	m = mAny.(appModel)
	if m.pendingDelete.kind != "usuario" || m.pendingDelete.id != 5 {
		t.Fatalf("target = %+v", m.pendingDelete)
	}
	mAny, cmd := m.Update(runes('s')) // "sí" also confirms
	m = mAny.(appModel)
	mAny, _ = m.Update(cmd())
	m = mAny.(appModel)

	if m.noticeText != "Usuario eliminado correctamente" {
		t.Fatalf("notice = %q", m.noticeText)
	}
	found := false
	for _, c := range b.calls {
		if c == "DeleteUser 5" {
			found = true
		}
	}
	if !found {
		t.Fatalf("DeleteUser 5 not issued: %v", b.calls)
	}
}
