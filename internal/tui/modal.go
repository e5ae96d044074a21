package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const maxModalW = 72

// modalBodyWidth is the inner content width for a modal rendered at the
// given terminal width.
func modalBodyWidth(width int) int {
	w := width - 8
	if w > maxModalW {
		w = maxModalW
	}
	if w < 24 {
		w = 24
	}
	return w
}

// renderModalBox draws a titled surface for modal content. No borders:
// some terminals show background artifacts when nesting bordered
// components inside a box with a background color.
func renderModalBox(width int, title, content string) string {
	bodyW := modalBodyWidth(width)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Width(bodyW + 4).
		Padding(0, 2).
		Render(title)

	body := lipgloss.NewStyle().
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Width(bodyW + 4).
		Padding(1, 2).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func renderConfirmModal(width int, title, body, confirmLabel, cancelLabel string, fo confirmModalFocus) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if fo == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if fo == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}

	sep := lipgloss.NewStyle().Background(colorSurfaceBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: foco   enter: aceptar   esc: cancelar")

	content := strings.Join([]string{
		body,
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}

func renderNoticeModal(width int, text string) string {
	bodyW := modalBodyWidth(width)
	body := lipgloss.NewStyle().Width(bodyW).Render(text)
	help := styleMuted().Width(bodyW).Render("enter/esc: cerrar")
	return renderModalBox(width, "Aviso", body+"\n\n"+help)
}

func placeCentered(width, height int, s string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}
