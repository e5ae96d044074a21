package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"panel-cli/internal/chat"
)

// renderTranscript turns the conversation into the right-hand pane body.
// It is a pure function of the bubbles and the pane width, so the same
// state always renders the same pixels regardless of how it was reached.
func renderTranscript(bubbles []chat.Bubble, width int) string {
	if width < 20 {
		width = 20
	}
	if len(bubbles) == 0 {
		return styleMuted().Width(width).Render(chat.PlaceholderPrompt)
	}

	bubbleW := (width * 3) / 4
	if bubbleW < 16 {
		bubbleW = 16
	}

	botStyle := lipgloss.NewStyle().
		Foreground(colorBotBubbleFg).
		Background(colorBotBubbleBg).
		Padding(0, 1).
		MaxWidth(bubbleW)
	userStyle := lipgloss.NewStyle().
		Foreground(colorUserBubbleFg).
		Background(colorUserBubbleBg).
		Padding(0, 1).
		MaxWidth(bubbleW)

	rows := make([]string, 0, len(bubbles)*2)
	for _, b := range bubbles {
		// Wrap here rather than in the style so MaxWidth never truncates.
		text := wrapText(b.Text, bubbleW-2)
		var row string
		if b.FromBot {
			row = lipgloss.JoinHorizontal(lipgloss.Top, glyphBot()+" ", botStyle.Render(text))
			row = lipgloss.PlaceHorizontal(width, lipgloss.Left, row)
		} else {
			row = userStyle.Render(text)
			row = lipgloss.PlaceHorizontal(width, lipgloss.Right, row)
		}
		rows = append(rows, row, "")
	}
	return strings.Join(rows, "\n")
}

// wrapText is a simple word wrapper. Words longer than the width are
// hard-broken so a pathological token can't blow out the pane.
func wrapText(s string, width int) string {
	if width < 4 {
		width = 4
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			for len([]rune(word)) > width {
				r := []rune(word)
				if line != "" {
					out = append(out, line)
					line = ""
				}
				out = append(out, string(r[:width]))
				word = string(r[width:])
			}
			switch {
			case line == "":
				line = word
			case len([]rune(line))+1+len([]rune(word)) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
