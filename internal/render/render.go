package render

import (
	"fmt"
	"io"
	"strings"

	"fundraise-backend/internal/chat"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	adviceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// Renderer writes interactions to a terminal. Responses are treated as
// markdown, falling back to plain text if markdown rendering fails.
type Renderer struct {
	out      io.Writer
	markdown *glamour.TermRenderer
}

func New(out io.Writer, wordWrap int) *Renderer {
	markdown, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		markdown = nil
	}
	return &Renderer{out: out, markdown: markdown}
}

// Plain returns a renderer that writes responses without markdown styling.
func Plain(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) Interaction(title string, interaction *chat.Interaction) {
	fmt.Fprintln(r.out, headerStyle.Render(title+":"))
	fmt.Fprintln(r.out, r.text(interaction.Response))

	if len(interaction.Advice) == 0 {
		return
	}

	fmt.Fprintln(r.out, headerStyle.Render("Advice:"))
	for _, line := range interaction.Advice {
		fmt.Fprintln(r.out, adviceStyle.Render("- "+line))
	}
}

func (r *Renderer) Error(err error) {
	fmt.Fprintln(r.out, errorStyle.Render("Error: "+err.Error()))
}

func (r *Renderer) text(s string) string {
	if r.markdown == nil {
		return s
	}
	out, err := r.markdown.Render(s)
	if err != nil {
		return s
	}
	return strings.TrimRight(out, "\n")
}
