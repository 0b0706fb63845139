package toy

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const DefaultPrompt = "ready> "

// Diagnostics writes the driver's prompt, status lines and errors. Styling is
// dropped automatically when the sink is not a terminal.
type Diagnostics struct {
	w      io.Writer
	prompt string

	promptStyle lipgloss.Style
	okStyle     lipgloss.Style
	errStyle    lipgloss.Style
	dumpStyle   lipgloss.Style
}

func NewDiagnostics(w io.Writer, prompt string) *Diagnostics {
	r := lipgloss.NewRenderer(w)

	return &Diagnostics{
		w:           w,
		prompt:      prompt,
		promptStyle: r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		okStyle:     r.NewStyle().Foreground(lipgloss.Color("10")),
		errStyle:    r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		dumpStyle:   r.NewStyle().Faint(true).TabWidth(lipgloss.NoTabConversion),
	}
}

func (d *Diagnostics) Prompt() {
	if d.prompt == "" {
		return
	}

	fmt.Fprint(d.w, d.promptStyle.Render(d.prompt))
}

func (d *Diagnostics) Status(msg string) {
	fmt.Fprintln(d.w, d.okStyle.Render(msg))
}

func (d *Diagnostics) Error(err error) {
	fmt.Fprintln(d.w, d.errStyle.Render("Error: "+err.Error()))
}

// Dump writes a multi-line block such as an AST rendering or IR listing.
func (d *Diagnostics) Dump(text string) {
	// Styled line by line, multi-line renders would be padded to a block
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintln(d.w, d.dumpStyle.Render(line))
	}
}
