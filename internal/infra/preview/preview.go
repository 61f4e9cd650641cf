// Package preview renders the changelog Markdown for the terminal.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/runoshun/changelog-generator/internal/domain"
)

// Rendering defaults.
const (
	AutoStyle    = "auto" // Pick dark or light from the terminal background
	DefaultWidth = 80
)

// Ensure Output implements domain.ChangelogOutput.
var _ domain.ChangelogOutput = (*Output)(nil)

// Output renders the received Markdown with glamour and writes the result.
// Fields are ordered to minimize memory padding.
type Output struct {
	w     io.Writer
	style string
	width int
}

// NewOutput creates an Output. An empty style selects AutoStyle and a
// non-positive width selects DefaultWidth.
func NewOutput(w io.Writer, style string, width int) *Output {
	if style == "" {
		style = AutoStyle
	}
	if width <= 0 {
		width = DefaultWidth
	}
	return &Output{w: w, style: style, width: width}
}

// WriteLines renders the lines as one Markdown document.
func (o *Output) WriteLines(lines ...string) error {
	styleOpt := glamour.WithStandardStyle(o.style)
	if o.style == AutoStyle {
		styleOpt = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(o.width))
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := r.Render(strings.Join(lines, "\n"))
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(o.w, out)
	return err
}
