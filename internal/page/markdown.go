package page

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown renders text tab content. Raw HTML passes through, so existing
// profiles that embed markup keep working.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a Markdown renderer with GFM and code highlighting.
func NewMarkdown() *Markdown {
	return &Markdown{md: goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("dracula"),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)}
}

// Render converts source to HTML.
func (m *Markdown) Render(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
