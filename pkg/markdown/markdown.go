// Package markdown renders the content pages and game notes of the scoreboard.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/styles"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

type Markdown struct {
	style *chroma.Style
}

// New creates a Markdown renderer highlighting code with the named chroma style. Unknown
// style names fall back to chroma's default style.
func New(styleName string) *Markdown {
	return &Markdown{
		style: styles.Get(styleName),
	}
}

// Render converts a standalone markdown document to HTML.
func (m *Markdown) Render(contents string) (template.HTML, error) {
	return m.Document().Render(contents)
}

// Document returns a renderer for the markdown fragments of a single page. Code blocks are
// numbered across all fragments it renders, so their line anchors stay unique on the page.
// A Document is not safe for concurrent use.
func (m *Markdown) Document() *Document {
	return &Document{
		style: m.style,
	}
}

type Document struct {
	style   *chroma.Style
	blockID int
}

func (d *Document) Render(contents string) (template.HTML, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			&codeHighlighter{style: d.style, blockID: &d.blockID},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	buffer := bytes.Buffer{}
	if err := md.Convert([]byte(contents), &buffer); err != nil {
		return "", fmt.Errorf("error processing markdown to html: %w", err)
	}

	// #nosec
	return template.HTML(buffer.Bytes()), nil
}

// CodeCSS writes the stylesheet for highlighted code blocks.
func (m *Markdown) CodeCSS(w io.Writer) error {
	if err := html.New(chromaFormatterOpts...).WriteCSS(w, m.style); err != nil {
		return fmt.Errorf("error writing code CSS: %w", err)
	}

	return nil
}

// ExtractFirstHeader returns the text of the first level 1 heading, "" if there is none.
func ExtractFirstHeader(contents string) string {
	source := []byte(contents)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		heading, ok := node.(*ast.Heading)
		if !ok || heading.Level != 1 {
			continue
		}

		//nolint:staticcheck // Node.Text is deprecated
		return string(heading.Text(source))
	}

	return ""
}
