// Package render turns the templates, content pages and scoreboard data into the pages of the site.
package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/swift502/MagChess/scoreboard/pkg/config"
	"github.com/swift502/MagChess/scoreboard/pkg/markdown"
	"github.com/swift502/MagChess/scoreboard/pkg/scoreboard"
	"github.com/swift502/MagChess/scoreboard/pkg/timestamp"
)

const (
	indexFile    = "index.html"
	codeCSSFile  = "chroma/style.css"
	introFile    = "index.md"
	markdownType = ".md"
)

type Renderer struct {
	templates map[string]*template.Template

	config    *config.Config
	formatter *timestamp.Formatter
	board     *scoreboard.Scoreboard
	markdown  *markdown.Markdown
	logger    *zap.Logger

	contentPath string
	now         func() time.Time
	version     string
}

func NewRenderer(cfg *config.Config, formatter *timestamp.Formatter, board *scoreboard.Scoreboard, logger *zap.Logger) (*Renderer, error) {
	r := &Renderer{
		config:      cfg,
		formatter:   formatter,
		board:       board,
		markdown:    markdown.New(cfg.CodeStyle),
		logger:      logger.Named("render"),
		contentPath: cfg.Resolve(cfg.ContentDir),
		now:         time.Now,
		version:     "dev",
	}

	templates, err := loadTemplates(cfg.Resolve(cfg.TemplateDir), r.templateFuncs())
	if err != nil {
		return nil, err
	}

	r.templates = templates

	return r, nil
}

func (r *Renderer) SetBuildInfo(version string) {
	r.version = version
}

// SetClock replaces the clock used for the generation time shown on every page.
func (r *Renderer) SetClock(now func() time.Time) {
	r.now = now
}

// RenderFile renders the page at filePath, relative to the site base.
func (r *Renderer) RenderFile(filePath string, w io.Writer) error {
	filePath = strings.Trim(filePath, "/")

	if filePath == indexFile {
		filePath = ""
	} else {
		filePath = strings.TrimSuffix(filePath, "/"+indexFile)
	}

	switch filePath {
	case "":
		return r.renderScoreboard(w)
	case codeCSSFile:
		return r.markdown.CodeCSS(w)
	default:
		return r.renderContentFile(filePath, w)
	}
}

func (r *Renderer) executeTemplate(w io.Writer, name string, data any) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("%w: template %q", ErrTemplateNotFound, name)
	}

	// a page numbers the code blocks of all its markdown fragments together
	page, err := tmpl.Clone()
	if err != nil {
		return fmt.Errorf("error cloning template %q: %w", name, err)
	}

	page.Funcs(template.FuncMap{
		"renderMarkdown": r.markdown.Document().Render,
	})

	if err := page.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("error executing template %q: %w", name, err)
	}

	return nil
}
