package render

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/swift502/MagChess/scoreboard/pkg/timestamp"
)

const layoutTemplate = "layout.tmpl"

var ErrTemplateNotFound = errors.New("template not found")

type layoutTemplateData struct {
	Title       string
	CurrentFile string
	CurrentYear int
	GeneratedAt time.Time
	Version     string

	MarkdownContent string
}

func (r *Renderer) layoutData(currentFile string) layoutTemplateData {
	now := r.now()

	return layoutTemplateData{
		CurrentFile: currentFile,
		CurrentYear: now.In(r.formatter.Location()).Year(),
		GeneratedAt: now,
		Version:     r.version,
	}
}

// loadTemplates parses every template in templatePath on top of its own copy of layout.tmpl.
func loadTemplates(templatePath string, funcs template.FuncMap) (map[string]*template.Template, error) {
	baseTemplate, err := template.New("").Funcs(funcs).ParseFiles(filepath.Join(templatePath, layoutTemplate))
	if err != nil {
		return nil, fmt.Errorf("error parsing layout template: %w", err)
	}

	files, err := fs.Glob(os.DirFS(templatePath), "*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("error searching templates: %w", err)
	}

	ret := make(map[string]*template.Template, len(files))

	for _, f := range files {
		if f == layoutTemplate {
			continue
		}

		base, err := baseTemplate.Clone()
		if err != nil {
			return nil, fmt.Errorf("error cloning layout template: %w", err)
		}

		tmpl, err := base.ParseFiles(filepath.Join(templatePath, f))
		if err != nil {
			return nil, fmt.Errorf("error parsing template %q: %w", f, err)
		}

		ret[f] = tmpl
	}

	return ret, nil
}

func (r *Renderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatShort":     r.formatShort,
		"formatTooltip":   r.formatTooltip,
		"formatShortTime": r.formatter.ShortTime,
		"formatTime":      r.formatter.TooltipTime,
		"renderMarkdown":  r.markdown.Render, // bound to a page Document in executeTemplate
		"sitePath":        r.config.Path,
		"siteURL":         r.config.URL,
	}
}

// formatShort renders broken timestamps as timestamp.InvalidDate instead of failing the page.
func (r *Renderer) formatShort(ts string) string {
	s, err := r.formatter.Short(ts)
	if err != nil {
		r.logger.Warn("cannot format timestamp", zap.String("timestamp", ts), zap.Error(err))
		return timestamp.InvalidDate
	}

	return s
}

func (r *Renderer) formatTooltip(ts string) string {
	s, err := r.formatter.Tooltip(ts)
	if err != nil {
		r.logger.Warn("cannot format timestamp", zap.String("timestamp", ts), zap.Error(err))
		return timestamp.InvalidDate
	}

	return s
}
