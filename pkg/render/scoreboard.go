package render

import (
	"errors"
	"io"
	"io/fs"
	"strings"

	"github.com/swift502/MagChess/scoreboard/pkg/markdown"
	"github.com/swift502/MagChess/scoreboard/pkg/scoreboard"
	"github.com/swift502/MagChess/scoreboard/pkg/types"
)

const defaultTitle = "Scoreboard"

type scoreboardTemplateData struct {
	layoutTemplateData

	Standings []types.Standing
	Games     []scoreboard.Entry
	Latest    *scoreboard.Entry
	Revision  string
}

func (r *Renderer) renderScoreboard(writer io.Writer) error {
	intro, err := r.readContent(introFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	data := scoreboardTemplateData{
		layoutTemplateData: r.layoutData(indexFile),
		Standings:          r.board.Standings(),
		Games:              r.board.Games,
		Revision:           r.board.Revision,
	}

	data.Title = extractTitle(intro, defaultTitle)
	data.MarkdownContent = intro

	if latest, ok := r.board.Latest(); ok {
		data.Latest = &latest
	}

	return r.executeTemplate(writer, "scoreboard.tmpl", data)
}

func extractTitle(content, fallback string) string {
	if title := markdown.ExtractFirstHeader(content); title != "" {
		return title
	}

	return strings.TrimSuffix(fallback, ".md")
}
