package markdown

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/lexers"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

var chromaFormatterOpts = []html.Option{
	html.Standalone(false),
	html.WithClasses(true),
	html.WithAllClasses(true),
	html.TabWidth(4),
	html.WithLineNumbers(true),
}

// codeHighlighter renders code blocks through chroma. Every block gets its own prefix for the
// line number anchors, so a page with several move lists can link to a line in each of them.
// blockID is shared by all highlighters of a Document.
type codeHighlighter struct {
	style   *chroma.Style
	blockID *int
}

func (ch *codeHighlighter) Extend(md goldmark.Markdown) {
	md.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(ch, 0),
		),
	)
}

func (ch *codeHighlighter) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindCodeBlock, ch.render)
	reg.Register(ast.KindFencedCodeBlock, ch.render)
}

func (ch *codeHighlighter) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	code := strings.Builder{}

	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		code.Write(segment.Value(source))
	}

	lexer := lexers.Fallback
	if fenced, ok := node.(*ast.FencedCodeBlock); ok && fenced.Info != nil {
		if l := lexers.Get(string(fenced.Language(source))); l != nil {
			lexer = l
		}
	} else if l := lexers.Analyse(code.String()); l != nil {
		lexer = l
	}

	tokens, err := lexer.Tokenise(nil, code.String())
	if err != nil {
		return ast.WalkContinue, fmt.Errorf("error tokenising code block: %w", err)
	}

	*ch.blockID++
	anchorPrefix := fmt.Sprintf("code-%v-", *ch.blockID)

	formatter := html.New(
		append(chromaFormatterOpts, html.LinkableLineNumbers(true, anchorPrefix))...,
	)

	if err := formatter.Format(w, ch.style, tokens); err != nil {
		return ast.WalkContinue, fmt.Errorf("error formatting code block: %w", err)
	}

	return ast.WalkContinue, nil
}
