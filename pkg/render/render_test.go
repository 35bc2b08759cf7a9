package render_test

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/swift502/MagChess/scoreboard/pkg/config"
	"github.com/swift502/MagChess/scoreboard/pkg/render"
	"github.com/swift502/MagChess/scoreboard/pkg/scoreboard"
	"github.com/swift502/MagChess/scoreboard/pkg/timestamp"
)

const testGames = `
games:
  - timestamp: 2024-03-05T08:30:00
    white: Alice
    black: Bob
    result: 1-0
    moves: 31
    termination: checkmate
    notes: |
      Scholar's mate attempt:

      ~~~
      1. e4 e5
      2. Qh5 Nc6
      ~~~
  - timestamp: 2024-12-31T23:59:59
    white: Bob
    black: Alice
    result: 1/2-1/2
    moves: 80
    notes: |
      Agreed on a *draw*.

      ~~~
      40. Kf2 Kf7
      ~~~
`

func newTestRenderer(t *testing.T) (*render.Renderer, *observer.ObservedLogs) {
	t.Helper()

	contentDir := t.TempDir()

	files := map[string]string{
		"index.md":  "# MagChess Scoreboard\n\nGames played on the board.\n",
		"about.md":  "# About the board\n\nMagnets.\n",
		"notes.txt": "not a page",
	}

	for name, contents := range files {
		if err := os.WriteFile(filepath.Join(contentDir, name), []byte(contents), 0644); err != nil {
			t.Fatalf("error writing content file: %v", err)
		}
	}

	cfg, err := config.Decode(strings.NewReader("site: https://swift502.github.io/MagChess/\ntimezone: UTC\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// templates shipped with the repository
	cfg.Dir = filepath.Join("..", "..")
	cfg.ContentDir = contentDir

	board, err := scoreboard.Parse([]byte(testGames), timestamp.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	core, logs := observer.New(zapcore.WarnLevel)

	renderer, err := render.NewRenderer(cfg, timestamp.Default(), board, zap.New(core))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	renderer.SetBuildInfo("v1.2.3")
	renderer.SetClock(func() time.Time {
		return time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
	})

	return renderer, logs
}

func TestRenderScoreboard(t *testing.T) {
	t.Parallel()

	renderer, logs := newTestRenderer(t)

	for _, filePath := range []string{"", "index.html", "/"} {
		buffer := bytes.Buffer{}
		if err := renderer.RenderFile(filePath, &buffer); err != nil {
			t.Fatalf("unexpected error rendering %q: %v", filePath, err)
		}

		page := buffer.String()

		expected := []string{
			"<title>MagChess Scoreboard · MagChess</title>",
			`title="05.03.2024. 08:30:00">5.3. 08:30</time>`,
			`title="31.12.2024. 23:59:59">31.12. 23:59</time>`,
			"<td>Alice</td><td>2</td><td>1</td><td>1</td><td>0</td><td>1.5</td>",
			"<em>draw</em>",
			`href="/MagChess/static/style.css"`,
			`title="02.01.2025. 03:04:05">2.1. 03:04</time>`,
			"v1.2.3",
			"Last game: Bob vs. Alice, drawn,",
		}

		for _, e := range expected {
			if !strings.Contains(page, e) {
				t.Errorf("rendering %q: expected page to contain %q, got:\n%v", filePath, e, page)
			}
		}

		// the code blocks of both game notes, newest game first
		for _, anchor := range []string{`id="code-1-1"`, `id="code-2-1"`, `id="code-2-2"`} {
			if count := strings.Count(page, anchor); count != 1 {
				t.Errorf("rendering %q: expected anchor %v once, found it %d times", filePath, anchor, count)
			}
		}
	}

	if logs.Len() != 0 {
		t.Errorf("expected no warnings, got %v", logs.All())
	}
}

func TestRenderContentFile(t *testing.T) {
	t.Parallel()

	renderer, _ := newTestRenderer(t)

	for _, filePath := range []string{"about.md", "about.md/", "about.md/index.html"} {
		buffer := bytes.Buffer{}
		if err := renderer.RenderFile(filePath, &buffer); err != nil {
			t.Fatalf("unexpected error rendering %q: %v", filePath, err)
		}

		if !strings.Contains(buffer.String(), "<title>About the board · MagChess</title>") {
			t.Errorf("rendering %q: unexpected page %v", filePath, buffer.String())
		}
	}

	for _, filePath := range []string{"notes.txt", "missing.md", "../../go.mod"} {
		if err := renderer.RenderFile(filePath, &bytes.Buffer{}); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("rendering %q: expected ErrNotExist, got %v", filePath, err)
		}
	}
}

func TestGenerateFiles(t *testing.T) {
	t.Parallel()

	renderer, _ := newTestRenderer(t)
	destPath := t.TempDir()

	if err := renderer.GenerateFiles(destPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, expected := range []string{"index.html", "chroma/style.css", "about.md/index.html"} {
		if _, err := os.Stat(filepath.Join(destPath, expected)); err != nil {
			t.Errorf("expected generated file %q: %v", expected, err)
		}
	}

	// markdown pages are served as directories so the host sends text/html
	if info, err := os.Stat(filepath.Join(destPath, "about.md")); err != nil || !info.IsDir() {
		t.Errorf("expected about.md to be generated as a directory: %v", err)
	}

	for _, unexpected := range []string{"index.md", "index.md/index.html", "notes.txt"} {
		if _, err := os.Stat(filepath.Join(destPath, unexpected)); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("did not expect generated file %q", unexpected)
		}
	}
}
