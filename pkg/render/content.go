package render

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

type pageTemplateData struct {
	layoutTemplateData
}

func (r *Renderer) renderContentFile(filePath string, writer io.Writer) error {
	if path.Ext(filePath) != markdownType {
		return fmt.Errorf("%w: no page %q", fs.ErrNotExist, filePath)
	}

	content, err := r.readContent(filePath)
	if err != nil {
		return err
	}

	data := pageTemplateData{
		layoutTemplateData: r.layoutData(filePath),
	}

	data.Title = extractTitle(content, filePath)
	data.MarkdownContent = content

	return r.executeTemplate(writer, "page.tmpl", data)
}

func (r *Renderer) readContent(filePath string) (string, error) {
	content, err := os.ReadFile(filepath.Join(r.contentPath, filepath.FromSlash(path.Clean("/"+filePath))))
	if err != nil {
		return "", fmt.Errorf("error reading content file %q: %w", filePath, err)
	}

	return string(content), nil
}

// filesForContent lists the markdown pages of the content directory, the intro shown on the
// scoreboard page excluded.
func (r *Renderer) filesForContent() ([]string, error) {
	contentFiles, err := fs.Glob(os.DirFS(r.contentPath), "*"+markdownType)
	if err != nil {
		return nil, fmt.Errorf("error listing files in content directory %q: %w", r.contentPath, err)
	}

	ret := make([]string, 0, len(contentFiles))

	for _, f := range contentFiles {
		if f != introFile {
			ret = append(ret, f)
		}
	}

	return ret, nil
}
