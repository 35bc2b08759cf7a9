// This file contains the logic to generate the files for deploying onto a webspace.

package render

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"
)

// GenerateFiles renders every page of the site into destPath.
func (r *Renderer) GenerateFiles(destPath string) error {
	contentFiles, err := r.filesForContent()
	if err != nil {
		return err
	}

	files := append([]string{indexFile, codeCSSFile}, contentFiles...)

	for _, file := range files {
		destinationPath := filepath.Join(destPath, filepath.FromSlash(file))

		if fileExtensionNeedsMIMEHack(path.Ext(file)) {
			destinationPath = filepath.Join(destinationPath, indexFile)
		}

		destinationDirectory := filepath.Dir(destinationPath)
		if err := os.MkdirAll(destinationDirectory, os.ModeDir|0755); err != nil {
			return fmt.Errorf("error creating directory %q: %w", destinationDirectory, err)
		}

		if err := r.generateFile(destinationPath, file); err != nil {
			return err
		}

		r.logger.Debug("generated file", zap.String("file", file), zap.String("path", destinationPath))
	}

	r.logger.Info("generated site", zap.String("path", destPath), zap.Int("files", len(files)))

	return nil
}

func (r *Renderer) generateFile(dest, file string) error {
	w, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening file %q (create|truncate|write): %w", dest, err)
	}

	if err := r.RenderFile(file, w); err != nil {
		_ = w.Close()
		return fmt.Errorf("error rendering file %q: %w", file, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("error closing file %q after writing to it: %w", dest, err)
	}

	return nil
}

// On webhosting services like Github Pages we cannot send a custom mime type for our files,
// they only use the file extension for choosing a mime type to send to the browser. Since
// we want our page paths to keep the names of the content files (e.g. `about.md`) but render
// them to HTML, we create a directory for those files and place an `index.html` in that.
func fileExtensionNeedsMIMEHack(fileExt string) bool {
	switch fileExt {
	case markdownType:
		return true
	default:
		return false
	}
}
