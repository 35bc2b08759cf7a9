package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCommand(opts *rootOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the site into the output directory",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadSite(opts.configFile)
			if err != nil {
				return err
			}
			defer func() { _ = s.logger.Sync() }()

			if outDir == "" {
				outDir = s.config.Resolve(s.config.OutDir)
			}

			renderer, err := s.renderer()
			if err != nil {
				return err
			}

			if err := renderer.GenerateFiles(outDir); err != nil {
				return fmt.Errorf("error rendering files: %w", err)
			}

			if err := copyStaticFiles(s.config.Resolve(s.config.StaticDir), outDir, s.logger); err != nil {
				return fmt.Errorf("error copying static files: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Directory to write the site to (default: outDir of the config)")

	return cmd
}

func copyStaticFiles(staticPath string, destinationPath string, logger *zap.Logger) error {
	if _, err := os.Stat(staticPath); os.IsNotExist(err) {
		logger.Debug("no static files to copy", zap.String("path", staticPath))
		return nil
	}

	err := fs.WalkDir(os.DirFS(staticPath), ".", func(walkEntry string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		destination := filepath.Join(destinationPath, "static", filepath.FromSlash(walkEntry))

		if d.IsDir() {
			if err := os.MkdirAll(destination, 0755); err != nil {
				return fmt.Errorf("error creating directory %q: %w", destination, err)
			}

			return nil
		}

		return copyFile(filepath.Join(staticPath, filepath.FromSlash(walkEntry)), destination)
	})
	if err != nil {
		return fmt.Errorf("error walking static files directory: %w", err)
	}

	logger.Info("copied static files", zap.String("from", staticPath), zap.String("to", destinationPath))

	return nil
}

func copyFile(source, destination string) error {
	sourceStream, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("error opening source file %q: %w", source, err)
	}
	defer sourceStream.Close()

	//nolint:nosnakecase // O_WRONLY, O_CREATE and O_TRUNC are defined by the os package (and underlying POSIX spec).
	destinationStream, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error opening destination file %q: %w", destination, err)
	}

	if _, err := io.Copy(destinationStream, sourceStream); err != nil {
		_ = destinationStream.Close()
		return fmt.Errorf("error copying file data: %w", err)
	}

	if err := destinationStream.Close(); err != nil {
		return fmt.Errorf("error closing destination file %q: %w", destination, err)
	}

	return nil
}
