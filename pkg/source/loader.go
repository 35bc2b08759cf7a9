// Package source opens the place the scoreboard data is read from, either a local directory or a
// revision of a git repository.
package source

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"

	git "github.com/go-git/go-git/v5"
	gitConfig "github.com/go-git/go-git/v5/config"
	"go.uber.org/zap"

	"github.com/swift502/MagChess/scoreboard/pkg/config"
	"github.com/swift502/MagChess/scoreboard/pkg/types"
)

type Loader struct {
	cachePath string
	logger    *zap.Logger
}

// Open returns a reader for the configured data source. Without a git source, files are read
// relative to localDir.
func Open(data config.Data, localDir, cachePath string, logger *zap.Logger) (types.DataReader, error) {
	if data.Source == "" {
		logger.Debug("reading data from local directory", zap.String("dir", localDir))
		return directoryReader{dir: localDir}, nil
	}

	loader, err := NewLoader(cachePath, logger)
	if err != nil {
		return nil, err
	}

	return loader.Load(data.Source, data.Ref)
}

func NewLoader(cachePath string, logger *zap.Logger) (*Loader, error) {
	stat, err := os.Stat(cachePath)
	if errors.Is(err, os.ErrNotExist) {
		err = os.MkdirAll(cachePath, os.ModeDir|0755)

		if err == nil {
			stat, err = os.Stat(cachePath)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("error stat'ing cache path: %w", err)
	} else if !stat.IsDir() {
		return nil, fmt.Errorf("%w: cache path is not a directory", os.ErrInvalid)
	}

	return &Loader{
		cachePath: cachePath,
		logger:    logger.Named("source"),
	}, nil
}

// Load clones (or updates the cached clone of) the repository at sourceURL and returns a reader
// for ref.
func (l *Loader) Load(sourceURL, ref string) (types.DataReader, error) {
	source, err := url.Parse(sourceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid source url: %w", err)
	}

	localPath := path.Join(l.cachePath, source.Host, source.Path)
	repo, err := git.PlainOpen(localPath)

	if errors.Is(err, git.ErrRepositoryNotExists) {
		l.logger.Info("cloning data repository", zap.String("url", source.String()), zap.String("path", localPath))

		repo, err = git.PlainClone(localPath, false, &git.CloneOptions{
			URL:        source.String(),
			NoCheckout: true,
		})
		if err != nil {
			return nil, fmt.Errorf("error cloning source repository: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("error opening local git repository: %w", err)
	}

	err = repo.Fetch(&git.FetchOptions{
		Force:    true,
		Tags:     git.AllTags,
		RefSpecs: []gitConfig.RefSpec{"refs/heads/*:refs/heads/*"},
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil, fmt.Errorf("error fetching source repository: %w", err)
	}

	reader, err := newRepositoryReader(repo, ref, l.logger)
	if err != nil {
		return nil, err
	}

	l.logger.Info("loaded data repository",
		zap.String("url", source.String()),
		zap.String("revision", reader.Revision()),
		zap.Int("refs", len(reader.refs)),
	)

	return reader, nil
}
