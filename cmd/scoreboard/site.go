package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/swift502/MagChess/scoreboard/pkg/config"
	"github.com/swift502/MagChess/scoreboard/pkg/logging"
	"github.com/swift502/MagChess/scoreboard/pkg/render"
	"github.com/swift502/MagChess/scoreboard/pkg/scoreboard"
	"github.com/swift502/MagChess/scoreboard/pkg/source"
	"github.com/swift502/MagChess/scoreboard/pkg/timestamp"
)

// site bundles everything the commands working on the configured site need.
type site struct {
	config    *config.Config
	logger    *zap.Logger
	formatter *timestamp.Formatter
	board     *scoreboard.Scoreboard
}

func loadSite(configFile string) (*site, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	locale, err := cfg.LocaleTag()
	if err != nil {
		return nil, err
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	formatter, err := timestamp.NewFormatter(locale, location)
	if err != nil {
		return nil, fmt.Errorf("error creating timestamp formatter: %w", err)
	}

	reader, err := source.Open(cfg.Data, cfg.Dir, cfg.Resolve(cfg.Data.Cache), logger)
	if err != nil {
		return nil, fmt.Errorf("error opening data source: %w", err)
	}

	board, err := scoreboard.Load(reader, cfg.Data.Path, formatter)
	if err != nil {
		return nil, err
	}

	logger.Info("loaded scoreboard",
		zap.String("revision", board.Revision),
		zap.Int("games", len(board.Games)),
		zap.Stringer("schema", board.SchemaVersion),
	)

	return &site{
		config:    cfg,
		logger:    logger,
		formatter: formatter,
		board:     board,
	}, nil
}

func (s *site) renderer() (*render.Renderer, error) {
	renderer, err := render.NewRenderer(s.config, s.formatter, s.board, s.logger)
	if err != nil {
		return nil, fmt.Errorf("error initializing renderer: %w", err)
	}

	renderer.SetBuildInfo(version)

	return renderer, nil
}
