package main

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/swift502/MagChess/scoreboard/pkg/render"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	listenAddress := "localhost:4321"

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site, rendering every page on request",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadSite(opts.configFile)
			if err != nil {
				return err
			}
			defer func() { _ = s.logger.Sync() }()

			renderer, err := s.renderer()
			if err != nil {
				return err
			}

			mux := http.NewServeMux()
			mux.Handle(s.config.Path("static/"), http.StripPrefix(
				s.config.Path("static/"),
				http.FileServer(http.Dir(s.config.Resolve(s.config.StaticDir))),
			))
			mux.Handle(s.config.Base, pageHandler(s.config.Base, renderer, s.logger))

			//nolint:exhaustruct // We only set useful things here
			server := http.Server{
				Addr:              listenAddress,
				Handler:           mux,
				ReadHeaderTimeout: 30 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      30 * time.Second,
				IdleTimeout:       30 * time.Second,
			}

			s.logger.Info("serving site", zap.String("url", "http://"+listenAddress+s.config.Base))

			return server.ListenAndServe()
		},
	}

	cmd.Flags().StringVarP(&listenAddress, "listen", "l", listenAddress, "Address to listen on")

	return cmd
}

func pageHandler(basePath string, renderer *render.Renderer, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		filePath := strings.TrimPrefix(req.URL.Path, basePath)

		buffer := bytes.Buffer{}
		if err := renderer.RenderFile(filePath, &buffer); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, fs.ErrNotExist) {
				status = http.StatusNotFound
			}

			logger.Warn("error rendering page", zap.String("path", req.URL.Path), zap.Int("status", status), zap.Error(err))

			http.Error(res, err.Error(), status)

			return
		}

		if strings.HasSuffix(filePath, ".css") {
			res.Header().Add("Content-Type", "text/css; charset=utf-8")
		} else {
			res.Header().Add("Content-Type", "text/html; charset=utf-8")
		}

		res.WriteHeader(http.StatusOK)
		_, _ = res.Write(buffer.Bytes())
	})
}
