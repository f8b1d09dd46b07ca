package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/desertthunder/bandsite/internal/server"
	"github.com/desertthunder/bandsite/internal/services"
	"github.com/desertthunder/bandsite/internal/shared"
	"github.com/urfave/cli/v3"
)

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the fan site HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host interface to bind",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on",
			},
		},
		Action: r.Serve,
	}
}

// Serve starts the site server and blocks until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	host := cmd.String("host")
	if host == "" {
		host = r.config.Server.Host
	}
	port := cmd.Int("port")
	if port == 0 {
		port = r.config.Server.Port
	}

	handler, err := server.NewSiteHandler(r.engine, r.logger)
	if err != nil {
		return fmt.Errorf("failed to build site handler: %w", err)
	}

	router := server.NewBasicRouter()
	router.Use(server.RequestID(), server.AccessLog(r.logger), server.Recover(r.logger))
	router.Handler(handler)
	router.Handler(&server.HealthHandler{})

	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		r.logger.Info("server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

var spotifyIDPattern = regexp.MustCompile(`^[0-9A-Za-z]{22}$`)

// Open points the default browser at the configured server address, or
// at a video or track deep link when given a video ID, track ID, or URL.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) error {
	target := cmd.Args().First()

	switch {
	case target == "":
		return r.openURL(fmt.Sprintf("http://%s:%d/", r.config.Server.Host, r.config.Server.Port))
	case strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://"):
		return r.openURL(target)
	default:
		if id := services.ExtractVideoID(target); id != "" {
			return r.openURL("https://www.youtube.com/watch?v=" + id)
		}
		if spotifyIDPattern.MatchString(target) {
			return r.openURL("https://open.spotify.com/track/" + target)
		}
		return fmt.Errorf("%w: %q is not a video ID, track ID, or URL", shared.ErrInvalidArgument, target)
	}
}
