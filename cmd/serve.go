package main

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/desertthunder/fanstats/internal/server"
	"github.com/desertthunder/fanstats/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the JSON API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	host := cmd.String("host")
	if host == "" {
		host = r.config.Server.Host
	}
	port := cmd.Int("port")
	if port == 0 {
		port = r.config.Server.Port
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("%w: port %d out of range", shared.ErrInvalidFlag, port)
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(addr, r.handler(), r.logger)
	r.writePlain("Serving dashboard API on http://%s/api/\n", addr)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// handler wires the API behind the logging, recovery and rate limit middleware.
func (r *Runner) handler() *server.BasicRouter {
	router := server.NewBasicRouter()
	router.Use(
		server.Logging(r.logger),
		server.Recover(r.logger),
		server.RateLimit(r.config.Server.RateLimit, r.config.Server.Burst),
	)
	router.Handler(server.NewAPI(server.APIOpts{
		Catalog:  r.catalog,
		Goals:    r.goals,
		Missions: r.missions,
		Session:  r.session,
		Logger:   r.logger,
		Now:      r.now,
	}))
	return router
}
