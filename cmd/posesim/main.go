// Command posesim serves a simulated pose backend for local development.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/repcoach/internal/log"
	"github.com/alexanderramin/repcoach/internal/posesim"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", ":8000", "listen address")
	repEvery := flag.Duration("rep-every", 2*time.Second, "count one repetition per interval (0 disables)")
	perMinute := flag.Int("rate-limit", 0, "max requests per client per minute (0 disables)")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log.Configure(log.Config{Level: *level, Service: "posesim"})
	logger := log.WithComponent("posesim")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := posesim.New()
	sim.SetRateLimit(*perMinute)
	go sim.Run(ctx, *repEvery)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           sim.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info().Str("addr", *addr).Dur("rep_every", *repEvery).Msg("simulated pose backend listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
