package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iov-one/htlc/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Options are the flags of the start command.
type Options struct {
	Home    string
	Bind    string
	Genesis string
	// Metrics is the address prometheus metrics are served on. Empty
	// disables the endpoint.
	Metrics string
	Debug   bool
	Logger  log.Logger
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags. The returned
// handler serves the metrics.
type AppGenerator func(*Options) (abci.Application, http.Handler, error)

// StartCmd runs the ABCI socket server until the process is signalled.
func StartCmd(gen AppGenerator, opts *Options) error {
	return Run(gen, opts, stopSignal())
}

// Run serves the application until stop is closed.
func Run(gen AppGenerator, opts *Options, stop <-chan struct{}) error {
	app, metrics, err := gen(opts)
	if err != nil {
		return err
	}
	logger := opts.Logger

	logger.Info("Starting ABCI app", "bind", opts.Bind)
	svr, err := server.NewServer(opts.Bind, "socket", app)
	if err != nil {
		return errors.Wrap(err, "create listener")
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "start abci server")
	}
	defer svr.Stop()

	if opts.Metrics != "" && metrics != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics)
		hs := &http.Server{Addr: opts.Metrics, Handler: mux}
		go func() {
			if err := hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server", "err", err)
			}
		}()
		logger.Info("Serving metrics", "addr", opts.Metrics)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			hs.Shutdown(ctx)
		}()
	}

	<-stop
	logger.Info("Stopping ABCI app")
	return nil
}

func stopSignal() <-chan struct{} {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	stop := make(chan struct{})
	go func() {
		<-sig
		close(stop)
	}()
	return stop
}
