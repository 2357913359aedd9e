package server

import (
	"flag"
	"fmt"
	"net/http"

	"github.com/iov-one/idm/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind    = "bind"
	flagDebug   = "debug"
	flagMetrics = "metrics"
)

// Options are passed to the AppGenerator.
type Options struct {
	// Home is the directory the application keeps its database in. An
	// empty value selects an in memory database.
	Home   string
	Logger log.Logger
	// Debug includes the call stack in returned errors.
	Debug bool
	// Metrics is nil when metrics are disabled.
	Metrics prometheus.Registerer
}

type startArgs struct {
	bind    string
	debug   bool
	metrics string
}

func parseFlags(args []string) (startArgs, error) {
	var res startArgs
	startFlags := flag.NewFlagSet("start", flag.ExitOnError)
	startFlags.StringVar(&res.bind, flagBind, "tcp://localhost:26658", "address server listens on")
	startFlags.BoolVar(&res.debug, flagDebug, false, "call stack returned on error")
	startFlags.StringVar(&res.metrics, flagMetrics, "", "address of the prometheus metrics endpoint, for example :9090. Disabled if empty")
	err := startFlags.Parse(args)
	return res, err
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(*Options) (abci.Application, error)

// StartCmd initializes the application, and serves it over the ABCI socket
// until the process is terminated. It returns only on a startup failure.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	flags, err := parseFlags(args)
	if err != nil {
		return err
	}

	opts := &Options{
		Home:   home,
		Logger: logger,
		Debug:  flags.debug,
	}
	var metricsSrv *http.Server
	if flags.metrics != "" {
		reg := prometheus.NewRegistry()
		opts.Metrics = reg
		metricsSrv = &http.Server{
			Addr:    flags.metrics,
			Handler: metricsHandler(reg),
		}
	}

	// Generate the app in the proper dir
	app, err := gen(opts)
	if err != nil {
		return err
	}

	if metricsSrv != nil {
		logger.Info("Starting metrics endpoint", "bind", metricsSrv.Addr)
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics endpoint failed", "err", err)
			}
		}()
	}

	logger.Info("Starting ABCI app", "bind", flags.bind)

	svr, err := server.NewServer(flags.bind, "socket", app)
	if err != nil {
		return errors.Wrap(errors.ErrHuman, fmt.Sprintf("cannot create listener: %s", err))
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(errors.ErrHuman, fmt.Sprintf("cannot start server: %s", err))
	}

	// The handler stops the servers and exits the process on SIGINT or
	// SIGTERM.
	cmn.TrapSignal(logger, func() {
		if err := svr.Stop(); err != nil {
			logger.Error("Cannot stop ABCI server", "err", err)
		}
		if metricsSrv != nil {
			metricsSrv.Close()
		}
	})

	// Run forever.
	select {}
}

func metricsHandler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}
