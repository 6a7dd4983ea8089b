// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/chainworks/workerfund/api"
	"github.com/chainworks/workerfund/co"
	"github.com/chainworks/workerfund/log"
	"github.com/chainworks/workerfund/metrics"
	"github.com/chainworks/workerfund/store"
	"github.com/chainworks/workerfund/worker"
	"github.com/chainworks/workerfund/workerfund"
)

var (
	version   string
	gitCommit string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	if gitCommit == "" {
		return version + "-dev"
	}
	return fmt.Sprintf("%s-%s", version, gitCommit)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "workerfund",
		Usage:   "solo node of the worker-proposal funding subsystem",
		Flags: []cli.Flag{
			configFlag,
			apiAddrFlag,
			apiCorsFlag,
			metricsAddrFlag,
			verbosityFlag,
		},
		Action: soloAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func soloAction(ctx *cli.Context) error {
	initLogger(ctx.Int(verbosityFlag.Name))

	cfg, err := loadConfig(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	if addr := ctx.String(apiAddrFlag.Name); addr != "" && ctx.IsSet(apiAddrFlag.Name) {
		cfg.API.Addr = addr
	}
	if cors := ctx.String(apiCorsFlag.Name); cors != "" {
		cfg.API.AllowedOrigins = strings.Split(cors, ",")
	}
	if addr := ctx.String(metricsAddrFlag.Name); addr != "" {
		cfg.Metrics.Addr = addr
	}

	dispatcher := worker.New(store.New(), cfg.workerConfig())

	if cfg.Metrics.Addr != "" {
		metrics.InitializePrometheusMetrics()
		closeMetrics, err := api.Serve(cfg.Metrics.Addr, metrics.HTTPHandler())
		if err != nil {
			return err
		}
		defer closeMetrics()
	}

	closeAPI, err := api.Serve(cfg.API.Addr, http.HandlerFunc(api.New(dispatcher, api.Options{
		AllowedOrigins: cfg.API.AllowedOrigins,
	})))
	if err != nil {
		return err
	}
	defer closeAPI()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// solo block production: tick on the block interval until
	// interrupted
	var goes co.Goes
	stop := make(chan struct{})
	goes.Go(func() {
		ticker := time.NewTicker(time.Duration(workerfund.BlockInterval) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				dispatcher.Tick(uint64(now.Unix()))
			}
		}
	})

	<-quit
	logger.Info("shutting down")
	close(stop)
	goes.Wait()
	return nil
}

func initLogger(verbosity int) {
	var level slog.Level
	switch verbosity {
	case 0:
		level = slog.LevelError
	case 1:
		level = slog.LevelWarn
	case 2:
		level = slog.LevelInfo
	case 3:
		level = slog.LevelDebug
	default:
		level = log.LevelTrace
	}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.SetHandler(log.NewTerminalHandler(level))
		return
	}
	log.SetHandler(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
