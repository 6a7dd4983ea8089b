// Copyright (c) 2026 The WorkerFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/chainworks/workerfund/co"
	"github.com/chainworks/workerfund/log"
	"github.com/chainworks/workerfund/worker"
)

var logger = log.WithContext("pkg", "api")

// Options configures the API server.
type Options struct {
	AllowedOrigins []string
}

// New builds the API handler over the worker dispatcher.
func New(d *worker.Dispatcher, opts Options) http.HandlerFunc {
	router := mux.NewRouter()
	NewWorkers(d).Mount(router, "/workers")

	handler := handlers.CompressHandler(router)
	if len(opts.AllowedOrigins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(opts.AllowedOrigins),
			handlers.AllowedHeaders([]string{"content-type"}),
		)(handler)
	}
	return handler.ServeHTTP
}

// Serve listens on addr until the listener is closed. The returned
// close function stops the listener and waits for the serving
// goroutine.
func Serve(addr string, handler http.Handler) (func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{Handler: handler}
	var goes co.Goes
	goes.Go(func() {
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			logger.Warn("api server stopped", "error", err)
		}
	})
	logger.Info("api server listening", "addr", listener.Addr().String())
	return func() {
		srv.Close()
		goes.Wait()
	}, nil
}
