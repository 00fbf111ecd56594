// Copyright 2025 Alibaba Group Holding Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/khusboo-kumari/htopd/pkg/flag"
	"github.com/khusboo-kumari/htopd/pkg/log"
	"github.com/khusboo-kumari/htopd/pkg/monitor"
	"github.com/khusboo-kumari/htopd/pkg/util/safego"
	"github.com/khusboo-kumari/htopd/pkg/web"
	"github.com/khusboo-kumari/htopd/pkg/web/controller"
)

// main initializes and starts the htopd server.
func main() {
	flag.InitFlags()

	log.SetLevel(flag.ServerLogLevel)
	defer log.Sync()

	// Cancelled once the shutdown grace period is over, which also
	// interrupts in-flight CPU samples.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	safego.InitPanicLogger(baseCtx)

	collector := monitor.NewCollector(
		monitor.SystemHost{},
		&monitor.SystemProcesses{},
		newUptimeReader(),
		monitor.Options{
			UserEnvKey:   flag.UserEnvKey,
			FallbackUser: flag.FallbackUser,
			CPUInterval:  flag.CPUSampleInterval,
			Clock:        monitor.NewOffsetClock(flag.TimestampOffset, flag.TimestampLabel),
		},
	)

	engine := web.NewRouter(&controller.HtopOptions{
		Source:      collector,
		Top:         flag.TopProcesses,
		DisplayName: flag.DisplayName,
	})

	server := &http.Server{
		Addr:        flag.ListenAddr(),
		Handler:     engine,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}

	serveErr := make(chan error, 1)
	safego.Go("http-server", func() {
		log.Info("htopd listening on %s", server.Addr)
		serveErr <- server.ListenAndServe()
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start htopd server: %v", err)
		}
		return
	case sig := <-stop:
		log.Info("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), flag.ApiGracefulShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Warn("graceful shutdown incomplete: %v", err)
		cancelBase()
		_ = server.Close()
	}
}

func newUptimeReader() monitor.UptimeReader {
	if flag.UptimeSource == "host" {
		return monitor.NewHostUptime()
	}
	return monitor.NewCommandUptime(flag.UptimeCommand)
}
