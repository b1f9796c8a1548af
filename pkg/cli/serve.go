// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/telekom/daily-mailer/pkg/api"
	"github.com/telekom/daily-mailer/pkg/config"
	"github.com/telekom/daily-mailer/pkg/mail"
	"github.com/telekom/daily-mailer/pkg/scheduler"
	"github.com/telekom/daily-mailer/pkg/system"
	"github.com/telekom/daily-mailer/pkg/telemetry"
	"github.com/telekom/daily-mailer/pkg/version"
)

func newServeCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Schedule the daily email and serve the HTTP endpoints",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(opts)
		},
	}
}

// initTracing installs the tracer provider described by cfg.
func initTracing(cfg config.Config, log *zap.SugaredLogger) (telemetry.ShutdownFunc, error) {
	_, shutdown, err := telemetry.Init(context.Background(), telemetry.Options{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    telemetry.DefaultServiceName,
		ServiceVersion: version.Version,
		Exporter:       cfg.Tracing.Exporter,
		SamplingRate:   cfg.Tracing.SamplingRate,
		Logger:         log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	return shutdown, nil
}

// newMailer builds the mailer for the configured transport and the fixed
// good morning message.
func newMailer(cfg config.Config, log *zap.SugaredLogger) (*mail.Mailer, error) {
	transport, err := mail.NewTransport(cfg.Mail, log)
	if err != nil {
		return nil, err
	}
	return mail.NewMailer(transport, mail.GoodMorning(cfg.Mail.From, cfg.Mail.To), log), nil
}

// runServe runs until a shutdown signal arrives or the listener fails. A
// signal ends the process right away with status 0; in-flight sends are not
// awaited.
func runServe(opts *Options) error {
	zl, err := opts.logger()
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()
	log := zl.Sugar()
	opts.Print(log)

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	shutdownTracing, err := initTracing(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	mailer, err := newMailer(cfg, log)
	if err != nil {
		return err
	}

	sched, err := scheduler.New(scheduler.DefaultSpec, scheduler.DefaultTimezone, scheduler.SendJob(mailer, log), zl)
	if err != nil {
		return err
	}

	server := api.NewServer(zl, cfg, opts.Debug, mailer, api.Schedule{
		Description: scheduler.DefaultDescription,
		Timezone:    scheduler.DefaultTimezone,
	})

	addr, err := cfg.ListenAddress()
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("binding %s: %w", addr, err)
	}

	sched.Start()

	port := ln.Addr().(*net.TCPAddr).Port
	log.Infof("Server is running on port %d", port)
	log.Infof("Environment: %s", cfg.Server.Environment)
	log.Infof("Health check: http://localhost:%d/", port)
	log.Infow("Next scheduled email",
		"nextRun", system.FormatTimestamp(sched.Next()),
		"transport", cfg.Mail.Transport,
		"to", cfg.Mail.To)

	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Serve(ln) }()

	sigs := opts.Signals
	if sigs == nil {
		sigs = make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigs)
	}

	select {
	case sig := <-sigs:
		log.Infof("%s received, shutting down gracefully...", signalName(sig))
		_ = ln.Close()
		sched.Stop()
		_ = shutdownTracing(context.Background())
		_ = zl.Sync()
		opts.exit(0)
		return nil
	case err := <-serveErr:
		sched.Stop()
		if err == nil {
			err = errors.New("listener closed")
		}
		return fmt.Errorf("http server stopped: %w", err)
	}
}
