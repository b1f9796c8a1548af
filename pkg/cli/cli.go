// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/telekom/daily-mailer/pkg/config"
	"github.com/telekom/daily-mailer/pkg/system"
)

// Options carries the flags shared by every command plus the hooks the serve
// command uses to observe signals and terminate the process.
type Options struct {
	Debug      bool
	ConfigPath string
	// Port overrides PORT when non-empty.
	Port string

	Out io.Writer

	// Logger replaces the logger built from Debug when set.
	Logger *zap.Logger
	// Signals delivers shutdown signals. When nil the serve command subscribes
	// to SIGINT and SIGTERM itself.
	Signals chan os.Signal
	// Exit terminates the process. Defaults to os.Exit.
	Exit func(code int)
}

func DefaultOptions() *Options {
	return &Options{
		Debug:      getEnvBool("DAILY_MAILER_DEBUG", false),
		ConfigPath: getEnvString(config.ConfigPathEnv, ""),
		Out:        os.Stdout,
		Exit:       os.Exit,
	}
}

// NewRootCommand builds the daily-mailer command tree. Running the root
// command without a subcommand starts the server.
func NewRootCommand(opts *Options) *cobra.Command {
	if opts == nil {
		opts = DefaultOptions()
	}

	root := &cobra.Command{
		Use:          "daily-mailer",
		Short:        "Sends a good morning email every day at 08:00 West Africa Time",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(opts)
		},
	}

	root.PersistentFlags().BoolVar(&opts.Debug, "debug", opts.Debug, "Enable debug level logging, gin debug mode and CORS")
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Path to an optional YAML config file")
	root.PersistentFlags().StringVar(&opts.Port, "port", opts.Port, "HTTP listen port (overrides PORT)")

	root.AddCommand(
		newServeCommand(opts),
		newSendCommand(opts),
		NewVersionCommand(),
	)

	return root
}

func (o *Options) Print(log *zap.SugaredLogger) {
	log.Infow("CLI Configuration",
		"debug", o.Debug,
		"config_path", o.ConfigPath,
		"port_override", o.Port,
	)
}

func (o *Options) writer() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

func (o *Options) exit(code int) {
	if o.Exit != nil {
		o.Exit(code)
		return
	}
	os.Exit(code)
}

func (o *Options) logger() (*zap.Logger, error) {
	if o.Logger != nil {
		return o.Logger, nil
	}
	return system.NewLogger(o.Debug)
}

// loadConfig reads the configuration and applies flag overrides on top.
func (o *Options) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if o.Port != "" {
		cfg.Server.Port = o.Port
	}
	return cfg, nil
}

func signalName(sig os.Signal) string {
	switch sig {
	case syscall.SIGTERM:
		return "SIGTERM"
	case syscall.SIGINT:
		return "SIGINT"
	default:
		return sig.String()
	}
}

// getEnvString returns the value of an environment variable, or the provided default if not set.
func getEnvString(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvBool returns the value of an environment variable as a bool, or the provided default if not set.
// Valid true values are "true", "1", "yes" (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}
