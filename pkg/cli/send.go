// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newSendCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "send",
		Short: "Send the good morning email once and exit",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSend(opts)
		},
	}
}

// runSend makes a single delivery attempt and prints the result as JSON. A
// failed delivery is reported as an error so the process exits non-zero.
func runSend(opts *Options) error {
	zl, err := opts.logger()
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()
	log := zl.Sugar()

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

	result := mailer.Send()

	encoder := json.NewEncoder(opts.writer())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode send result: %w", err)
	}

	if !result.Success {
		return errors.New(result.Error)
	}
	return nil
}
