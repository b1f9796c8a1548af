// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/telekom/daily-mailer/pkg/system"
)

func TestServe_SignalExitsWithZero(t *testing.T) {
	for _, sig := range []os.Signal{syscall.SIGTERM, syscall.SIGINT} {
		t.Run(signalName(sig), func(t *testing.T) {
			clearEnv(t)

			core, logs := observer.New(zap.InfoLevel)
			sigs := make(chan os.Signal, 1)
			exitCodes := make(chan int, 1)
			opts := &Options{
				Port:    "0",
				Out:     io.Discard,
				Logger:  zap.New(core),
				Signals: sigs,
				Exit:    func(code int) { exitCodes <- code },
			}

			done := make(chan error, 1)
			go func() { done <- runServe(opts) }()

			var port int
			require.Eventually(t, func() bool {
				for _, entry := range logs.FilterMessageSnippet("Health check:").All() {
					if _, err := fmt.Sscanf(entry.Message, "Health check: http://localhost:%d/", &port); err == nil {
						return true
					}
				}
				return false
			}, 5*time.Second, 10*time.Millisecond)

			assert.Equal(t, 1, logs.FilterMessage("Environment: development").Len())
			assert.Equal(t, 1, logs.FilterMessage(fmt.Sprintf("Server is running on port %d", port)).Len())

			resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/", port))
			require.NoError(t, err)
			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			_ = resp.Body.Close()
			assert.Equal(t, "running", body["status"])
			assert.Equal(t, "Daily at 8:00 AM WAT", body["nextRun"])

			sigs <- sig

			select {
			case code := <-exitCodes:
				assert.Equal(t, 0, code)
			case <-time.After(5 * time.Second):
				t.Fatal("process did not exit after signal")
			}
			require.NoError(t, <-done)
			assert.Equal(t, 1, logs.FilterMessage(signalName(sig)+" received, shutting down gracefully...").Len())
		})
	}
}

func TestServe_InvalidPortIsStartupError(t *testing.T) {
	clearEnv(t)

	exited := false
	opts := &Options{
		Port:   "not-a-port",
		Logger: system.NewTestZapLogger(),
		Exit:   func(int) { exited = true },
	}

	err := runServe(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PORT")
	assert.False(t, exited)
}

func TestServe_PortInUseIsStartupError(t *testing.T) {
	clearEnv(t)

	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()

	opts := &Options{
		Port:   fmt.Sprint(ln.Addr().(*net.TCPAddr).Port),
		Logger: system.NewTestZapLogger(),
		Exit:   func(int) { t.Error("exit must not be called") },
	}

	err = runServe(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binding")
}

func TestServe_UnknownTransportIsStartupError(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMAIL_TRANSPORT", "carrier-pigeon")

	err := runServe(&Options{Port: "0", Logger: system.NewTestZapLogger()})
	assert.Error(t, err)
}
