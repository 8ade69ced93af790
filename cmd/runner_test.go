package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/lttslabs/etlctl/internal/session"
	"github.com/lttslabs/etlctl/internal/shared"
	th "github.com/lttslabs/etlctl/internal/testing"
	"github.com/urfave/cli/v3"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			store := session.NewMemoryStore()

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Store:      store,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.store != store {
				t.Error("expected store to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("bootstrap", func(t *testing.T) {
		t.Run("is idempotent", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Store: session.NewMemoryStore()})

			if err := runner.bootstrap(); err != nil {
				t.Fatalf("bootstrap failed: %v", err)
			}
			client := runner.client

			if err := runner.bootstrap(); err != nil {
				t.Fatalf("second bootstrap failed: %v", err)
			}
			if runner.client != client {
				t.Error("expected the API stack to be built once")
			}
		})

		t.Run("restores persisted token", func(t *testing.T) {
			store := session.NewMemoryStore()
			if err := store.Set(session.TokenKey, "persisted"); err != nil {
				t.Fatal(err)
			}

			runner := NewRunner(RunnerOpts{Store: store})
			if err := runner.bootstrap(); err != nil {
				t.Fatalf("bootstrap failed: %v", err)
			}

			if !runner.sess.LoggedIn() {
				t.Error("expected the session to restore the stored token")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			if err := runner.writeJSON(data, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !strings.Contains(output.String(), `{"key":"value"}`) {
				t.Errorf("expected compact JSON, got %s", output.String())
			}
		})

		t.Run("propagates write failures", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &th.FWriter{}})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err == nil {
				t.Error("expected an error from a failing writer")
			}
		})
	})

	t.Run("parseKeyValues", func(t *testing.T) {
		t.Run("parses pairs", func(t *testing.T) {
			values, err := parseKeyValues([]string{"host=db.internal", "port=5432"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(values) != 2 || values[0].Key != "host" || values[1].Value != "5432" {
				t.Errorf("unexpected values: %+v", values)
			}
		})

		t.Run("keeps equals signs in values", func(t *testing.T) {
			values, err := parseKeyValues([]string{"sql=select 1 where a=b"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if values[0].Value != "select 1 where a=b" {
				t.Errorf("unexpected value: %q", values[0].Value)
			}
		})

		t.Run("rejects malformed pairs", func(t *testing.T) {
			if _, err := parseKeyValues([]string{"no-separator"}); !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("expected ErrInvalidFlag, got %v", err)
			}
			if _, err := parseKeyValues([]string{"=value"}); !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("expected ErrInvalidFlag for empty key, got %v", err)
			}
		})
	})

	t.Run("parseRecordStatus", func(t *testing.T) {
		cases := []struct {
			in   string
			want int
		}{
			{"running", 0},
			{"success", 1},
			{"failed", 2},
			{"any", -1},
			{"", -1},
		}
		for _, tc := range cases {
			got, err := parseRecordStatus(tc.in)
			if err != nil {
				t.Fatalf("parseRecordStatus(%q) failed: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("parseRecordStatus(%q) = %d, want %d", tc.in, got, tc.want)
			}
		}

		if _, err := parseRecordStatus("bogus"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

// newTestApp wires a runner against a fake backend with an in-memory
// credential store.
func newTestApp(t *testing.T, backend *httptest.Server, store session.Store) (*cli.Command, *bytes.Buffer) {
	t.Helper()

	config := shared.DefaultConfig()
	config.API.BaseURL = backend.URL

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: config,
		Output: output,
		Store:  store,
	})

	app := &cli.Command{
		Name:     "etlctl",
		Commands: runner.register(),
	}
	return app, output
}

func TestCommands(t *testing.T) {
	t.Run("auth login stores token", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/login" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Write([]byte(`{"code":200,"message":"welcome","data":{"token":"tok-1"}}`))
		}))
		defer backend.Close()

		store := session.NewMemoryStore()
		app, output := newTestApp(t, backend, store)

		err := app.Run(context.Background(), []string{"etlctl", "auth", "login", "-u", "admin", "-p", "pw"})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}

		if !strings.Contains(output.String(), "Logged in as admin") {
			t.Errorf("unexpected output: %s", output.String())
		}
		if token, ok, _ := store.Get(session.TokenKey); !ok || token != "tok-1" {
			t.Errorf("expected persisted token, got %q", token)
		}
	})

	t.Run("auth status reflects stored token", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer backend.Close()

		store := session.NewMemoryStore()
		store.Set(session.TokenKey, "tok-1")
		app, output := newTestApp(t, backend, store)

		if err := app.Run(context.Background(), []string{"etlctl", "auth", "status"}); err != nil {
			t.Fatalf("status failed: %v", err)
		}
		if !strings.Contains(output.String(), "✓ Authenticated") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("auth logout erases token", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer backend.Close()

		store := session.NewMemoryStore()
		store.Set(session.TokenKey, "tok-1")
		app, output := newTestApp(t, backend, store)

		if err := app.Run(context.Background(), []string{"etlctl", "auth", "logout"}); err != nil {
			t.Fatalf("logout failed: %v", err)
		}
		if !strings.Contains(output.String(), "Logged out") {
			t.Errorf("unexpected output: %s", output.String())
		}
		if _, ok, _ := store.Get(session.TokenKey); ok {
			t.Error("expected the token to be erased")
		}
	})

	t.Run("datasource list renders plain output", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "tok-1" {
				t.Errorf("expected raw token header, got %q", got)
			}
			w.Write([]byte(`{"code":200,"message":"","data":{"list":[{"id":"ds1","name":"pg-main","type":"postgresql"}]}}`))
		}))
		defer backend.Close()

		store := session.NewMemoryStore()
		store.Set(session.TokenKey, "tok-1")
		app, output := newTestApp(t, backend, store)

		if err := app.Run(context.Background(), []string{"etlctl", "datasource", "list"}); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if !strings.Contains(output.String(), "pg-main (postgresql)") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("expired token clears stored credential", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code":4,"message":"expired","data":null}`))
		}))
		defer backend.Close()

		store := session.NewMemoryStore()
		store.Set(session.TokenKey, "stale")
		app, _ := newTestApp(t, backend, store)

		err := app.Run(context.Background(), []string{"etlctl", "mission", "list"})
		if !errors.Is(err, shared.ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}
		if _, ok, _ := store.Get(session.TokenKey); ok {
			t.Error("expected the stale token to be erased")
		}
	})

	t.Run("runlog list renders csv", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code":200,"message":"","data":{"total":1,"list":[{"id":"r1","task_id":"m1","status":1,"start_time":"2026-08-29 02:00:00"}]}}`))
		}))
		defer backend.Close()

		store := session.NewMemoryStore()
		store.Set(session.TokenKey, "tok-1")
		app, output := newTestApp(t, backend, store)

		if err := app.Run(context.Background(), []string{"etlctl", "runlog", "list", "--format", "csv"}); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if !strings.Contains(output.String(), "ID,Mission,Status,Started,Ended,Message") {
			t.Errorf("expected CSV headers, got: %s", output.String())
		}
		if !strings.Contains(output.String(), "r1,m1,Success") {
			t.Errorf("expected record row, got: %s", output.String())
		}
	})
}
