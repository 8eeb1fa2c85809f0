package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	main "github.com/leetmommy/leetmommy/cmd/leetmommy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine answers the few Elasticsearch endpoints the commands call.
type fakeEngine struct {
	mu       sync.Mutex
	requests []string
}

func (f *fakeEngine) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/_search"):
		_ = json.NewEncoder(w).Encode(map[string]any{
			"hits": map[string]any{
				"hits": []map[string]any{{
					"_id":    "http://curric.example.com/r13/lectures/loops.html",
					"_index": "r13",
					"_score": 2.5,
					"_source": map[string]any{
						"url":   "http://curric.example.com/r13/lectures/loops.html",
						"title": "Intro to Loops",
					},
				}},
			},
		})
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"index_not_found_exception","reason":"no such index [r14]"},"status":404}`))
	default:
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	}
}

func (f *fakeEngine) log() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func runMain(t *testing.T, engine http.Handler, args ...string) (string, string, error) {
	t.Helper()

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	dbPath := filepath.Join(t.TempDir(), "leetmommy.db")
	m := main.NewMain()
	m.Getenv = env(map[string]string{
		"ELASTIC_SEARCH_URL": server.URL,
		"LEETMOMMY_DB":       dbPath,
		"LEETMOMMY_DEBUG":    "false",
	})

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	err := m.Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("searches cohort index on configured engine", func(t *testing.T) {
		t.Parallel()

		engine := &fakeEngine{}
		stdout, _, err := runMain(t, engine, "search", "r13", "loops")

		require.NoError(t, err)
		assert.Contains(t, stdout, "1. Intro to Loops")
		assert.Contains(t, engine.log(), "POST /r13/_search")
	})

	t.Run("autocomplete prints hit scores", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runMain(t, &fakeEngine{}, "autocomplete", "r13", "Intr")

		require.NoError(t, err)
		assert.Contains(t, stdout, "2.50  Intro to Loops")
	})

	t.Run("rejects cohort outside configured set", func(t *testing.T) {
		t.Parallel()

		engine := &fakeEngine{}
		_, stderr, err := runMain(t, engine, "search", "r99", "loops")

		require.Error(t, err)
		assert.Contains(t, stderr, "cohort")
		assert.Empty(t, engine.log())
	})

	t.Run("reports deleting a missing index", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := runMain(t, &fakeEngine{}, "delete", "r14", "--force")

		require.Error(t, err)
		assert.Contains(t, stderr, "not found")
	})

	t.Run("lists empty crawl history", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runMain(t, &fakeEngine{}, "runs")

		require.NoError(t, err)
		assert.Contains(t, stdout, "No crawl runs found")
	})

	t.Run("routes engine traffic through custom transport", func(t *testing.T) {
		t.Parallel()

		engine := &fakeEngine{}
		server := httptest.NewServer(engine)
		t.Cleanup(server.Close)

		var seen []string
		m := main.NewMain()
		m.Transport = roundTripFunc(func(r *http.Request) (*http.Response, error) {
			seen = append(seen, r.URL.Path)
			return http.DefaultTransport.RoundTrip(r)
		})
		m.Getenv = env(map[string]string{
			"ELASTIC_SEARCH_URL": server.URL,
			"LEETMOMMY_DB":       filepath.Join(t.TempDir(), "leetmommy.db"),
			"LEETMOMMY_DEBUG":    "false",
		})

		err := m.Run(context.Background(), []string{"search", "r13", "loops"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, seen, "/r13/_search")
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
