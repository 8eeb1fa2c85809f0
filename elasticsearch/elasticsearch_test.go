package elasticsearch_test

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/leetmommy/leetmommy/elasticsearch"
	"github.com/stretchr/testify/require"
)

// fakeEngine is a minimal in-memory stand-in for the Elasticsearch REST API.
// It supports the index, bulk, refresh and search calls used by this
// package. Search returns every stored document in id order.
type fakeEngine struct {
	mu       sync.Mutex
	indexes  map[string]map[string]map[string]any
	settings map[string]json.RawMessage
	queries  []map[string]any
	requests []string
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		indexes:  make(map[string]map[string]map[string]any),
		settings: make(map[string]json.RawMessage),
	}
}

// MustOpenClient starts a fake engine and returns a client connected to it.
func MustOpenClient(tb testing.TB) (*elasticsearch.Client, *fakeEngine) {
	tb.Helper()

	engine := newFakeEngine()
	server := httptest.NewServer(engine)
	tb.Cleanup(server.Close)

	client, err := elasticsearch.NewClient([]string{server.URL})
	require.NoError(tb, err)
	return client, engine
}

func (f *fakeEngine) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	index := parts[0]

	switch {
	case index == "":
		writeFake(w, http.StatusOK, map[string]any{"tagline": "You Know, for Search"})
	case len(parts) == 1 && r.Method == http.MethodHead:
		if _, ok := f.indexes[index]; ok {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case len(parts) == 1 && r.Method == http.MethodPut:
		if _, ok := f.indexes[index]; ok {
			writeFakeError(w, http.StatusBadRequest, "resource_already_exists_exception", "index ["+index+"] already exists")
			return
		}
		var body json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.indexes[index] = make(map[string]map[string]any)
		f.settings[index] = body
		writeFake(w, http.StatusOK, map[string]any{"acknowledged": true, "index": index})
	case len(parts) == 1 && r.Method == http.MethodDelete:
		if !f.requireIndex(w, index) {
			return
		}
		delete(f.indexes, index)
		delete(f.settings, index)
		writeFake(w, http.StatusOK, map[string]any{"acknowledged": true})
	case len(parts) == 2 && parts[1] == "_bulk":
		if !f.requireIndex(w, index) {
			return
		}
		f.bulk(w, r, index)
	case len(parts) == 2 && parts[1] == "_refresh":
		if !f.requireIndex(w, index) {
			return
		}
		writeFake(w, http.StatusOK, map[string]any{"_shards": map[string]int{"total": 1, "successful": 1}})
	case len(parts) == 2 && parts[1] == "_search":
		if !f.requireIndex(w, index) {
			return
		}
		var query map[string]any
		_ = json.NewDecoder(r.Body).Decode(&query)
		f.queries = append(f.queries, query)
		f.search(w, index)
	default:
		writeFakeError(w, http.StatusBadRequest, "illegal_argument_exception", "unsupported request "+r.Method+" "+r.URL.Path)
	}
}

func (f *fakeEngine) requireIndex(w http.ResponseWriter, index string) bool {
	if _, ok := f.indexes[index]; ok {
		return true
	}
	writeFakeError(w, http.StatusNotFound, "index_not_found_exception", "no such index ["+index+"]")
	return false
}

// bulk applies update operations with doc_as_upsert. Documents whose title
// is "reject" fail with a mapping error.
func (f *fakeEngine) bulk(w http.ResponseWriter, r *http.Request, index string) {
	var items []map[string]any
	hasErrors := false

	scanner := bufio.NewScanner(r.Body)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		var action map[string]map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &action); err != nil {
			writeFakeError(w, http.StatusBadRequest, "parse_exception", err.Error())
			return
		}
		if !scanner.Scan() {
			writeFakeError(w, http.StatusBadRequest, "parse_exception", "missing document line")
			return
		}
		var update struct {
			Doc         map[string]any `json:"doc"`
			DocAsUpsert bool           `json:"doc_as_upsert"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &update); err != nil {
			writeFakeError(w, http.StatusBadRequest, "parse_exception", err.Error())
			return
		}

		id, _ := action["update"]["_id"].(string)
		if update.Doc["title"] == "reject" {
			hasErrors = true
			items = append(items, map[string]any{"update": map[string]any{
				"_index": index, "_id": id, "status": http.StatusBadRequest,
				"error": map[string]any{"type": "mapper_parsing_exception", "reason": "failed to parse field [title]"},
			}})
			continue
		}

		existing, ok := f.indexes[index][id]
		status, result := http.StatusOK, "updated"
		if !ok {
			if !update.DocAsUpsert {
				hasErrors = true
				items = append(items, map[string]any{"update": map[string]any{
					"_index": index, "_id": id, "status": http.StatusNotFound,
					"error": map[string]any{"type": "document_missing_exception", "reason": "document missing"},
				}})
				continue
			}
			existing = make(map[string]any)
			status, result = http.StatusCreated, "created"
		}
		for k, v := range update.Doc {
			existing[k] = v
		}
		f.indexes[index][id] = existing
		items = append(items, map[string]any{"update": map[string]any{
			"_index": index, "_id": id, "status": status, "result": result,
		}})
	}

	writeFake(w, http.StatusOK, map[string]any{"took": 1, "errors": hasErrors, "items": items})
}

func (f *fakeEngine) search(w http.ResponseWriter, index string) {
	ids := make([]string, 0, len(f.indexes[index]))
	for id := range f.indexes[index] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	hits := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		hits = append(hits, map[string]any{
			"_index":  index,
			"_id":     id,
			"_score":  1.0,
			"_source": f.indexes[index][id],
		})
	}
	writeFake(w, http.StatusOK, map[string]any{
		"hits": map[string]any{
			"total": map[string]any{"value": len(hits), "relation": "eq"},
			"hits":  hits,
		},
	})
}

func (f *fakeEngine) documentCount(index string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.indexes[index])
}

func (f *fakeEngine) document(index, id string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.indexes[index][id]
}

func (f *fakeEngine) lastQuery() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return nil
	}
	return f.queries[len(f.queries)-1]
}

func (f *fakeEngine) indexSettings(index string) json.RawMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings[index]
}

func (f *fakeEngine) requestLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func writeFake(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeFakeError(w http.ResponseWriter, status int, kind, reason string) {
	writeFake(w, status, map[string]any{
		"error":  map[string]any{"type": kind, "reason": reason},
		"status": status,
	})
}
