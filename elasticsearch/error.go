package elasticsearch

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/leetmommy/leetmommy"
)

// Elasticsearch error types with special handling.
const (
	indexNotFound      = "index_not_found_exception"
	indexAlreadyExists = "resource_already_exists_exception"
)

// errorResponse is the body of a failed Elasticsearch request.
type errorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

// decodeError reads a failed response and converts it into an error.
// A missing index is reported as ENOTFOUND.
func decodeError(res *esapi.Response, op, index string) error {
	body, _ := io.ReadAll(res.Body)

	var e errorResponse
	if err := json.Unmarshal(body, &e); err != nil || e.Error.Type == "" {
		if res.StatusCode == http.StatusNotFound {
			return leetmommy.Errorf(leetmommy.ENOTFOUND, "index %q not found", index)
		}
		return fmt.Errorf("%s %s: %s", op, index, res.Status())
	}

	if e.Error.Type == indexNotFound {
		return leetmommy.Errorf(leetmommy.ENOTFOUND, "index %q not found", index)
	}
	return &requestError{op: op, index: index, status: res.StatusCode, kind: e.Error.Type, reason: e.Error.Reason}
}

// requestError is a rejected Elasticsearch request.
type requestError struct {
	op     string
	index  string
	status int
	kind   string
	reason string
}

func (e *requestError) Error() string {
	return fmt.Sprintf("%s %s: %d %s: %s", e.op, e.index, e.status, e.kind, e.reason)
}
