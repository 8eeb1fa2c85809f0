package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leetmommy/leetmommy"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	leetmommy.ECONFLICT: http.StatusConflict,
	leetmommy.EINVALID:  http.StatusBadRequest,
	leetmommy.ENOTFOUND: http.StatusNotFound,
	leetmommy.ETIMEOUT:  http.StatusGatewayTimeout,
	leetmommy.EINTERNAL: http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Errors map[string][]string `json:"errors"`
}

// Error writes err to the response. Validation errors are reported per field;
// internal errors are logged and their details hidden from the client.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	var verr *leetmommy.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, validationResponse{Errors: verr.Fields()})
		return
	}

	code, message := leetmommy.ErrorCode(err), leetmommy.ErrorMessage(err)
	if code == leetmommy.EINTERNAL {
		s.Logger.Error("http error",
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
	}

	writeJSON(w, ErrorStatusCode(code), errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
