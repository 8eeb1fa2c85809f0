package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/leetmommy/leetmommy"
)

type pingResponse struct {
	Ping bool `json:"ping"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Engine    string `json:"engine"`
	Timestamp string `json:"timestamp"`
}

type scrapeResponse struct {
	Data   []*leetmommy.Document  `json:"data"`
	Failed []leetmommy.FailedPage `json:"failed"`
	Report *leetmommy.WriteReport `json:"report"`
	Run    *leetmommy.CrawlRun    `json:"run"`
}

type dataResponse struct {
	Data any `json:"data"`
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pingResponse{Ping: true})
}

// handleHealth checks engine connectivity within a short timeout.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "healthy",
		Engine:    "connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if s.Health == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := s.Health.Health(ctx); err != nil {
		s.Logger.Warn("health check failed", "err", err)
		resp.Status = "unhealthy"
		resp.Engine = "disconnected"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleScrape crawls a cohort and upserts its documents into the cohort index.
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req leetmommy.CohortRequest
	if err := decodeCohortRequest(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}
	if err := req.Validate(s.Cohorts); err != nil {
		s.Error(w, r, err)
		return
	}

	result, err := s.Indexer.IndexCohort(r.Context(), leetmommy.Cohort(req.Cohort))
	if err != nil {
		s.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, scrapeResponse{
		Data:   result.Documents,
		Failed: result.Failed,
		Report: result.Report,
		Run:    result.Run,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req := queryRequest(r)
	if err := req.Validate(s.Cohorts); err != nil {
		s.Error(w, r, err)
		return
	}

	docs, err := s.Search.Search(r.Context(), leetmommy.Cohort(req.Cohort).IndexName(), req.Query)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: docs})
}

func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	req := queryRequest(r)
	if err := req.Validate(s.Cohorts); err != nil {
		s.Error(w, r, err)
		return
	}

	matches, err := s.Search.Autocomplete(r.Context(), leetmommy.Cohort(req.Cohort).IndexName(), req.Query)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: matches})
}

// handleCrawls lists crawl history, optionally for a single cohort.
func (s *Server) handleCrawls(w http.ResponseWriter, r *http.Request) {
	if s.Runs == nil {
		s.Error(w, r, leetmommy.Errorf(leetmommy.ENOTFOUND, "crawl history is not enabled"))
		return
	}

	var filter leetmommy.CrawlRunFilter
	if cohort := r.URL.Query().Get("cohort"); cohort != "" {
		req := leetmommy.CohortRequest{Cohort: cohort}
		if err := req.Validate(s.Cohorts); err != nil {
			s.Error(w, r, err)
			return
		}
		c := leetmommy.Cohort(cohort)
		filter.Cohort = &c
	}
	filter.Limit = 50

	runs, err := s.Runs.FindCrawlRuns(r.Context(), filter)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if runs == nil {
		runs = []*leetmommy.CrawlRun{}
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: runs})
}

// decodeCohortRequest reads the cohort from a JSON body or, for any other
// content type, from form values. An empty body decodes to an empty request
// and a mistyped field is reported against that field.
func decodeCohortRequest(r *http.Request, req *leetmommy.CohortRequest) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		req.Cohort = r.FormValue("cohort")
		return nil
	}

	err := json.NewDecoder(r.Body).Decode(req)
	var typeErr *json.UnmarshalTypeError
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return &leetmommy.ValidationError{Errors: []leetmommy.FieldError{
			{Field: typeErr.Field, Message: "Not a valid string."},
		}}
	default:
		return leetmommy.Errorf(leetmommy.EINVALID, "invalid JSON body: %v", err)
	}
}

func queryRequest(r *http.Request) leetmommy.QueryRequest {
	q := r.URL.Query()
	return leetmommy.QueryRequest{
		Cohort: q.Get("cohort"),
		Query:  q.Get("query"),
	}
}
