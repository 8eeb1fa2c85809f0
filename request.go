package leetmommy

import (
	"fmt"
	"sort"
	"strings"
)

// FieldError describes a validation failure on a single request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(parts, "; ")
}

// Fields groups the error messages by field name.
func (e *ValidationError) Fields() map[string][]string {
	fields := make(map[string][]string, len(e.Errors))
	for _, fe := range e.Errors {
		fields[fe.Field] = append(fields[fe.Field], fe.Message)
	}
	return fields
}

func (e *ValidationError) add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

func (e *ValidationError) errOrNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	sort.SliceStable(e.Errors, func(i, j int) bool {
		return e.Errors[i].Field < e.Errors[j].Field
	})
	return e
}

// CohortRequest is the input of operations scoped to a cohort.
type CohortRequest struct {
	Cohort string `json:"cohort"`
}

// Validate returns a *ValidationError if the cohort is missing or not one of cohorts.
func (r *CohortRequest) Validate(cohorts Cohorts) error {
	var verr ValidationError
	validateCohort(&verr, r.Cohort, cohorts)
	return verr.errOrNil()
}

// QueryRequest is the input of search and autocomplete.
type QueryRequest struct {
	Cohort string `json:"cohort"`
	Query  string `json:"query"`
}

// Validate returns a *ValidationError if the cohort is missing or unknown,
// or if the query is blank.
func (r *QueryRequest) Validate(cohorts Cohorts) error {
	var verr ValidationError
	validateCohort(&verr, r.Cohort, cohorts)
	if strings.TrimSpace(r.Query) == "" {
		verr.add("query", "This field is required.")
	}
	return verr.errOrNil()
}

func validateCohort(verr *ValidationError, cohort string, cohorts Cohorts) {
	if cohort == "" {
		verr.add("cohort", "This field is required.")
		return
	}
	if !cohorts.Contains(Cohort(cohort)) {
		verr.add("cohort", fmt.Sprintf("Value must be one of %v.", cohorts.Strings()))
	}
}
