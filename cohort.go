package leetmommy

import "strings"

// Cohort identifies a named partition of lecture content.
// Each cohort owns exactly one search index.
type Cohort string

// IndexName returns the name of the search index backing the cohort.
func (c Cohort) IndexName() string {
	return strings.ToLower(string(c))
}

// Cohorts is the configured set of valid cohort identifiers.
type Cohorts []Cohort

// DefaultCohorts returns the cohorts served when none are configured.
func DefaultCohorts() Cohorts {
	return Cohorts{"r11", "r12", "r13", "r14"}
}

// ParseCohorts splits a comma or whitespace separated list of cohorts.
// Empty entries are dropped.
func ParseCohorts(s string) Cohorts {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	cohorts := make(Cohorts, 0, len(fields))
	for _, f := range fields {
		cohorts = append(cohorts, Cohort(f))
	}
	return cohorts
}

// Contains reports whether the cohort is a member of the set.
func (cs Cohorts) Contains(c Cohort) bool {
	for _, cohort := range cs {
		if cohort == c {
			return true
		}
	}
	return false
}

// Strings returns the cohorts as plain strings.
func (cs Cohorts) Strings() []string {
	s := make([]string, len(cs))
	for i, c := range cs {
		s[i] = string(c)
	}
	return s
}
