// Package leetmommy provides search over cohort lecture notes.
// It crawls a cohort's lecture listing, extracts structured text fields from
// each page, keeps a per-cohort full-text index in sync with the crawl, and
// answers fuzzy search and title autocomplete queries against that index.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, elasticsearch/, sqlite/).
package leetmommy
