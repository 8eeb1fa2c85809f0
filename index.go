package leetmommy

import "context"

// IndexSchema describes the settings a cohort index is created with.
type IndexSchema struct {
	Shards   int `json:"shards"`
	Replicas int `json:"replicas"`

	// MinGram and MaxGram bound the edge n-grams generated from titles
	// for autocomplete.
	MinGram int `json:"minGram"`
	MaxGram int `json:"maxGram"`
}

// DefaultIndexSchema returns the schema used for cohort indexes: a single
// shard with no replicas, and title edge n-grams of 1 to 10 characters.
func DefaultIndexSchema() IndexSchema {
	return IndexSchema{
		Shards:   1,
		Replicas: 0,
		MinGram:  1,
		MaxGram:  10,
	}
}

// Validate returns an error if the schema contains invalid settings.
func (s IndexSchema) Validate() error {
	if s.Shards < 1 {
		return Errorf(EINVALID, "index schema requires at least one shard")
	}
	if s.Replicas < 0 {
		return Errorf(EINVALID, "index schema replicas must not be negative")
	}
	if s.MinGram < 1 || s.MaxGram < s.MinGram {
		return Errorf(EINVALID, "index schema gram bounds invalid: min=%d max=%d", s.MinGram, s.MaxGram)
	}
	return nil
}

// IndexService manages the lifecycle of search indexes.
type IndexService interface {
	// Exists reports whether the index exists.
	Exists(ctx context.Context, index string) (bool, error)

	// CreateIfAbsent creates the index with the schema unless it already
	// exists. Existing documents are never touched. Reports whether the
	// index was created.
	CreateIfAbsent(ctx context.Context, index string, schema IndexSchema) (bool, error)

	// Recreate deletes the index if it exists and creates it again with
	// the schema. All previously indexed documents are discarded.
	Recreate(ctx context.Context, index string, schema IndexSchema) error

	// Delete removes the index and its documents.
	// Returns ENOTFOUND if the index does not exist.
	Delete(ctx context.Context, index string) error
}
