package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/leetmommy/leetmommy"
)

var _ leetmommy.IndexService = (*IndexService)(nil)

// IndexService manages cohort indexes.
type IndexService struct {
	client *Client
}

// NewIndexService returns an IndexService backed by the client.
func NewIndexService(client *Client) *IndexService {
	return &IndexService{client: client}
}

// Exists reports whether the index exists.
func (s *IndexService) Exists(ctx context.Context, index string) (bool, error) {
	es := s.client.es
	res, err := es.Indices.Exists([]string{index}, es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", index, err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("check index %s: %s", index, res.Status())
	}
}

// CreateIfAbsent creates the index unless it exists.
func (s *IndexService) CreateIfAbsent(ctx context.Context, index string, schema leetmommy.IndexSchema) (bool, error) {
	if err := schema.Validate(); err != nil {
		return false, err
	}

	exists, err := s.Exists(ctx, index)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	err = s.create(ctx, index, schema)
	var reqErr *requestError
	if errors.As(err, &reqErr) && reqErr.kind == indexAlreadyExists {
		// Created concurrently by another process.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Recreate deletes the index if present and creates it empty.
func (s *IndexService) Recreate(ctx context.Context, index string, schema leetmommy.IndexSchema) error {
	if err := schema.Validate(); err != nil {
		return err
	}

	if err := s.Delete(ctx, index); err != nil && leetmommy.ErrorCode(err) != leetmommy.ENOTFOUND {
		return err
	}
	return s.create(ctx, index, schema)
}

// Delete removes the index. Returns ENOTFOUND if it does not exist.
func (s *IndexService) Delete(ctx context.Context, index string) error {
	es := s.client.es
	res, err := es.Indices.Delete([]string{index}, es.Indices.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete index %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return decodeError(res, "delete index", index)
	}
	return nil
}

func (s *IndexService) create(ctx context.Context, index string, schema leetmommy.IndexSchema) error {
	body, err := json.Marshal(indexBody(schema))
	if err != nil {
		return fmt.Errorf("encode index body: %w", err)
	}

	es := s.client.es
	res, err := es.Indices.Create(index,
		es.Indices.Create.WithBody(bytes.NewReader(body)),
		es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return decodeError(res, "create index", index)
	}
	return nil
}

// indexBody builds the settings and mappings of a cohort index. Titles
// are indexed as lower-cased edge n-grams so that word prefixes match;
// every other field uses the standard analyzer.
func indexBody(schema leetmommy.IndexSchema) map[string]any {
	text := map[string]any{"type": "text"}
	return map[string]any{
		"settings": map[string]any{
			"number_of_shards":   schema.Shards,
			"number_of_replicas": schema.Replicas,
			"analysis": map[string]any{
				"filter": map[string]any{
					"autocomplete_filter": map[string]any{
						"type":     "edge_ngram",
						"min_gram": schema.MinGram,
						"max_gram": schema.MaxGram,
					},
				},
				"analyzer": map[string]any{
					"autocomplete": map[string]any{
						"type":      "custom",
						"tokenizer": "standard",
						"filter":    []string{"lowercase", "autocomplete_filter"},
					},
				},
			},
		},
		"mappings": map[string]any{
			"properties": map[string]any{
				"title":   map[string]any{"type": "text", "analyzer": "autocomplete"},
				"headers": text,
				"bullets": text,
				"text":    text,
				"code":    text,
				"url":     text,
			},
		},
	}
}
