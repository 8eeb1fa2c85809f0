package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/leetmommy/leetmommy"
)

var _ leetmommy.SearchService = (*SearchService)(nil)

// QueryConfig holds the field boosts and spelling tolerance of full-text
// search.
type QueryConfig struct {
	TitleBoost  float64
	HeaderBoost float64
	CodeBoost   float64
	Fuzziness   int
}

// DefaultQueryConfig returns the standard search weighting: titles over
// headers over body text, with code weighted below body text.
func DefaultQueryConfig() QueryConfig {
	return QueryConfig{
		TitleBoost:  3,
		HeaderBoost: 2,
		CodeBoost:   0.5,
		Fuzziness:   2,
	}
}

// Validate returns an error unless title > headers > 1 > code > 0 and the
// fuzziness is an edit distance the engine accepts.
func (c QueryConfig) Validate() error {
	if !(c.TitleBoost > c.HeaderBoost && c.HeaderBoost > 1 && c.CodeBoost < 1 && c.CodeBoost > 0) {
		return leetmommy.Errorf(leetmommy.EINVALID,
			"query boosts must satisfy title > headers > 1 > code > 0: title=%g headers=%g code=%g",
			c.TitleBoost, c.HeaderBoost, c.CodeBoost)
	}
	if c.Fuzziness < 0 || c.Fuzziness > 2 {
		return leetmommy.Errorf(leetmommy.EINVALID, "query fuzziness must be between 0 and 2: %d", c.Fuzziness)
	}
	return nil
}

// fields returns the boosted multi_match field list.
func (c QueryConfig) fields() []string {
	boost := func(field string, b float64) string {
		return field + "^" + strconv.FormatFloat(b, 'g', -1, 64)
	}
	return []string{
		boost("title", c.TitleBoost),
		boost("headers", c.HeaderBoost),
		"bullets",
		"text",
		boost("code", c.CodeBoost),
	}
}

// SearchService queries cohort indexes.
type SearchService struct {
	client *Client
	config QueryConfig
}

// NewSearchService returns a SearchService using DefaultQueryConfig.
func NewSearchService(client *Client) *SearchService {
	return &SearchService{client: client, config: DefaultQueryConfig()}
}

// NewSearchServiceWithConfig returns a SearchService with custom weighting.
func NewSearchServiceWithConfig(client *Client, config QueryConfig) (*SearchService, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &SearchService{client: client, config: config}, nil
}

type searchResponse struct {
	Hits struct {
		Hits []*leetmommy.Match `json:"hits"`
	} `json:"hits"`
}

// Search runs a fuzzy multi-field query requiring every term to match.
func (s *SearchService) Search(ctx context.Context, index string, query string) ([]*leetmommy.Document, error) {
	body := searchQuery(query, s.config)

	hits, err := s.search(ctx, index, body)
	if err != nil {
		return nil, err
	}

	docs := make([]*leetmommy.Document, 0, len(hits))
	for _, h := range hits {
		if h.Source != nil {
			docs = append(docs, h.Source)
		}
	}
	return docs, nil
}

// Autocomplete matches text against titles. The query text is analyzed
// with the standard analyzer so that it matches the title n-grams whole.
func (s *SearchService) Autocomplete(ctx context.Context, index string, text string) ([]*leetmommy.Match, error) {
	return s.search(ctx, index, autocompleteQuery(text))
}

func searchQuery(query string, config QueryConfig) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    config.fields(),
				"operator":  "and",
				"fuzziness": strconv.Itoa(config.Fuzziness),
			},
		},
	}
}

func autocompleteQuery(text string) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"match": map[string]any{
				"title": map[string]any{
					"query":     text,
					"fuzziness": "0",
					"analyzer":  "standard",
				},
			},
		},
	}
}

func (s *SearchService) search(ctx context.Context, index string, query map[string]any) ([]*leetmommy.Match, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	es := s.client.es
	res, err := es.Search(
		es.Search.WithIndex(index),
		es.Search.WithBody(bytes.NewReader(body)),
		es.Search.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, decodeError(res, "search", index)
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if sr.Hits.Hits == nil {
		return []*leetmommy.Match{}, nil
	}
	return sr.Hits.Hits, nil
}
