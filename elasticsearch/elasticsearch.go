// Package elasticsearch implements the index lifecycle, document writer and
// search services on top of an Elasticsearch cluster.
package elasticsearch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
)

// DefaultURL is the engine address used in development and testing.
const DefaultURL = "http://localhost:9200"

// Client wraps the Elasticsearch client shared by the services in this
// package.
type Client struct {
	es *elasticsearch.Client
}

// Option configures a Client.
type Option func(*elasticsearch.Config)

// WithTransport sets the HTTP transport used to reach the cluster.
func WithTransport(rt http.RoundTripper) Option {
	return func(cfg *elasticsearch.Config) {
		cfg.Transport = rt
	}
}

// NewClient returns a client for the cluster at the given addresses.
// No request is made until the client is used.
func NewClient(addresses []string, opts ...Option) (*Client, error) {
	if len(addresses) == 0 {
		addresses = []string{DefaultURL}
	}
	cfg := elasticsearch.Config{Addresses: addresses}
	for _, opt := range opts {
		opt(&cfg)
	}

	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return &Client{es: es}, nil
}

// Health pings the cluster and returns an error if it is unreachable.
func (c *Client) Health(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("ping: %s", res.Status())
	}
	return nil
}
