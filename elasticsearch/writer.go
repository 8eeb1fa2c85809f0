package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/leetmommy/leetmommy"
)

var _ leetmommy.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter upserts documents with the bulk API.
type DocumentWriter struct {
	client *Client
}

// NewDocumentWriter returns a DocumentWriter backed by the client.
func NewDocumentWriter(client *Client) *DocumentWriter {
	return &DocumentWriter{client: client}
}

type bulkAction struct {
	Update bulkMeta `json:"update"`
}

type bulkMeta struct {
	ID string `json:"_id"`
}

type bulkUpdate struct {
	Doc         *leetmommy.Document `json:"doc"`
	DocAsUpsert bool                `json:"doc_as_upsert"`
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

// WriteDocuments sends one update-or-insert operation per document, keyed
// by URL, then refreshes the index.
func (w *DocumentWriter) WriteDocuments(ctx context.Context, index string, docs []*leetmommy.Document) (*leetmommy.WriteReport, error) {
	report := &leetmommy.WriteReport{Failed: []leetmommy.WriteFailure{}}

	if len(docs) > 0 {
		body, err := encodeBulk(docs)
		if err != nil {
			return nil, err
		}
		if err := w.bulk(ctx, index, body, report); err != nil {
			return nil, err
		}
	}

	if err := w.refresh(ctx, index); err != nil {
		return nil, err
	}
	return report, nil
}

func encodeBulk(docs []*leetmommy.Document) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			return nil, err
		}
		if err := enc.Encode(bulkAction{Update: bulkMeta{ID: doc.URL}}); err != nil {
			return nil, fmt.Errorf("encode bulk action: %w", err)
		}
		if err := enc.Encode(bulkUpdate{Doc: doc, DocAsUpsert: true}); err != nil {
			return nil, fmt.Errorf("encode bulk document: %w", err)
		}
	}
	return &buf, nil
}

func (w *DocumentWriter) bulk(ctx context.Context, index string, body *bytes.Buffer, report *leetmommy.WriteReport) error {
	es := w.client.es
	res, err := es.Bulk(body,
		es.Bulk.WithIndex(index),
		es.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("bulk write to %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return decodeError(res, "bulk write", index)
	}

	var br bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&br); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}

	for _, item := range br.Items {
		for _, result := range item {
			if result.Error == nil {
				report.Written++
				continue
			}
			report.Failed = append(report.Failed, leetmommy.WriteFailure{
				URL:    result.ID,
				Status: result.Status,
				Reason: fmt.Sprintf("%s: %s", result.Error.Type, result.Error.Reason),
			})
		}
	}
	return nil
}

func (w *DocumentWriter) refresh(ctx context.Context, index string) error {
	es := w.client.es
	res, err := es.Indices.Refresh(
		es.Indices.Refresh.WithIndex(index),
		es.Indices.Refresh.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return decodeError(res, "refresh", index)
	}
	return nil
}
