package mock

import (
	"context"

	"github.com/leetmommy/leetmommy"
)

var _ leetmommy.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of leetmommy.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentsFn func(ctx context.Context, index string, docs []*leetmommy.Document) (*leetmommy.WriteReport, error)
}

func (w *DocumentWriter) WriteDocuments(ctx context.Context, index string, docs []*leetmommy.Document) (*leetmommy.WriteReport, error) {
	return w.WriteDocumentsFn(ctx, index, docs)
}

var _ leetmommy.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of leetmommy.DocumentStore.
type DocumentStore struct {
	SaveFn   func(ctx context.Context, doc *leetmommy.Document) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *DocumentStore) Save(ctx context.Context, doc *leetmommy.Document) error {
	return s.SaveFn(ctx, doc)
}

func (s *DocumentStore) Commit() error {
	return s.CommitFn()
}

func (s *DocumentStore) Abort() error {
	return s.AbortFn()
}
