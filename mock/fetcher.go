package mock

import (
	"context"

	"github.com/leetmommy/leetmommy"
)

var _ leetmommy.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of leetmommy.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*leetmommy.Page, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*leetmommy.Page, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ leetmommy.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of leetmommy.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
