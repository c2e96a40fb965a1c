package mock

import (
	"context"

	"github.com/pagelens/pagelens"
)

var _ pagelens.ProfileAPI = (*ProfileAPI)(nil)

// ProfileAPI is a mock implementation of pagelens.ProfileAPI.
type ProfileAPI struct {
	FetchProfileFn func(ctx context.Context, username string) (*pagelens.ProfileRecord, error)
}

func (a *ProfileAPI) FetchProfile(ctx context.Context, username string) (*pagelens.ProfileRecord, error) {
	return a.FetchProfileFn(ctx, username)
}

var _ pagelens.TokenSource = (*TokenSource)(nil)

// TokenSource is a mock implementation of pagelens.TokenSource.
type TokenSource struct {
	TokenFn func(ctx context.Context) (string, error)
}

func (s *TokenSource) Token(ctx context.Context) (string, error) {
	return s.TokenFn(ctx)
}
