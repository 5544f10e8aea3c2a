package drive

import (
	"context"

	"golang.org/x/oauth2"
)

// TokenProvider supplies a bearer token for Drive API calls.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}

// TokenSourceAdapter adapts a TokenProvider to oauth2.TokenSource so
// Google API clients can use it with option.WithTokenSource().
type TokenSourceAdapter struct {
	provider TokenProvider
	ctx      context.Context
}

// NewTokenSource creates an oauth2.TokenSource from a TokenProvider.
func NewTokenSource(ctx context.Context, provider TokenProvider) oauth2.TokenSource {
	return &TokenSourceAdapter{provider: provider, ctx: ctx}
}

// Token implements oauth2.TokenSource.
func (t *TokenSourceAdapter) Token() (*oauth2.Token, error) {
	accessToken, err := t.provider.GetToken(t.ctx)
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, nil
}

// StaticToken is a TokenProvider for a fixed access token, typically
// read from configuration.
type StaticToken string

// GetToken implements TokenProvider.
func (s StaticToken) GetToken(context.Context) (string, error) {
	return string(s), nil
}
