package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// tokenExpiryMargin is subtracted from a token's reported TTL so a token
// that would expire mid-request is never reused.
const tokenExpiryMargin = 60 * time.Second

// exchangeFunc performs a credential exchange and returns a token whose
// Expiry already accounts for the safety margin.
type exchangeFunc func(ctx context.Context) (*oauth2.Token, error)

// tokenCache holds one cached client-credentials token per service instance.
//
// States: absent (token == nil), valid (now before Expiry), expired.
// A valid token is returned without a network call; absent or expired
// triggers a re-exchange. The mutex serializes concurrent refreshes so two
// callers racing on an expired token issue a single exchange request.
type tokenCache struct {
	mu       sync.Mutex
	token    *oauth2.Token
	exchange exchangeFunc
	now      func() time.Time
}

func newTokenCache(exchange exchangeFunc) *tokenCache {
	return &tokenCache{exchange: exchange, now: time.Now}
}

// Ensure returns the cached access token, exchanging credentials first if
// the cache is absent or past its margin-adjusted expiry.
func (c *tokenCache) Ensure(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != nil && c.now().Before(c.token.Expiry) {
		return c.token.AccessToken, nil
	}

	token, err := c.exchange(ctx)
	if err != nil {
		return "", err
	}

	c.token = token
	return token.AccessToken, nil
}

// Invalidate drops the cached token. The next Ensure call re-exchanges.
func (c *tokenCache) Invalidate() {
	c.mu.Lock()
	c.token = nil
	c.mu.Unlock()
}
