package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"routewise/pkg/cache"
	"routewise/pkg/logger"
	"routewise/pkg/ratelimit"
)

// ErrAuthenticationFailed is returned when the upstream rejects the
// credentials or the token response is not in the approved state.
var ErrAuthenticationFailed = errors.New("amadeus authentication failed")

// tokenExpiryBuffer is subtracted from the upstream-declared expiry so a
// token is never used right at its deadline.
const tokenExpiryBuffer = 30 * time.Second

const tokenCacheKey = "AccessToken"

// TokenProvider acquires access tokens via the client-credentials grant and
// caches them until shortly before the upstream-declared expiry. Concurrent
// callers share one in-flight token request.
type TokenProvider struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	store        *cache.Store
	limiter      *ratelimit.EndpointLimiter
	logger       logger.Client
}

func NewTokenProvider(httpClient *http.Client, baseURL, clientID, clientSecret string,
	store *cache.Store, limiter *ratelimit.EndpointLimiter, logger logger.Client) *TokenProvider {
	return &TokenProvider{
		httpClient:   httpClient,
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		store:        store,
		limiter:      limiter,
		logger:       logger,
	}
}

// AccessToken returns a valid access token, fetching a new one only when the
// cached token is absent or expired.
func (p *TokenProvider) AccessToken(ctx context.Context) (string, error) {
	ttl := func(v any) time.Duration {
		return v.(tokenEntry).ttl
	}

	v, err := p.store.GetOrCompute(ctx, tokenCacheKey, ttl, func(ctx context.Context) (any, error) {
		return p.fetchToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(tokenEntry).token, nil
}

type tokenEntry struct {
	token string
	ttl   time.Duration
}

func (p *TokenProvider) fetchToken(ctx context.Context) (tokenEntry, error) {
	if err := p.limiter.Wait(ctx, "auth"); err != nil {
		return tokenEntry{}, err
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+authPath,
		strings.NewReader(form.Encode()))
	if err != nil {
		return tokenEntry{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return tokenEntry{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return tokenEntry{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		p.logger.Error("token request rejected",
			logger.Field{Key: "status", Value: resp.StatusCode},
		)
		return tokenEntry{}, fmt.Errorf("%w: status %d", ErrAuthenticationFailed, resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return tokenEntry{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	if !strings.EqualFold(tok.State, "approved") {
		return tokenEntry{}, fmt.Errorf("%w: state %q", ErrAuthenticationFailed, tok.State)
	}

	ttl := time.Duration(tok.ExpiresIn)*time.Second - tokenExpiryBuffer
	if ttl <= 0 {
		ttl = time.Second
	}

	return tokenEntry{token: tok.AccessToken, ttl: ttl}, nil
}
