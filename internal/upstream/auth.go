package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// RefreshFunc obtains a fresh bearer token from the auth endpoint.
type RefreshFunc func(ctx context.Context) (token string, expiry time.Time, err error)

// TokenSource caches a bearer token and coalesces concurrent refreshes:
// requests that find the token expired share one in-flight refresh call
// instead of each hitting the auth endpoint.
type TokenSource struct {
	refresh RefreshFunc

	mu     sync.Mutex
	token  string
	expiry time.Time
	calls  map[string]*refreshCall
}

type refreshCall struct {
	done   chan struct{}
	token  string
	expiry time.Time
	err    error
}

// NewTokenSource creates a TokenSource around the given refresh function.
func NewTokenSource(refresh RefreshFunc) *TokenSource {
	return &TokenSource{
		refresh: refresh,
		calls:   make(map[string]*refreshCall),
	}
}

// tokenValid must be called with mu held.
func (ts *TokenSource) tokenValid() bool {
	return ts.token != "" && time.Now().Before(ts.expiry)
}

// Token returns the cached token, refreshing it first if missing or
// expired.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	if ts.tokenValid() {
		token := ts.token
		ts.mu.Unlock()
		return token, nil
	}
	ts.mu.Unlock()
	return ts.refreshToken(ctx)
}

// Invalidate drops the cached token. Called after the API rejects it.
func (ts *TokenSource) Invalidate() {
	ts.mu.Lock()
	ts.token = ""
	ts.expiry = time.Time{}
	ts.mu.Unlock()
}

// ClientCredentialsRefresh returns a RefreshFunc that exchanges client
// credentials for a bearer token at the backend's token endpoint.
func ClientCredentialsRefresh(baseURL, clientID, clientSecret string) RefreshFunc {
	return func(ctx context.Context) (string, time.Time, error) {
		payload, _ := json.Marshal(map[string]string{
			"client_id":     clientID,
			"client_secret": clientSecret,
		})
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			baseURL+"/api/auth/token", bytes.NewReader(payload))
		if err != nil {
			return "", time.Time{}, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return "", time.Time{}, fmt.Errorf("token request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", time.Time{}, &APIError{
				StatusCode: resp.StatusCode,
				Message:    statusMessage(resp.StatusCode, ""),
			}
		}

		var body struct {
			Data struct {
				Token     string `json:"token"`
				ExpiresIn int    `json:"expires_in"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", time.Time{}, fmt.Errorf("decode token response: %w", err)
		}
		if body.Data.Token == "" {
			return "", time.Time{}, fmt.Errorf("token response missing token")
		}

		expiresIn := body.Data.ExpiresIn
		if expiresIn <= 0 {
			expiresIn = 900
		}
		// Refresh slightly early so in-flight requests don't race expiry.
		expiry := time.Now().Add(time.Duration(expiresIn)*time.Second - 30*time.Second)
		return body.Data.Token, expiry, nil
	}
}

// refreshToken runs the refresh function, sharing one in-flight call among
// concurrent callers.
func (ts *TokenSource) refreshToken(ctx context.Context) (string, error) {
	const key = "token"

	ts.mu.Lock()
	if call, ok := ts.calls[key]; ok {
		ts.mu.Unlock()
		select {
		case <-call.done:
			return call.token, call.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	call := &refreshCall{done: make(chan struct{})}
	ts.calls[key] = call
	ts.mu.Unlock()

	// Refresh on a dedicated context so one caller's cancellation does not
	// fail the shared result.
	refreshCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	call.token, call.expiry, call.err = ts.refresh(refreshCtx)

	ts.mu.Lock()
	if call.err == nil {
		ts.token = call.token
		ts.expiry = call.expiry
	}
	delete(ts.calls, key)
	ts.mu.Unlock()
	close(call.done)

	if call.err != nil {
		return "", call.err
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	return call.token, nil
}
