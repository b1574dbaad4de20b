package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/abatilo/ideas/internal/credentials"
	ideaerrors "github.com/abatilo/ideas/internal/errors"
)

// expirySkew renews tokens slightly before the server would reject them.
const expirySkew = 30 * time.Second

// TokenSource supplies bearer tokens. An empty token means the request is
// sent without authorization.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Token is an access token and, when known, when it expires.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// StaticTokenSource always returns the same token.
type StaticTokenSource string

// Token returns the token without any "Bearer " prefix.
func (s StaticTokenSource) Token(context.Context) (string, error) {
	return stripBearer(string(s)), nil
}

// PasswordTokenSource exchanges a username and password for a token at
// POST /token and caches it until it expires.
type PasswordTokenSource struct {
	tokenURL string
	username string
	password string
	http     *http.Client
	now      func() time.Time

	mu     sync.Mutex
	cached Token
}

// NewPasswordTokenSource creates a PasswordTokenSource for the API at baseURL.
func NewPasswordTokenSource(baseURL, username, password string, httpClient *http.Client) *PasswordTokenSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &PasswordTokenSource{
		tokenURL: strings.TrimRight(baseURL, "/") + "/token",
		username: username,
		password: password,
		http:     httpClient,
		now:      time.Now,
	}
}

// Token returns the cached token, exchanging credentials when it is missing
// or about to expire.
func (p *PasswordTokenSource) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached.Value != "" && !expired(p.cached.ExpiresAt, p.now()) {
		return p.cached.Value, nil
	}

	tok, err := p.Exchange(ctx)
	if err != nil {
		return "", err
	}
	p.cached = tok
	return tok.Value, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Exchange performs the password exchange without touching the cache.
func (p *PasswordTokenSource) Exchange(ctx context.Context) (Token, error) {
	if p.username == "" || p.password == "" {
		return Token{}, ideaerrors.NotConfiguredError{Settings: []string{"username", "password"}}
	}

	form := url.Values{}
	form.Set("username", p.username)
	form.Set("password", p.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return Token{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Token{}, ideaerrors.HTTPStatusError{Method: http.MethodPost, Path: "/token", Code: resp.StatusCode}
	}

	var body tokenResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Token{}, fmt.Errorf("decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return Token{}, errors.New("token response has no access_token")
	}

	return Token{Value: body.AccessToken, ExpiresAt: tokenExpiry(body.AccessToken)}, nil
}

// CachedTokenSource prefers a token saved by `ideas login` and falls back to
// Next once it is missing or expired.
type CachedTokenSource struct {
	Dir  string
	Next TokenSource
	Now  func() time.Time
}

// Token returns the saved token if still valid, otherwise asks Next.
func (c CachedTokenSource) Token(ctx context.Context) (string, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	if creds, err := credentials.Load(c.Dir); err == nil && creds.Valid(now().Add(expirySkew)) {
		return creds.Token, nil
	}
	if c.Next == nil {
		return "", nil
	}
	return c.Next.Token(ctx)
}

// tokenExpiry reads the exp claim of a JWT without verifying it. Opaque
// tokens have no known expiry.
func tokenExpiry(raw string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func expired(expiresAt, now time.Time) bool {
	if expiresAt.IsZero() {
		return false
	}
	return !now.Add(expirySkew).Before(expiresAt)
}

func stripBearer(token string) string {
	token = strings.TrimSpace(token)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
