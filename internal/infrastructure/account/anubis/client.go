package anubis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/hr-profile/internal/domain/user"
	"github.com/riskibarqy/hr-profile/internal/platform/cache"
	"github.com/riskibarqy/hr-profile/internal/platform/logging"
	"github.com/riskibarqy/hr-profile/internal/platform/resilience"
	"github.com/riskibarqy/hr-profile/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultCacheTTL   = 30 * time.Second
	maxCachedTokens   = 50_000
	maxIntrospectBody = 1 << 20
	adminKeyHeader    = "x-admin-key"
)

var errAnubisTransient = errors.New("anubis transient failure")

// Options configures a Client. CacheTTL bounds how long a verified token is
// trusted without asking anubis again, and never past the token's own exp.
// Zero uses the default and a negative value disables caching.
type Options struct {
	BaseURL        string
	IntrospectPath string
	AdminKey       string
	CacheTTL       time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client verifies bearer tokens through the anubis introspection endpoint.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	breaker       *resilience.CircuitBreaker
	principals    *cache.TTL[user.Principal]
	logger        *logging.Logger
}

func NewClient(httpClient *http.Client, opts Options, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	var principals *cache.TTL[user.Principal]
	switch {
	case opts.CacheTTL == 0:
		principals = cache.NewTTL[user.Principal](defaultCacheTTL, maxCachedTokens)
	case opts.CacheTTL > 0:
		principals = cache.NewTTL[user.Principal](opts.CacheTTL, maxCachedTokens)
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(opts.BaseURL, opts.IntrospectPath),
		adminKey:      strings.TrimSpace(opts.AdminKey),
		breaker:       resilience.NewCircuitBreaker(opts.CircuitBreaker),
		principals:    principals,
		logger:        logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}
	if c.principals == nil {
		principal, _, err := c.introspect(ctx, token)
		return principal, err
	}

	return c.principals.GetOrLoadUntil(ctx, hashToken(token), func(ctx context.Context) (user.Principal, time.Time, error) {
		return c.introspect(ctx, token)
	})
}

// introspect resolves token to its principal and the token's expiry, which
// is zero when anubis reports none.
func (c *Client) introspect(ctx context.Context, token string) (user.Principal, time.Time, error) {
	var (
		principal user.Principal
		expiresAt time.Time
	)
	err := c.breaker.Execute(func() error {
		var err error
		principal, expiresAt, err = c.doIntrospect(ctx, token)
		return err
	}, isCircuitFailure)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "anubis circuit open, rejecting token verification")
		return user.Principal{}, time.Time{}, fmt.Errorf("%w: anubis introspection: %v", usecase.ErrDependencyUnavailable, err)
	}
	return principal, expiresAt, err
}

func (c *Client) doIntrospect(ctx context.Context, token string) (user.Principal, time.Time, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(introspectRequest{Token: token}); err != nil {
		return user.Principal{}, time.Time{}, fmt.Errorf("encode introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, strings.NewReader(buf.String()))
	if err != nil {
		return user.Principal{}, time.Time{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set(adminKeyHeader, c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, time.Time{}, fmt.Errorf("%w: %w: request introspection: %v", usecase.ErrDependencyUnavailable, errAnubisTransient, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIntrospectBody))
	if err != nil {
		return user.Principal{}, time.Time{}, fmt.Errorf("%w: %w: read introspect response: %v", usecase.ErrDependencyUnavailable, errAnubisTransient, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return user.Principal{}, time.Time{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		// anubis rejected our admin key, not the caller's token.
		c.logger.ErrorContext(ctx, "anubis rejected admin key", "status_code", resp.StatusCode)
		return user.Principal{}, time.Time{}, fmt.Errorf("%w: introspection forbidden", usecase.ErrDependencyUnavailable)
	case resp.StatusCode >= http.StatusInternalServerError:
		c.logger.WarnContext(ctx, "anubis introspection failed", "status_code", resp.StatusCode)
		return user.Principal{}, time.Time{}, fmt.Errorf("%w: %w: status %d", usecase.ErrDependencyUnavailable, errAnubisTransient, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		c.logger.WarnContext(ctx, "anubis introspection non-200", "status_code", resp.StatusCode)
		return user.Principal{}, time.Time{}, fmt.Errorf("%w: introspection returned status %d", usecase.ErrDependencyUnavailable, resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, time.Time{}, fmt.Errorf("%w: decode introspect response: %v", usecase.ErrDependencyUnavailable, err)
	}

	if !decoded.Active {
		return user.Principal{}, time.Time{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	var expiresAt time.Time
	if decoded.ExpiresAt > 0 {
		expiresAt = time.Unix(decoded.ExpiresAt, 0)
		if !expiresAt.After(time.Now()) {
			return user.Principal{}, time.Time{}, fmt.Errorf("%w: expired token", usecase.ErrUnauthorized)
		}
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, time.Time{}, fmt.Errorf("%w: introspect response has no user_id", usecase.ErrDependencyUnavailable)
	}

	return user.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
	}, expiresAt, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active    bool   `json:"active"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"exp"`
}
