// internal/app/store/platform/platformstore.go
package platformstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/arenadash/internal/domain/models"
	"go.uber.org/zap"
)

// Platform API paths. All endpoints are POST and session-scoped.
const (
	PathCheckAdmin  = "/api/checkIfAdmin"
	PathNumbers     = "/api/getNumbers"
	PathUserDetails = "/api/getUserDetails"
)

// maxBodyBytes caps how much of a platform response is read.
const maxBodyBytes = 8 << 20

// Gateway is the set of platform calls the dashboard consumes.
type Gateway interface {
	// CheckAdmin reports whether the bound session belongs to an admin.
	CheckAdmin(ctx context.Context) (bool, error)
	// FetchNumbers returns the summary counts and the full user list in one round trip.
	FetchNumbers(ctx context.Context) (NumbersResponse, error)
	// FetchUserDetail returns the user with the given ID, or nil when the
	// platform has no matching record.
	FetchUserDetail(ctx context.Context, id string) (*models.UserSummary, error)
}

// NumbersResponse is the batched metrics payload.
type NumbersResponse struct {
	models.MetricsSnapshot
	UsersArray []models.UserSummary `json:"usersArray" validate:"dive"`
}

type checkAdminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

type userDetailRequest struct {
	ID string `json:"id"`
}

type userDetailResponse struct {
	UserDetail *models.UserSummary `json:"userDetail"`
}

// Config describes how to reach the platform API.
type Config struct {
	BaseURL       string        // e.g. https://arena.example.com
	SessionCookie string        // name of the platform's session cookie forwarded upstream
	Timeout       time.Duration // per-request ceiling on the underlying http.Client
}

// Client talks to the platform API. It is safe for concurrent use; bind a
// caller's credentials with Session before issuing calls.
type Client struct {
	base       *url.URL
	http       *http.Client
	cookieName string
	log        *zap.Logger
}

// New builds a Client from cfg. BaseURL must be an absolute http(s) URL.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse platform base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("platform base url %q must be an absolute http(s) URL", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		base:       u,
		http:       &http.Client{Timeout: timeout},
		cookieName: cfg.SessionCookie,
		log:        logger,
	}, nil
}

// CookieName returns the platform session cookie name forwarded upstream.
func (c *Client) CookieName() string { return c.cookieName }

// BaseURL returns the platform origin, used for profile and leaderboard links.
func (c *Client) BaseURL() string { return c.base.String() }

// Session binds a platform session value. An empty value yields a gateway
// that calls the platform without credentials (the admin check then fails).
func (c *Client) Session(value string) Gateway {
	var cookie *http.Cookie
	if value != "" && c.cookieName != "" {
		cookie = &http.Cookie{Name: c.cookieName, Value: value}
	}
	return &sessionGateway{c: c, cookie: cookie}
}

// Ping checks that the platform origin answers HTTP at all. Any status
// below 500 counts as reachable. A nil Client reports ErrUnavailable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return models.ErrUnavailable
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.base.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrFetchFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: platform status %d", models.ErrFetchFailed, resp.StatusCode)
	}
	return nil
}

type sessionGateway struct {
	c      *Client
	cookie *http.Cookie
}

func (g *sessionGateway) CheckAdmin(ctx context.Context) (bool, error) {
	var out checkAdminResponse
	status, err := g.post(ctx, PathCheckAdmin, nil, &out)
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		// An expired or missing session is "not an admin", not an outage.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return out.IsAdmin, nil
}

func (g *sessionGateway) FetchNumbers(ctx context.Context) (NumbersResponse, error) {
	var out NumbersResponse
	if _, err := g.post(ctx, PathNumbers, nil, &out); err != nil {
		return NumbersResponse{}, err
	}
	if err := validatePayload(out); err != nil {
		return NumbersResponse{}, fmt.Errorf("%s: %w: %w", PathNumbers, models.ErrFetchFailed, err)
	}
	if out.UsersArray == nil {
		out.UsersArray = []models.UserSummary{}
	}
	return out, nil
}

func (g *sessionGateway) FetchUserDetail(ctx context.Context, id string) (*models.UserSummary, error) {
	var out userDetailResponse
	if _, err := g.post(ctx, PathUserDetails, userDetailRequest{ID: id}, &out); err != nil {
		return nil, err
	}
	if out.UserDetail == nil {
		return nil, nil
	}
	if err := validatePayload(out.UserDetail); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", PathUserDetails, models.ErrFetchFailed, err)
	}
	return out.UserDetail, nil
}

// post issues a JSON POST and decodes the response into out. It returns the
// HTTP status (0 when no response was received) alongside any error.
func (g *sessionGateway) post(ctx context.Context, path string, body, out any) (int, error) {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%s: encode request: %w", path, err)
		}
		rdr = bytes.NewReader(buf)
	}

	endpoint := g.c.base.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), rdr)
	if err != nil {
		return 0, fmt.Errorf("%s: build request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.cookie != nil {
		req.AddCookie(g.cookie)
	}

	start := time.Now()
	resp, err := g.c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %w", path, models.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	g.c.log.Debug("platform call",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return resp.StatusCode, fmt.Errorf("%s: %w: status %d", path, models.ErrFetchFailed, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("%s: %w: decode: %w", path, models.ErrFetchFailed, err)
	}
	return resp.StatusCode, nil
}

// UnavailableGateway is used when no platform base URL is configured.
type UnavailableGateway struct{}

func (UnavailableGateway) CheckAdmin(context.Context) (bool, error) {
	return false, models.ErrUnavailable
}

func (UnavailableGateway) FetchNumbers(context.Context) (NumbersResponse, error) {
	return NumbersResponse{}, models.ErrUnavailable
}

func (UnavailableGateway) FetchUserDetail(context.Context, string) (*models.UserSummary, error) {
	return nil, models.ErrUnavailable
}
