package metricsstore

import (
	"context"
	"fmt"
	"sync/atomic"

	platformstore "github.com/dalemusser/arenadash/internal/app/store/platform"
	"github.com/dalemusser/arenadash/internal/domain/models"
	"go.uber.org/zap"
)

// LoadResult is the outcome of one authorization check plus batched fetch.
// Metrics and Users are only meaningful when Authorized is true.
type LoadResult struct {
	Authorized bool
	Metrics    models.MetricsSnapshot
	Users      []models.UserSummary
}

// Client loads the dashboard totals and the full user list.
type Client struct {
	gw   platformstore.Gateway
	log  *zap.Logger
	busy atomic.Bool
}

// New returns a Client over gw. A nil gateway behaves as unavailable.
func New(gw platformstore.Gateway, logger *zap.Logger) *Client {
	if gw == nil {
		gw = platformstore.UnavailableGateway{}
	}
	return &Client{gw: gw, log: logger}
}

// Busy reports whether a Load is in progress. It covers both the
// authorization check and the batched fetch.
func (c *Client) Busy() bool { return c.busy.Load() }

// Load checks that the session is an admin and, only if it is, fetches the
// summary counts and user list in a single round trip.
//
// A non-admin session yields LoadResult{Authorized: false} and a nil error.
// Errors from either step are wrapped and returned; nothing is retried.
func (c *Client) Load(ctx context.Context) (LoadResult, error) {
	c.busy.Store(true)
	defer c.busy.Store(false)

	ok, err := c.gw.CheckAdmin(ctx)
	if err != nil {
		return LoadResult{}, fmt.Errorf("check admin: %w", err)
	}
	if !ok {
		c.log.Info("dashboard load refused: session is not an admin")
		return LoadResult{Authorized: false}, nil
	}

	nums, err := c.gw.FetchNumbers(ctx)
	if err != nil {
		return LoadResult{}, fmt.Errorf("fetch numbers: %w", err)
	}

	c.log.Debug("dashboard numbers loaded",
		zap.Int("total_users", nums.TotalUsers),
		zap.Int("total_groups", nums.TotalGroups),
		zap.Int("total_contests", nums.TotalContests),
		zap.Int("users_listed", len(nums.UsersArray)))

	return LoadResult{
		Authorized: true,
		Metrics:    nums.MetricsSnapshot,
		Users:      nums.UsersArray,
	}, nil
}
