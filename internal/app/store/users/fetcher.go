package userstore

import (
	"context"
	"fmt"
	"strings"

	platformstore "github.com/dalemusser/arenadash/internal/app/store/platform"
	"github.com/dalemusser/arenadash/internal/domain/models"
	"go.uber.org/zap"
)

// DetailFetcher loads the full record for a single user on demand.
// It holds no detail state of its own; callers tag each request with a
// token and discard results that are no longer current.
type DetailFetcher struct {
	gw  platformstore.Gateway
	log *zap.Logger
}

// NewDetailFetcher returns a DetailFetcher over gw. A nil gateway behaves
// as unavailable.
func NewDetailFetcher(gw platformstore.Gateway, logger *zap.Logger) *DetailFetcher {
	if gw == nil {
		gw = platformstore.UnavailableGateway{}
	}
	return &DetailFetcher{gw: gw, log: logger}
}

// FetchDetail returns the user with the given ID.
//
// It returns models.ErrUserNotFound when the platform answers without a
// record (including for a blank ID, which is never sent upstream), and a
// wrapped error for any transport or decode failure.
func (f *DetailFetcher) FetchDetail(ctx context.Context, id string) (models.UserSummary, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.UserSummary{}, models.ErrUserNotFound
	}

	u, err := f.gw.FetchUserDetail(ctx, id)
	if err != nil {
		return models.UserSummary{}, fmt.Errorf("fetch user %s: %w", id, err)
	}
	if u == nil {
		f.log.Debug("user detail not found", zap.String("user_id", id))
		return models.UserSummary{}, fmt.Errorf("user %s: %w", id, models.ErrUserNotFound)
	}
	return *u, nil
}
