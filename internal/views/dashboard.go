package views

import (
	"context"
	"fmt"

	"github.com/ssit-training/pos-terminal/internal/api"
	pkgerrors "github.com/ssit-training/pos-terminal/pkg/errors"
	"github.com/ssit-training/pos-terminal/pkg/logger"
	"go.uber.org/multierr"
)

// DashboardErrMessage is the generic message shown when any dashboard fetch
// fails.
const DashboardErrMessage = "Cannot load dashboard data."

const (
	topProductsLimit    = 5
	recentActivityLimit = 10
)

type statsFetcher interface {
	DashboardStats(ctx context.Context) (*api.Stats, error)
	TopProducts(ctx context.Context, limit int) ([]api.TopProduct, error)
	RecentActivity(ctx context.Context, limit int) ([]api.Activity, error)
}

// DashboardSnapshot is one load of the three dashboard sections. Sections
// that failed to load are zero-valued.
type DashboardSnapshot struct {
	Stats       *api.Stats
	TopProducts []api.TopProduct
	Activities  []api.Activity
}

// Dashboard is the read-only metrics view.
type Dashboard struct {
	api statsFetcher
	log *logger.Logger
}

func NewDashboard(fetcher statsFetcher, log *logger.Logger) (*Dashboard, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("stats fetcher is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Dashboard{api: fetcher, log: log}, nil
}

// Load fetches stats, top products and recent activity. Failures are
// aggregated; whatever loaded is still returned alongside the combined error
// so the terminal can render partial data.
func (d *Dashboard) Load(ctx context.Context) (*DashboardSnapshot, error) {
	ctx = d.log.WithView(ctx, "dashboard")
	snapshot := &DashboardSnapshot{}
	var combined error

	stats, err := d.api.DashboardStats(ctx)
	if err != nil {
		combined = multierr.Append(combined, err)
	} else {
		snapshot.Stats = stats
	}

	top, err := d.api.TopProducts(ctx, topProductsLimit)
	if err != nil {
		combined = multierr.Append(combined, err)
	} else {
		snapshot.TopProducts = top
	}

	activities, err := d.api.RecentActivity(ctx, recentActivityLimit)
	if err != nil {
		combined = multierr.Append(combined, err)
	} else {
		snapshot.Activities = activities
	}

	if combined != nil {
		d.log.Error(ctx, "dashboard load failed", combined)
		code := pkgerrors.CodeOf(multierr.Errors(combined)[0])
		return snapshot, pkgerrors.Wrap(code, combined, DashboardErrMessage)
	}
	return snapshot, nil
}
