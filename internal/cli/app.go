package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ssit-training/pos-terminal/internal/api"
	"github.com/ssit-training/pos-terminal/internal/auth"
	"github.com/ssit-training/pos-terminal/internal/checkout"
	"github.com/ssit-training/pos-terminal/internal/receipt"
	"github.com/ssit-training/pos-terminal/internal/session"
	"github.com/ssit-training/pos-terminal/internal/views"
	"github.com/ssit-training/pos-terminal/pkg/config"
	"github.com/ssit-training/pos-terminal/pkg/logger"
	"github.com/ssit-training/pos-terminal/pkg/pagination"
)

type authenticator interface {
	Login(ctx context.Context, req auth.LoginRequest) error
	Logout(ctx context.Context) error
}

type sessionReader interface {
	IsAuthenticated(ctx context.Context) bool
	CheckExpiry(ctx context.Context, now time.Time) bool
	Claims(ctx context.Context) (*session.TokenClaims, bool)
}

type catalogView interface {
	Search(ctx context.Context, query string) ([]api.Product, error)
	Products() []api.Product
}

type ordersView interface {
	Fetch(ctx context.Context) ([]api.Order, pagination.Meta, error)
	SetSearch(search string)
	SetStatus(status string)
	SetPaymentMethod(method string)
	SetDateRange(start, end string)
	NextPage()
	PrevPage()
	ResetFilters()
	Query() api.OrdersQuery
}

type dashboardView interface {
	Load(ctx context.Context) (*views.DashboardSnapshot, error)
}

type orderSubmitter interface {
	Submit(ctx context.Context, r *receipt.Receipt, info checkout.CustomerInfo) error
}

// App is the terminal front end. One instance owns the open receipt and the
// reader/writer pair the whole session runs over.
type App struct {
	cfg       *config.Config
	log       *logger.Logger
	session   sessionReader
	auth      authenticator
	checkout  orderSubmitter
	catalog   catalogView
	orders    ordersView
	dashboard dashboardView
	receipt   *receipt.Receipt

	in  *bufio.Reader
	out io.Writer
}

// AppParams bundles the dependencies of NewApp.
type AppParams struct {
	Config    *config.Config
	Logger    *logger.Logger
	Session   sessionReader
	Auth      authenticator
	Checkout  orderSubmitter
	Catalog   catalogView
	Orders    ordersView
	Dashboard dashboardView

	// In and Out default to stdin/stdout when nil.
	In  io.Reader
	Out io.Writer
}

func NewApp(params AppParams) (*App, error) {
	if params.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if params.Session == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if params.Auth == nil {
		return nil, fmt.Errorf("auth service is required")
	}
	if params.Checkout == nil {
		return nil, fmt.Errorf("checkout service is required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog view is required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders view is required")
	}
	if params.Dashboard == nil {
		return nil, fmt.Errorf("dashboard view is required")
	}
	if params.In == nil {
		params.In = os.Stdin
	}
	if params.Out == nil {
		params.Out = os.Stdout
	}
	return &App{
		cfg:       params.Config,
		log:       params.Logger,
		session:   params.Session,
		auth:      params.Auth,
		checkout:  params.Checkout,
		catalog:   params.Catalog,
		orders:    params.Orders,
		dashboard: params.Dashboard,
		receipt:   receipt.New(),
		in:        bufio.NewReader(params.In),
		out:       params.Out,
	}, nil
}

// Run drives the terminal until exit or EOF.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "%s POS terminal (type 'help' for commands)\n", a.cfg.Receipt.StoreName)
	runREPL(ctx, a, a.in, a.out)
}

func (a *App) loggedIn(ctx context.Context) bool {
	return a.session.IsAuthenticated(ctx)
}

func (a *App) expireIfStale(ctx context.Context) bool {
	return a.session.CheckExpiry(ctx, time.Now())
}

// promptStatus is the identity shown in the prompt: the operator's email when
// the access token carries one, otherwise just the login state.
func (a *App) promptStatus(ctx context.Context) string {
	if !a.loggedIn(ctx) {
		return "logged out"
	}
	if claims, ok := a.session.Claims(ctx); ok && claims.Email != "" {
		return claims.Email
	}
	return "logged in"
}
