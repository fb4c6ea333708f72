package views

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ssit-training/pos-terminal/internal/api"
	pkgerrors "github.com/ssit-training/pos-terminal/pkg/errors"
	"github.com/ssit-training/pos-terminal/pkg/logger"
	"github.com/ssit-training/pos-terminal/pkg/pagination"
)

// OrdersErrMessage is the generic message shown when the history fetch fails.
const OrdersErrMessage = "Failed to load orders."

type orderLister interface {
	ListOrders(ctx context.Context, q api.OrdersQuery) ([]api.Order, *api.OrdersMeta, error)
}

// OrderBrowser is the order-history view: filters, offset pagination and the
// latest fetched page. Changing any filter snaps back to page one, as the
// upstream UI does. The same sequence guard as the catalog keeps out-of-order
// responses from clobbering newer ones.
type OrderBrowser struct {
	api      orderLister
	log      *logger.Logger
	pageSize int

	seq atomic.Uint64

	mu     sync.Mutex
	query  api.OrdersQuery
	orders []api.Order
	meta   pagination.Meta
}

func NewOrderBrowser(lister orderLister, pageSize int, log *logger.Logger) (*OrderBrowser, error) {
	if lister == nil {
		return nil, fmt.Errorf("order lister is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	pageSize = pagination.NormalizeLimit(pageSize)
	return &OrderBrowser{
		api:      lister,
		log:      log,
		pageSize: pageSize,
		query:    api.OrdersQuery{Page: 1, Limit: pageSize},
		meta:     pagination.ResolveMeta(1, pageSize, 0, nil),
	}, nil
}

// Fetch loads the page the current query describes.
func (b *OrderBrowser) Fetch(ctx context.Context) ([]api.Order, pagination.Meta, error) {
	b.mu.Lock()
	query := b.query
	b.mu.Unlock()

	seq := b.seq.Add(1)
	ctx = b.log.WithView(ctx, "orders")

	orders, meta, err := b.api.ListOrders(ctx, query)

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.seq.Load() {
		b.log.Debug(ctx, "discarding stale orders response")
		return nil, b.meta, ErrStaleResponse
	}
	if err != nil {
		b.log.Error(ctx, "orders fetch failed", err)
		return nil, b.meta, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, OrdersErrMessage)
	}

	b.orders = orders
	if meta != nil {
		b.meta = pagination.ResolveMeta(meta.Page, meta.Limit, meta.Total, meta.TotalPages)
	} else {
		// No meta block: the listing is all there is, a single page.
		b.meta = pagination.Meta{Page: query.Page, Limit: query.Limit, Total: len(orders), TotalPages: 1}
	}
	return append([]api.Order(nil), orders...), b.meta, nil
}

// SetSearch replaces the free-text filter and snaps to page one.
func (b *OrderBrowser) SetSearch(search string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.query.Search = search
	b.query.Page = 1
}

// SetStatus replaces the status filter and snaps to page one. Empty means all.
func (b *OrderBrowser) SetStatus(status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.query.Status = status
	b.query.Page = 1
}

// SetPaymentMethod replaces the payment filter and snaps to page one.
func (b *OrderBrowser) SetPaymentMethod(method string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.query.PaymentMethod = method
	b.query.Page = 1
}

// SetDateRange replaces the from/to filters (YYYY-MM-DD) and snaps to page one.
func (b *OrderBrowser) SetDateRange(start, end string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.query.StartDate = start
	b.query.EndDate = end
	b.query.Page = 1
}

// NextPage advances one page, clamped to the last known page count.
func (b *OrderBrowser) NextPage() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.query.Page < b.meta.TotalPages {
		b.query.Page++
	}
}

// PrevPage steps one page back, clamped at page one.
func (b *OrderBrowser) PrevPage() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.query.Page > 1 {
		b.query.Page--
	}
}

// ResetFilters drops every filter and returns to page one.
func (b *OrderBrowser) ResetFilters() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.query = api.OrdersQuery{Page: 1, Limit: b.pageSize}
}

// Query returns the filters the next Fetch will use.
func (b *OrderBrowser) Query() api.OrdersQuery {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query
}

// Orders returns the most recently applied page.
func (b *OrderBrowser) Orders() []api.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]api.Order(nil), b.orders...)
}

// Meta returns the pagination state of the held page.
func (b *OrderBrowser) Meta() pagination.Meta {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.meta
}
