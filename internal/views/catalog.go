package views

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ssit-training/pos-terminal/internal/api"
	"github.com/ssit-training/pos-terminal/pkg/logger"
)

// ErrStaleResponse marks a fetch whose response arrived after a newer request
// was issued. The result is discarded; the newest request wins.
var ErrStaleResponse = errors.New("stale response discarded")

type productLister interface {
	ListProducts(ctx context.Context, search, categoryID string) ([]api.Product, error)
}

// ProductBrowser is the catalog view: a parameterized, read-only fetch over
// the products listing. Every search change triggers a fresh fetch; a
// monotonic sequence number keeps a slow early response from overwriting a
// newer one.
type ProductBrowser struct {
	api productLister
	log *logger.Logger

	seq atomic.Uint64

	mu       sync.Mutex
	query    string
	products []api.Product
}

func NewProductBrowser(lister productLister, log *logger.Logger) (*ProductBrowser, error) {
	if lister == nil {
		return nil, fmt.Errorf("product lister is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &ProductBrowser{api: lister, log: log}, nil
}

// Search fetches the catalog for the given free-text query. Responses that
// lost the race to a newer Search return ErrStaleResponse and leave the held
// list untouched.
func (b *ProductBrowser) Search(ctx context.Context, query string) ([]api.Product, error) {
	seq := b.seq.Add(1)
	ctx = b.log.WithView(ctx, "sales")

	products, err := b.api.ListProducts(ctx, query, "")

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.seq.Load() {
		b.log.Debug(ctx, "discarding stale product response")
		return nil, ErrStaleResponse
	}
	if err != nil {
		b.log.Error(ctx, "product fetch failed", err)
		return nil, err
	}

	b.query = query
	b.products = products
	return append([]api.Product(nil), products...), nil
}

// Products returns the most recently applied catalog snapshot.
func (b *ProductBrowser) Products() []api.Product {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]api.Product(nil), b.products...)
}

// Query returns the search text the held snapshot corresponds to.
func (b *ProductBrowser) Query() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query
}
