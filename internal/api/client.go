package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/ssit-training/pos-terminal/pkg/config"
	pkgerrors "github.com/ssit-training/pos-terminal/pkg/errors"
	"github.com/ssit-training/pos-terminal/pkg/logger"
)

// CredentialSource resolves the bearer token for a protected request. The
// implementation runs the refresh protocol before handing the token out, so
// every protected call pays one refresh round trip by design.
type CredentialSource interface {
	BearerToken(ctx context.Context) (string, bool)
}

// Client talks to the remote commerce API. All business logic lives on the
// server; this is a thin, typed surface over the HTTP contract.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
	creds   CredentialSource
}

func NewClient(cfg config.APIConfig, log *logger.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     log,
	}, nil
}

// UseCredentials attaches the bearer source for protected endpoints. It is
// wired after construction because the source itself needs this client to run
// the refresh exchange.
func (c *Client) UseCredentials(src CredentialSource) {
	c.creds = src
}

// envelope is the `{success, message, data}` wrapper every endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (TokenPair, error) {
	body := map[string]string{"email": email, "password": password}
	var data TokenPair
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, false, &data)
	return data, err
}

// Refresh exchanges the refresh token for a rotated pair. An empty token is
// still sent; the server is the one that rejects it.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	body := map[string]string{"refreshToken": refreshToken}
	var data TokenPair
	err := c.do(ctx, http.MethodPost, "/api/auth/refresh", nil, body, false, &data)
	return data, err
}

// Logout tells the server to drop the session. Best effort; the response body
// is ignored.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, map[string]string{}, true, nil)
}

// ListProducts fetches the catalog filtered by free-text search and category.
func (c *Client) ListProducts(ctx context.Context, search, categoryID string) ([]Product, error) {
	query := url.Values{}
	query.Set("search", search)
	query.Set("categoryID", categoryID)

	var data struct {
		Products []Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/products", query, nil, true, &data); err != nil {
		return nil, err
	}
	return data.Products, nil
}

// CreateOrder submits a new order.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) error {
	return c.do(ctx, http.MethodPost, "/api/orders", nil, req, true, nil)
}

// ListOrders fetches one page of order history. Empty filters are omitted
// from the query string.
func (c *Client) ListOrders(ctx context.Context, q OrdersQuery) ([]Order, *OrdersMeta, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("limit", strconv.Itoa(q.Limit))
	if s := strings.TrimSpace(q.Search); s != "" {
		query.Set("search", s)
	}
	if q.Status != "" {
		query.Set("status", q.Status)
	}
	if q.PaymentMethod != "" {
		query.Set("paymentMethod", q.PaymentMethod)
	}
	if q.StartDate != "" {
		query.Set("startDate", q.StartDate)
	}
	if q.EndDate != "" {
		query.Set("endDate", q.EndDate)
	}

	var data struct {
		Orders []Order     `json:"orders"`
		Meta   *OrdersMeta `json:"meta"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders", query, nil, true, &data); err != nil {
		return nil, nil, err
	}
	return data.Orders, data.Meta, nil
}

// DashboardStats fetches the aggregated dashboard counters.
func (c *Client) DashboardStats(ctx context.Context) (*Stats, error) {
	var data struct {
		Stats Stats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, nil, true, &data); err != nil {
		return nil, err
	}
	return &data.Stats, nil
}

// TopProducts fetches the best sellers, capped at limit.
func (c *Client) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var data struct {
		Products []TopProduct `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/top-products", query, nil, true, &data); err != nil {
		return nil, err
	}
	return data.Products, nil
}

// RecentActivity fetches the latest activity feed entries, capped at limit.
func (c *Client) RecentActivity(ctx context.Context, limit int) ([]Activity, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var data struct {
		Activities []Activity `json:"activities"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/recent-activity", query, nil, true, &data); err != nil {
		return nil, err
	}
	return data.Activities, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, authed bool, out any) error {
	requestID := uuid.NewString()
	ctx = c.log.WithRequestID(ctx, requestID)

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.creds != nil {
		if token, ok := c.creds.BearerToken(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error(c.log.WithField(ctx, "path", path), "request failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeTransport, err, fmt.Sprintf("%s %s", method, path))
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := serverMessage(resp.Body)
		if message == "" {
			message = fmt.Sprintf("%s %s returned %d", method, path, resp.StatusCode)
		}
		return pkgerrors.New(pkgerrors.FromStatus(resp.StatusCode), message).
			WithDetails(map[string]any{"status": resp.StatusCode, "path": path})
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding response envelope")
	}
	if len(env.Data) == 0 {
		return pkgerrors.New(pkgerrors.CodeDependency, "response has no data")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding response data")
	}
	return nil
}

// serverMessage pulls the envelope message out of an error response, if the
// body is an envelope at all.
func serverMessage(body io.Reader) string {
	var env envelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		return ""
	}
	return env.Message
}
