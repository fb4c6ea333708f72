package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/ssit-training/pos-terminal/pkg/config"
	pkgerrors "github.com/ssit-training/pos-terminal/pkg/errors"
	"github.com/ssit-training/pos-terminal/pkg/logger"
	"github.com/stretchr/testify/require"
)

type staticCreds struct {
	token string
}

func (s staticCreds) BearerToken(context.Context) (string, bool) {
	return s.token, s.token != ""
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
	client, err := NewClient(config.APIConfig{BaseURL: srv.URL}, log)
	require.NoError(t, err)
	return client, srv
}

func writeEnvelope(w http.ResponseWriter, data any) {
	payload := map[string]any{"success": true, "message": "ok", "data": data}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func TestLoginDecodesTokenPair(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		require.Equal(t, "cashier@example.com", body["email"])
		require.Equal(t, "secret", body["password"])
		writeEnvelope(w, map[string]string{"accessToken": "acc", "refreshToken": "ref"})
	})
	client, _ := newTestClient(t, r)

	pair, err := client.Login(context.Background(), "cashier@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "acc", pair.AccessToken)
	require.Equal(t, "ref", pair.RefreshToken)
}

func TestLoginRejectionMapsToUnauthorized(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "bad credentials"})
	})
	client, _ := newTestClient(t, r)

	_, err := client.Login(context.Background(), "x", "y")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))
}

func TestProtectedCallInjectsBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	r := chi.NewRouter()
	r.Get("/api/products", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		gotRequestID = req.Header.Get("X-Request-ID")
		writeEnvelope(w, map[string]any{"products": []Product{}})
	})
	client, _ := newTestClient(t, r)
	client.UseCredentials(staticCreds{token: "fresh-token"})

	_, err := client.ListProducts(context.Background(), "", "")
	require.NoError(t, err)
	require.Equal(t, "Bearer fresh-token", gotAuth)
	require.NotEmpty(t, gotRequestID)
}

func TestProtectedCallWithoutTokenOmitsHeader(t *testing.T) {
	var sawAuthHeader bool
	r := chi.NewRouter()
	r.Get("/api/products", func(w http.ResponseWriter, req *http.Request) {
		_, sawAuthHeader = req.Header["Authorization"]
		writeEnvelope(w, map[string]any{"products": []Product{}})
	})
	client, _ := newTestClient(t, r)
	client.UseCredentials(staticCreds{})

	_, err := client.ListProducts(context.Background(), "", "")
	require.NoError(t, err)
	require.False(t, sawAuthHeader, "empty credentials should not produce an Authorization header")
}

func TestListProductsDecodesCatalog(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/products", func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "coffee", req.URL.Query().Get("search"))
		require.Equal(t, "", req.URL.Query().Get("categoryID"))
		writeEnvelope(w, map[string]any{"products": []map[string]any{
			{"id": "p1", "name": "Coffee", "price": 10000, "isActive": true},
			{"id": "p2", "name": "Iced Coffee", "price": 15000, "isActive": true},
		}})
	})
	client, _ := newTestClient(t, r)
	client.UseCredentials(staticCreds{token: "t"})

	products, err := client.ListProducts(context.Background(), "coffee", "")
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "p1", products[0].ID)
	require.True(t, products[0].Price.Equal(decimal.NewFromInt(10000)))
}

func TestListOrdersOmitsEmptyFilters(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/orders", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		require.Equal(t, "2", q.Get("page"))
		require.Equal(t, "20", q.Get("limit"))
		require.Equal(t, "tea", q.Get("search"))
		require.Equal(t, "COMPLETED", q.Get("status"))
		require.False(t, q.Has("paymentMethod"))
		require.False(t, q.Has("startDate"))
		require.False(t, q.Has("endDate"))
		writeEnvelope(w, map[string]any{
			"orders": []map[string]any{{"id": "o1", "total": 16500, "status": "COMPLETED"}},
			"meta":   map[string]any{"page": 2, "limit": 20, "total": 41},
		})
	})
	client, _ := newTestClient(t, r)
	client.UseCredentials(staticCreds{token: "t"})

	orders, meta, err := client.ListOrders(context.Background(), OrdersQuery{
		Page:   2,
		Limit:  20,
		Search: " tea ",
		Status: "COMPLETED",
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, meta)
	require.Equal(t, 41, meta.Total)
	require.Nil(t, meta.TotalPages)
}

func TestCreateOrderSendsNumericMoney(t *testing.T) {
	var raw map[string]any
	r := chi.NewRouter()
	r.Post("/api/orders", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&raw))
		writeEnvelope(w, map[string]any{"order": map[string]any{"id": "o1"}})
	})
	client, _ := newTestClient(t, r)
	client.UseCredentials(staticCreds{token: "t"})

	err := client.CreateOrder(context.Background(), OrderRequest{
		Items: []OrderItem{
			{ProductID: "p1", Price: decimal.NewFromInt(10000), Quantity: 2},
		},
		CustomerName:  "Khach Le",
		CustomerPhone: "0344279128",
		PaymentMethod: "CASH",
	})
	require.NoError(t, err)

	items := raw["items"].([]any)
	first := items[0].(map[string]any)
	// Money must arrive as a JSON number, not a quoted string.
	require.IsType(t, float64(0), first["price"])
	require.Equal(t, float64(10000), first["price"])
	require.Equal(t, "Khach Le", raw["customerName"])
}

func TestDashboardEndpoints(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/dashboard/stats", func(w http.ResponseWriter, req *http.Request) {
		writeEnvelope(w, map[string]any{"stats": map[string]any{
			"sales":     map[string]any{"today": 120000, "growth": 3.5},
			"orders":    map[string]any{"today": 4, "pending": 1},
			"products":  map[string]any{"total": 52},
			"customers": map[string]any{"total": 200, "new": 3},
		}})
	})
	r.Get("/api/dashboard/top-products", func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "5", req.URL.Query().Get("limit"))
		writeEnvelope(w, map[string]any{"products": []map[string]any{
			{"productId": "p1", "productName": "Coffee", "totalSold": 40, "revenue": 400000},
		}})
	})
	r.Get("/api/dashboard/recent-activity", func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "10", req.URL.Query().Get("limit"))
		writeEnvelope(w, map[string]any{"activities": []map[string]any{
			{"type": "order", "description": "order placed", "amount": 16500, "user": "cashier"},
		}})
	})
	client, _ := newTestClient(t, r)
	client.UseCredentials(staticCreds{token: "t"})

	ctx := context.Background()

	stats, err := client.DashboardStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, stats.Orders.Today)
	require.True(t, stats.Sales.Today.Equal(decimal.NewFromInt(120000)))

	top, err := client.TopProducts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	require.Equal(t, "Coffee", top[0].ProductName)

	acts, err := client.RecentActivity(ctx, 10)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	require.Equal(t, "order", acts[0].Type)
}

func TestTransportFailureMapsToTransportCode(t *testing.T) {
	client, srv := newTestClient(t, chi.NewRouter())
	srv.Close()

	_, err := client.ListProducts(context.Background(), "", "")
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeTransport, pkgerrors.CodeOf(err))
}

func TestServerErrorMapsToDependencyCode(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/products", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "boom"})
	})
	client, _ := newTestClient(t, r)
	client.UseCredentials(staticCreds{token: "t"})

	_, err := client.ListProducts(context.Background(), "", "")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeDependency, typed.Code())
	require.Equal(t, "boom", typed.Message())
}
