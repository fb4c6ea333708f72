package checkout

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/ssit-training/pos-terminal/internal/api"
	"github.com/ssit-training/pos-terminal/internal/receipt"
	"github.com/ssit-training/pos-terminal/pkg/config"
	pkgerrors "github.com/ssit-training/pos-terminal/pkg/errors"
	"github.com/ssit-training/pos-terminal/pkg/logger"
)

type stubPlacer struct {
	err   error
	calls int
	last  api.OrderRequest
}

func (s *stubPlacer) CreateOrder(_ context.Context, req api.OrderRequest) error {
	s.calls++
	s.last = req
	return s.err
}

func testReceiptConfig() config.ReceiptConfig {
	return config.ReceiptConfig{
		DefaultCustomerName:  "Khach Le",
		DefaultCustomerPhone: "0344279128",
		DefaultPaymentMethod: "CASH",
	}
}

func buildService(t *testing.T, placer *stubPlacer) *Service {
	t.Helper()
	log := logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
	svc, err := NewService(placer, testReceiptConfig(), log)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSubmitProjectsReceiptIntoPayload(t *testing.T) {
	placer := &stubPlacer{}
	svc := buildService(t, placer)

	r := receipt.New()
	r.AddOrIncrement("p1", "Coffee", decimal.NewFromInt(10000))
	r.AddOrIncrement("p1", "Coffee", decimal.NewFromInt(10000))
	r.AddOrIncrement("p2", "Tea", decimal.NewFromInt(5000))

	err := svc.Submit(context.Background(), r, CustomerInfo{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if placer.calls != 1 {
		t.Fatalf("expected exactly one order call, got %d", placer.calls)
	}
	if len(placer.last.Items) != 2 {
		t.Fatalf("expected 2 payload lines, got %d", len(placer.last.Items))
	}
	if placer.last.Items[0].ProductID != "p1" || placer.last.Items[0].Quantity != 2 {
		t.Fatalf("unexpected first line %+v", placer.last.Items[0])
	}
	if !placer.last.Items[0].Price.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("unexpected first line price %s", placer.last.Items[0].Price)
	}
}

func TestSubmitAppliesWalkInDefaults(t *testing.T) {
	placer := &stubPlacer{}
	svc := buildService(t, placer)

	r := receipt.New()
	r.AddOrIncrement("p1", "Coffee", decimal.NewFromInt(10000))

	if err := svc.Submit(context.Background(), r, CustomerInfo{}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if placer.last.CustomerName != "Khach Le" {
		t.Fatalf("expected default customer name, got %q", placer.last.CustomerName)
	}
	if placer.last.CustomerPhone != "0344279128" {
		t.Fatalf("expected default customer phone, got %q", placer.last.CustomerPhone)
	}
	if placer.last.PaymentMethod != "CASH" {
		t.Fatalf("expected default payment method, got %q", placer.last.PaymentMethod)
	}
	if !placer.last.DiscountAmount.Equal(decimal.Zero) {
		t.Fatalf("expected zero discount, got %s", placer.last.DiscountAmount)
	}
	if placer.last.Notes != "" {
		t.Fatalf("expected empty notes, got %q", placer.last.Notes)
	}
}

func TestSubmitKeepsProvidedCustomerInfo(t *testing.T) {
	placer := &stubPlacer{}
	svc := buildService(t, placer)

	r := receipt.New()
	r.AddOrIncrement("p1", "Coffee", decimal.NewFromInt(10000))

	err := svc.Submit(context.Background(), r, CustomerInfo{
		Name:          "Tran B",
		Phone:         "0900000000",
		PaymentMethod: "CARD",
		Notes:         "no ice",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if placer.last.CustomerName != "Tran B" || placer.last.PaymentMethod != "CARD" {
		t.Fatalf("provided info must win over defaults, got %+v", placer.last)
	}
}

func TestSubmitRejectsUnknownPaymentMethod(t *testing.T) {
	placer := &stubPlacer{}
	svc := buildService(t, placer)

	r := receipt.New()
	r.AddOrIncrement("p1", "Coffee", decimal.NewFromInt(10000))

	err := svc.Submit(context.Background(), r, CustomerInfo{PaymentMethod: "BARTER"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	if placer.calls != 0 {
		t.Fatalf("invalid info must not reach the network")
	}
}

func TestSubmitPropagatesServerFailure(t *testing.T) {
	placer := &stubPlacer{err: errors.New("502")}
	svc := buildService(t, placer)

	r := receipt.New()
	r.AddOrIncrement("p1", "Coffee", decimal.NewFromInt(10000))

	if err := svc.Submit(context.Background(), r, CustomerInfo{}); err == nil {
		t.Fatalf("expected submit error")
	}
	// The receipt itself is untouched here; clearing is the caller's contract.
	if r.IsEmpty() {
		t.Fatalf("submit must not clear the receipt itself")
	}
}
