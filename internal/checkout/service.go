package checkout

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/ssit-training/pos-terminal/internal/api"
	"github.com/ssit-training/pos-terminal/internal/receipt"
	"github.com/ssit-training/pos-terminal/pkg/config"
	pkgerrors "github.com/ssit-training/pos-terminal/pkg/errors"
	"github.com/ssit-training/pos-terminal/pkg/logger"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// CustomerInfo is the checkout form. Empty fields fall back to the configured
// walk-in defaults before validation.
type CustomerInfo struct {
	Name           string          `json:"customerName" validate:"required"`
	Phone          string          `json:"customerPhone" validate:"required"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	PaymentMethod  string          `json:"paymentMethod" validate:"required,oneof=CASH CARD TRANSFER"`
	Notes          string          `json:"notes"`
}

type orderPlacer interface {
	CreateOrder(ctx context.Context, req api.OrderRequest) error
}

// Service serializes a receipt into an order request and submits it.
type Service struct {
	api orderPlacer
	cfg config.ReceiptConfig
	log *logger.Logger
}

func NewService(placer orderPlacer, cfg config.ReceiptConfig, log *logger.Logger) (*Service, error) {
	if placer == nil {
		return nil, fmt.Errorf("order placer is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{api: placer, cfg: cfg, log: log}, nil
}

// Submit projects the receipt into an order payload and sends it. The payload
// is transient; the receipt stays the single source of truth. Note the
// caller's contract: the sales view clears the receipt after Submit returns
// whether or not it succeeded, reproducing the upstream clear-on-attempt
// behavior.
func (s *Service) Submit(ctx context.Context, r *receipt.Receipt, info CustomerInfo) error {
	info = s.withDefaults(info)
	if err := validate.Struct(info); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid checkout details")
	}

	lines := r.Items()
	items := make([]api.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, api.OrderItem{
			ProductID: line.ProductID,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}

	req := api.OrderRequest{
		Items:          items,
		CustomerName:   info.Name,
		CustomerPhone:  info.Phone,
		DiscountAmount: info.DiscountAmount,
		PaymentMethod:  info.PaymentMethod,
		Notes:          info.Notes,
	}

	ctx = s.log.WithFields(ctx, map[string]any{
		"lines": len(items),
		"total": r.Total().String(),
	})
	if err := s.api.CreateOrder(ctx, req); err != nil {
		s.log.Error(ctx, "order submission failed", err)
		return err
	}
	s.log.Info(ctx, "order submitted")
	return nil
}

func (s *Service) withDefaults(info CustomerInfo) CustomerInfo {
	if strings.TrimSpace(info.Name) == "" {
		info.Name = s.cfg.DefaultCustomerName
	}
	if strings.TrimSpace(info.Phone) == "" {
		info.Phone = s.cfg.DefaultCustomerPhone
	}
	if info.PaymentMethod == "" {
		info.PaymentMethod = s.cfg.DefaultPaymentMethod
	}
	return info
}
