package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ssit-training/pos-terminal/internal/checkout"
	"github.com/ssit-training/pos-terminal/internal/views"
)

const salesHelp = "Commands: search [text], add <n>, qty <n> <count>, rm <n>, receipt, checkout, help, back"

// Sales is the selling screen: browse the catalog, build the receipt, check
// out. The receipt survives leaving and re-entering the screen; only checkout
// clears it.
func (a *App) Sales(ctx context.Context) error {
	fmt.Fprintln(a.out, salesHelp)
	for {
		line, err := promptLine(a.in, "sales> ", a.out)
		if err != nil {
			return nil
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			fmt.Fprintln(a.out, salesHelp)

		case "search":
			a.searchProducts(ctx, strings.Join(parts[1:], " "))

		case "add":
			if len(parts) != 2 {
				fmt.Fprintln(a.out, "Usage: add <n>")
				continue
			}
			a.addProduct(parts[1])

		case "qty":
			if len(parts) != 3 {
				fmt.Fprintln(a.out, "Usage: qty <n> <count>")
				continue
			}
			a.setQuantity(parts[1], parts[2])

		case "rm":
			if len(parts) != 2 {
				fmt.Fprintln(a.out, "Usage: rm <n>")
				continue
			}
			a.removeLine(parts[1])

		case "receipt":
			a.printReceipt()

		case "checkout":
			a.checkoutFlow(ctx)

		case "back":
			return nil

		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}
	}
}

func (a *App) searchProducts(ctx context.Context, query string) {
	products, err := a.catalog.Search(ctx, query)
	if errors.Is(err, views.ErrStaleResponse) {
		return
	}
	if err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return
	}
	if len(products) == 0 {
		fmt.Fprintln(a.out, "No products found.")
		return
	}
	for i, p := range products {
		stock := fmt.Sprintf("%d %s", p.Stock, p.Unit)
		fmt.Fprintf(a.out, "%3d. %-30s %-12s %s\n", i+1, p.Name, stock, formatVND(p.Price))
	}
}

// addProduct adds line n of the last search to the receipt, or bumps its
// quantity when already present.
func (a *App) addProduct(arg string) {
	products := a.catalog.Products()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(products) {
		fmt.Fprintln(a.out, "No such product line. Run 'search' first.")
		return
	}
	p := products[n-1]
	a.receipt.AddOrIncrement(p.ID, p.Name, p.Price)
	fmt.Fprintf(a.out, "Added %s.\n", p.Name)
}

func (a *App) setQuantity(lineArg, countArg string) {
	items := a.receipt.Items()
	n, err := strconv.Atoi(lineArg)
	if err != nil || n < 1 || n > len(items) {
		fmt.Fprintln(a.out, "No such receipt line.")
		return
	}
	count, err := strconv.Atoi(countArg)
	if err != nil || count < 0 {
		fmt.Fprintln(a.out, "Count must be zero or more.")
		return
	}
	a.receipt.SetQuantity(items[n-1].ProductID, count)
	a.printReceipt()
}

func (a *App) removeLine(arg string) {
	items := a.receipt.Items()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(items) {
		fmt.Fprintln(a.out, "No such receipt line.")
		return
	}
	a.receipt.Remove(items[n-1].ProductID)
	a.printReceipt()
}

func (a *App) printReceipt() {
	if a.receipt.IsEmpty() {
		fmt.Fprintln(a.out, "Receipt is empty.")
		return
	}
	fmt.Fprintf(a.out, "--- %s ---\n", a.cfg.Receipt.StoreName)
	for i, item := range a.receipt.Items() {
		fmt.Fprintf(a.out, "%3d. %-30s x%-4d %s\n", i+1, item.Name, item.Quantity, formatVND(item.Amount()))
	}
	fmt.Fprintf(a.out, "Subtotal: %s\n", formatVND(a.receipt.Subtotal()))
	fmt.Fprintf(a.out, "VAT 10%%:  %s\n", formatVND(a.receipt.Tax()))
	fmt.Fprintf(a.out, "Total:    %s\n", formatVND(a.receipt.Total()))
}

// checkoutFlow collects the customer form and submits the receipt. Once the
// submission is attempted the receipt is cleared whatever the outcome; a
// failed order is re-rung, not retried from a kept cart.
func (a *App) checkoutFlow(ctx context.Context) {
	if a.receipt.IsEmpty() {
		fmt.Fprintln(a.out, "Receipt is empty.")
		return
	}
	a.printReceipt()

	info, ok := a.readCustomerInfo()
	if !ok {
		return
	}

	err := a.checkout.Submit(ctx, a.receipt, info)
	a.receipt.Clear()
	if err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return
	}
	fmt.Fprintln(a.out, "Order placed.")
}

// readCustomerInfo prompts for the checkout form. Blank answers keep the
// configured walk-in defaults; a malformed discount aborts before submission.
func (a *App) readCustomerInfo() (checkout.CustomerInfo, bool) {
	var info checkout.CustomerInfo

	name, err := promptLine(a.in, fmt.Sprintf("Customer name [%s]: ", a.cfg.Receipt.DefaultCustomerName), a.out)
	if err != nil {
		return info, false
	}
	phone, err := promptLine(a.in, fmt.Sprintf("Phone [%s]: ", a.cfg.Receipt.DefaultCustomerPhone), a.out)
	if err != nil {
		return info, false
	}
	discountRaw, err := promptLine(a.in, "Discount [0]: ", a.out)
	if err != nil {
		return info, false
	}
	discount := decimal.Zero
	if discountRaw != "" {
		discount, err = decimal.NewFromString(discountRaw)
		if err != nil || discount.IsNegative() {
			fmt.Fprintln(a.out, "Discount must be a non-negative amount.")
			return info, false
		}
	}
	method, err := promptLine(a.in, fmt.Sprintf("Payment method (CASH/CARD/TRANSFER) [%s]: ", a.cfg.Receipt.DefaultPaymentMethod), a.out)
	if err != nil {
		return info, false
	}
	notes, err := promptLine(a.in, "Notes: ", a.out)
	if err != nil {
		return info, false
	}

	return checkout.CustomerInfo{
		Name:           name,
		Phone:          phone,
		DiscountAmount: discount,
		PaymentMethod:  strings.ToUpper(method),
		Notes:          notes,
	}, true
}
