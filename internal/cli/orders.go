package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ssit-training/pos-terminal/internal/api"
	"github.com/ssit-training/pos-terminal/internal/views"
)

const ordersHelp = "Commands: search [text], status <STATUS|->, pay <METHOD|->, dates <from> <to>, dates -, next, prev, reset, help, back"

// Orders is the history screen. Every filter or page change refetches; a
// change always lands on page one.
func (a *App) Orders(ctx context.Context) error {
	fmt.Fprintln(a.out, ordersHelp)
	a.fetchOrders(ctx)
	for {
		line, err := promptLine(a.in, "orders> ", a.out)
		if err != nil {
			return nil
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			fmt.Fprintln(a.out, ordersHelp)

		case "search":
			a.orders.SetSearch(strings.Join(parts[1:], " "))
			a.fetchOrders(ctx)

		case "status":
			if len(parts) != 2 {
				fmt.Fprintln(a.out, "Usage: status <STATUS|->. One of:", joinStatuses())
				continue
			}
			status := strings.ToUpper(parts[1])
			if parts[1] == "-" {
				status = ""
			} else if !knownStatus(status) {
				fmt.Fprintln(a.out, "Unknown status. One of:", joinStatuses())
				continue
			}
			a.orders.SetStatus(status)
			a.fetchOrders(ctx)

		case "pay":
			if len(parts) != 2 {
				fmt.Fprintln(a.out, "Usage: pay <METHOD|->. One of:", strings.Join(api.PaymentMethods, ", "))
				continue
			}
			method := strings.ToUpper(parts[1])
			if parts[1] == "-" {
				method = ""
			} else if !knownPaymentMethod(method) {
				fmt.Fprintln(a.out, "Unknown payment method. One of:", strings.Join(api.PaymentMethods, ", "))
				continue
			}
			a.orders.SetPaymentMethod(method)
			a.fetchOrders(ctx)

		case "dates":
			if len(parts) == 2 && parts[1] == "-" {
				a.orders.SetDateRange("", "")
				a.fetchOrders(ctx)
				continue
			}
			if len(parts) != 3 || !validDate(parts[1]) || !validDate(parts[2]) {
				fmt.Fprintln(a.out, "Usage: dates <from> <to> as YYYY-MM-DD, or 'dates -' to clear.")
				continue
			}
			a.orders.SetDateRange(parts[1], parts[2])
			a.fetchOrders(ctx)

		case "next":
			a.orders.NextPage()
			a.fetchOrders(ctx)

		case "prev":
			a.orders.PrevPage()
			a.fetchOrders(ctx)

		case "reset":
			a.orders.ResetFilters()
			a.fetchOrders(ctx)

		case "back":
			return nil

		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}
	}
}

func (a *App) fetchOrders(ctx context.Context) {
	orders, meta, err := a.orders.Fetch(ctx)
	if errors.Is(err, views.ErrStaleResponse) {
		return
	}
	if err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders.")
		return
	}
	for _, o := range orders {
		fmt.Fprintf(a.out, "%-12s %-20s %-12s %-10s %-9s %s\n",
			o.OrderNumber, o.CustomerName, formatVND(o.Total), o.Status, o.PaymentMethod, formatTime(o.CreatedAt))
	}
	fmt.Fprintf(a.out, "Page %d/%d (%d orders)\n", meta.Page, meta.TotalPages, meta.Total)
}

func knownStatus(status string) bool {
	for _, s := range api.OrderStatuses {
		if status == string(s) {
			return true
		}
	}
	return false
}

func knownPaymentMethod(method string) bool {
	for _, m := range api.PaymentMethods {
		if method == m {
			return true
		}
	}
	return false
}

func joinStatuses() string {
	names := make([]string, 0, len(api.OrderStatuses))
	for _, s := range api.OrderStatuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}
