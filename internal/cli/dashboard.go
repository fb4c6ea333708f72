package cli

import (
	"context"
	"fmt"
)

// Dashboard loads and prints the metrics view. When some sections fail the
// loaded ones are still rendered above the error message.
func (a *App) Dashboard(ctx context.Context) error {
	snapshot, err := a.dashboard.Load(ctx)
	if snapshot != nil {
		if s := snapshot.Stats; s != nil {
			fmt.Fprintln(a.out, "Sales")
			fmt.Fprintf(a.out, "  today %s | this week %s | this month %s\n",
				formatVND(s.Sales.Today), formatVND(s.Sales.ThisWeek), formatVND(s.Sales.ThisMonth))
			fmt.Fprintln(a.out, "Orders")
			fmt.Fprintf(a.out, "  today %d | pending %d | completed %d | cancelled %d\n",
				s.Orders.Today, s.Orders.Pending, s.Orders.Completed, s.Orders.Cancelled)
			fmt.Fprintln(a.out, "Products")
			fmt.Fprintf(a.out, "  total %d | low stock %d | out of stock %d\n",
				s.Products.Total, s.Products.LowStock, s.Products.OutOfStock)
			fmt.Fprintln(a.out, "Customers")
			fmt.Fprintf(a.out, "  total %d | new %d | returning %d\n",
				s.Customers.Total, s.Customers.New, s.Customers.Returning)
		}
		if len(snapshot.TopProducts) > 0 {
			fmt.Fprintln(a.out, "Top products")
			for i, p := range snapshot.TopProducts {
				fmt.Fprintf(a.out, "  %d. %-30s sold %-5d %s\n", i+1, p.ProductName, p.TotalSold, formatVND(p.Revenue))
			}
		}
		if len(snapshot.Activities) > 0 {
			fmt.Fprintln(a.out, "Recent activity")
			for _, act := range snapshot.Activities {
				fmt.Fprintf(a.out, "  %s  %-8s %s\n", formatTime(act.Timestamp), act.Type, act.Description)
			}
		}
	}
	if err != nil {
		fmt.Fprintln(a.out, userMessage(err))
	}
	return err
}
