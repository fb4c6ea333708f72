package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// commandSurface is the command set the root loop dispatches to. The real App
// satisfies it; tests provide a stub.
type commandSurface interface {
	loggedIn(ctx context.Context) bool
	promptStatus(ctx context.Context) string
	expireIfStale(ctx context.Context) bool
	Login(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Sales(ctx context.Context) error
	Orders(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL is the root loop. Each cycle first applies the session TTL, then
// reads one command. Commands behind the login gate are rejected, not hidden,
// so a logged-out operator learns why nothing happens. Handler errors are
// already reported by the handlers; the loop only keeps going.
func runREPL(ctx context.Context, a commandSurface, r *bufio.Reader, w io.Writer) {
	for {
		if a.expireIfStale(ctx) {
			fmt.Fprintln(w, "Session expired. Please log in again.")
		}

		line, err := promptLine(r, fmt.Sprintf("pos (%s)> ", a.promptStatus(ctx)), w)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.loggedIn(ctx) {
				fmt.Fprintln(w, "Available commands: dashboard, sales, orders, whoami, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, exit")
			}

		case "login":
			if a.loggedIn(ctx) {
				fmt.Fprintln(w, "Already logged in.")
				continue
			}
			_ = a.Login(ctx)

		case "dashboard":
			if !requireLogin(ctx, a, w) {
				continue
			}
			_ = a.Dashboard(ctx)

		case "sales":
			if !requireLogin(ctx, a, w) {
				continue
			}
			_ = a.Sales(ctx)

		case "orders":
			if !requireLogin(ctx, a, w) {
				continue
			}
			_ = a.Orders(ctx)

		case "whoami":
			if !requireLogin(ctx, a, w) {
				continue
			}
			_ = a.WhoAmI(ctx)

		case "logout":
			if !requireLogin(ctx, a, w) {
				continue
			}
			_ = a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", parts[0])
		}
	}
}

func requireLogin(ctx context.Context, a commandSurface, w io.Writer) bool {
	if a.loggedIn(ctx) {
		return true
	}
	fmt.Fprintln(w, "Please log in first.")
	return false
}
