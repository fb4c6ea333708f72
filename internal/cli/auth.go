package cli

import (
	"context"
	"fmt"

	"github.com/ssit-training/pos-terminal/internal/auth"
	pkgerrors "github.com/ssit-training/pos-terminal/pkg/errors"
)

// userMessage picks the operator-facing text for an error.
func userMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Message()
	}
	return err.Error()
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	email, err := promptLine(a.in, "Email: ", a.out)
	if err != nil {
		return err
	}
	password, err := promptPassword("Password: ", a.out)
	if err != nil {
		a.log.Error(ctx, "password read failed", err)
		return err
	}

	if err := a.auth.Login(ctx, auth.LoginRequest{Email: email, Password: password}); err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		return err
	}
	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

// Logout ends the session. The local session is gone either way, so the
// outcome reads the same even when the server call failed.
func (a *App) Logout(ctx context.Context) error {
	err := a.auth.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return err
}

// WhoAmI prints what the stored access token says about the operator.
func (a *App) WhoAmI(ctx context.Context) error {
	claims, ok := a.session.Claims(ctx)
	if !ok {
		fmt.Fprintln(a.out, "No readable identity in the stored token.")
		return nil
	}
	if claims.Email != "" {
		fmt.Fprintf(a.out, "Email:   %s\n", claims.Email)
	}
	if claims.Subject != "" {
		fmt.Fprintf(a.out, "Subject: %s\n", claims.Subject)
	}
	if !claims.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "Expires: %s\n", formatTime(claims.ExpiresAt))
	}
	return nil
}
