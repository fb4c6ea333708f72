package auth

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ssit-training/pos-terminal/internal/api"
	"github.com/ssit-training/pos-terminal/internal/session"
	pkgerrors "github.com/ssit-training/pos-terminal/pkg/errors"
	"github.com/ssit-training/pos-terminal/pkg/logger"
)

// invalidCredentialsMessage is the only detail a failed login surfaces,
// whatever the underlying cause.
const invalidCredentialsMessage = "invalid credentials"

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

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenExchanger interface {
	Login(ctx context.Context, email, password string) (api.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (api.TokenPair, error)
	Logout(ctx context.Context) error
}

type sessionStore interface {
	SetCredentials(ctx context.Context, pair session.CredentialPair) error
	AccessToken(ctx context.Context) (string, bool)
	RefreshToken(ctx context.Context) (string, bool)
	Clear(ctx context.Context) error
}

// Service owns the credential lifecycle: login, silent refresh, logout. It
// doubles as the api.CredentialSource so protected requests resolve their
// bearer token through the refresh protocol instead of a shared header.
type Service struct {
	api     tokenExchanger
	session sessionStore
	log     *logger.Logger
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	API     tokenExchanger
	Session sessionStore
	Logger  *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.API == nil {
		return nil, fmt.Errorf("api client is required")
	}
	if params.Session == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{api: params.API, session: params.Session, log: params.Logger}, nil
}

// Login exchanges the form fields for a credential pair and persists it with
// the current timestamp. Every failure surfaces the same fixed message.
func (s *Service) Login(ctx context.Context, req LoginRequest) error {
	if err := validate.Struct(req); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, invalidCredentialsMessage)
	}

	pair, err := s.api.Login(ctx, req.Email, req.Password)
	if err != nil {
		s.log.Error(ctx, "login failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, invalidCredentialsMessage)
	}

	err = s.session.SetCredentials(ctx, session.CredentialPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		IssuedAt:     time.Now(),
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting credentials")
	}
	return nil
}

// Refresh exchanges the stored refresh token for a rotated pair. An absent
// token still goes to the server as an empty credential; rejecting it is the
// server's call. On failure the previous credentials stay untouched and no
// logout is forced.
func (s *Service) Refresh(ctx context.Context) error {
	current, _ := s.session.RefreshToken(ctx)

	pair, err := s.api.Refresh(ctx, current)
	if err != nil {
		s.log.Warn(s.log.WithField(ctx, "error", err.Error()), "token refresh failed, keeping current credentials")
		return err
	}

	err = s.session.SetCredentials(ctx, session.CredentialPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		IssuedAt:     time.Now(),
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting rotated credentials")
	}
	return nil
}

// BearerToken implements api.CredentialSource: refresh first, then hand out
// whatever access token the store holds. A failed refresh falls back to the
// previous token.
func (s *Service) BearerToken(ctx context.Context) (string, bool) {
	_ = s.Refresh(ctx)
	return s.session.AccessToken(ctx)
}

// Logout tells the server to drop the session, then clears local state no
// matter what the server said.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn(s.log.WithField(ctx, "error", err.Error()), "server logout failed, clearing local session anyway")
	}
	if err := s.session.Clear(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing session")
	}
	return nil
}
