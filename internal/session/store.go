package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ssit-training/pos-terminal/pkg/logger"
)

// Persisted field names. The write path, the read path and the expiry-clear
// path all go through these constants so the key set cannot drift apart.
const (
	keyAccessToken    = "accessToken"
	keyRefreshToken   = "refreshToken"
	keyLoginTimestamp = "loginTimestamp"
)

// DefaultTTL is the coarse session lifetime used when none is configured.
const DefaultTTL = 24 * time.Hour

// CredentialPair is the access/refresh token pair plus the moment it was
// issued. Both tokens travel together: they are stored and cleared as a unit.
type CredentialPair struct {
	AccessToken  string
	RefreshToken string
	IssuedAt     time.Time
}

// Store owns the persisted session state.
type Store struct {
	vault Vault
	ttl   time.Duration
	log   *logger.Logger
}

func NewStore(vault Vault, ttl time.Duration, log *logger.Logger) (*Store, error) {
	if vault == nil {
		return nil, fmt.Errorf("session vault is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{vault: vault, ttl: ttl, log: log}, nil
}

// SetCredentials persists the pair and the login timestamp. Token contents are
// opaque; no format checks happen here.
func (s *Store) SetCredentials(ctx context.Context, pair CredentialPair) error {
	issued := pair.IssuedAt
	if issued.IsZero() {
		issued = time.Now()
	}
	return s.vault.SetMany(ctx, map[string]string{
		keyAccessToken:    pair.AccessToken,
		keyRefreshToken:   pair.RefreshToken,
		keyLoginTimestamp: strconv.FormatInt(issued.UnixMilli(), 10),
	})
}

// AccessToken returns the stored access token, if any.
func (s *Store) AccessToken(ctx context.Context) (string, bool) {
	return s.read(ctx, keyAccessToken)
}

// RefreshToken returns the stored refresh token, if any.
func (s *Store) RefreshToken(ctx context.Context) (string, bool) {
	return s.read(ctx, keyRefreshToken)
}

// IsAuthenticated reports whether a refresh token is present. Presence of the
// refresh credential, not the access one, is what keeps a session alive.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.read(ctx, keyRefreshToken)
	return ok
}

// CheckExpiry clears the session and reports true when the stored login
// timestamp is older than the configured TTL. It is a best-effort gate run
// once per command cycle, not a security boundary; an unreadable timestamp
// leaves the session alone.
func (s *Store) CheckExpiry(ctx context.Context, now time.Time) bool {
	stamp, ok := s.read(ctx, keyLoginTimestamp)
	if !ok {
		return false
	}
	millis, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		s.log.Warn(s.log.WithField(ctx, "value", stamp), "unreadable login timestamp, keeping session")
		return false
	}
	if now.Sub(time.UnixMilli(millis)) <= s.ttl {
		return false
	}
	if err := s.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear expired session", err)
	}
	s.log.Info(ctx, "session expired, logged out")
	return true
}

// Clear removes every persisted session field.
func (s *Store) Clear(ctx context.Context) error {
	return s.vault.Delete(ctx, keyAccessToken, keyRefreshToken, keyLoginTimestamp)
}

func (s *Store) read(ctx context.Context, key string) (string, bool) {
	val, ok, err := s.vault.Get(ctx, key)
	if err != nil {
		s.log.Error(s.log.WithField(ctx, "key", key), "session read failed", err)
		return "", false
	}
	if !ok || val == "" {
		return "", false
	}
	return val, true
}

// TokenClaims is the subset of access-token claims the terminal displays.
type TokenClaims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// Claims decodes the stored access token without verifying its signature.
// The terminal has no signing key; the server remains the authority.
func (s *Store) Claims(ctx context.Context) (*TokenClaims, bool) {
	token, ok := s.AccessToken(ctx)
	if !ok {
		return nil, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		s.log.Debug(s.log.WithField(ctx, "error", err.Error()), "access token is not a parseable JWT")
		return nil, false
	}

	out := &TokenClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, true
}
