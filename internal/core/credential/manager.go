// Package credential hashes passwords and remember tokens for storage and
// verifies them later.
//
// Both secrets use bcrypt: the digest embeds its own salt and cost, so a
// digest written at one cost still verifies after the configured cost changes.
package credential

import (
	"crypto/rand"
	"encoding/base64"
	"io"

	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"

	"github.com/wishlistapp/accounts/internal/core/domain"
)

// TokenBytes is the entropy of a remember token (128 bits).
const TokenBytes = 16

// Manager derives and checks digests at a fixed bcrypt cost.
type Manager struct {
	cost   int
	random io.Reader
}

// Option configures a Manager.
type Option func(*Manager)

// WithRandom replaces the entropy source used for tokens.
func WithRandom(r io.Reader) Option {
	return func(m *Manager) { m.random = r }
}

// NewManager returns a Manager hashing at cost. Costs outside bcrypt's
// accepted range fall back to bcrypt.DefaultCost.
func NewManager(cost int, opts ...Option) *Manager {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	m := &Manager{cost: cost, random: rand.Reader}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Cost returns the bcrypt cost new digests are written with.
func (m *Manager) Cost() int { return m.cost }

// Hash returns a salted digest of secret.
func (m *Manager) Hash(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), m.cost)
	if err != nil {
		return "", oops.Code("CREDENTIAL_HASH_FAILED").
			With("cost", m.cost).
			Wrap(err)
	}
	return string(digest), nil
}

// Verify reports whether secret produced digest. An empty or malformed digest
// never verifies.
func (m *Manager) Verify(secret, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}

// NewToken returns a random URL-safe token for persistent login.
func (m *Manager) NewToken() (string, error) {
	b := make([]byte, TokenBytes)
	if _, err := io.ReadFull(m.random, b); err != nil {
		return "", oops.Code("CREDENTIAL_TOKEN_FAILED").
			With("requested_bytes", TokenBytes).
			Wrap(err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// SetPassword stores the digest of password on u. The raw password is not kept.
func (m *Manager) SetPassword(u *domain.User, password string) error {
	digest, err := m.Hash(password)
	if err != nil {
		return err
	}
	u.PasswordDigest = digest
	return nil
}

// Authenticate checks a login password against u's stored digest.
func (m *Manager) Authenticate(u *domain.User, password string) bool {
	return m.Verify(password, u.PasswordDigest)
}

// Remember issues a new remember token, stores its digest on u and returns the
// raw token. The caller hands the token to the client and persists u.
func (m *Manager) Remember(u *domain.User) (string, error) {
	token, err := m.NewToken()
	if err != nil {
		return "", err
	}
	digest, err := m.Hash(token)
	if err != nil {
		return "", err
	}
	u.RememberDigest = &digest
	return token, nil
}

// Authenticated reports whether token matches u's remember digest.
func (m *Manager) Authenticated(u *domain.User, token string) bool {
	if u.RememberDigest == nil {
		return false
	}
	return m.Verify(token, *u.RememberDigest)
}

// Forget clears u's remember digest.
func (m *Manager) Forget(u *domain.User) {
	u.RememberDigest = nil
}
