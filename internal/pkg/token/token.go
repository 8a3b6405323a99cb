// internal/pkg/token/token.go
package token

import (
	"errors"
	"time"

	xerrors "clubhub-service/internal/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// Config holds signing parameters supplied via process configuration.
type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Issuer mints bearer tokens. Claims carry only the identity id (as the
// subject) plus the usual timestamps. Role and profile data stay out of the
// token so that a role change takes effect on the next verification instead
// of being frozen in at issuance.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewIssuer(cfg Config) *Issuer {
	return &Issuer{secret: cfg.Secret, issuer: cfg.Issuer, ttl: cfg.TTL}
}

// Issue signs a token for the given identity id.
func (i *Issuer) Issue(identityID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    i.issuer,
		Subject:   identityID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		ID:        ulid.Make().String(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// Verifier checks signature and expiry and extracts the identity id. It does
// not touch the credential store; resolving the id back to a live identity
// is the auth service's job.
type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(cfg Config) *Verifier {
	return &Verifier{secret: cfg.Secret, issuer: cfg.Issuer}
}

// Verify parses tokenString and returns the identity id encoded in it.
// Expired tokens yield xerrors.ErrTokenExpired; anything else that fails
// (malformed, bad signature, wrong issuer) yields xerrors.ErrTokenInvalid.
func (v *Verifier) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", xerrors.ErrTokenInvalid
	}

	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", xerrors.ErrTokenExpired
		}
		return "", xerrors.ErrTokenInvalid
	}

	if !tok.Valid || claims.Subject == "" {
		return "", xerrors.ErrTokenInvalid
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return "", xerrors.ErrTokenInvalid
	}

	return claims.Subject, nil
}

// Manager bundles the issuer/verifier pair built from one config.
type Manager struct {
	Issuer   *Issuer
	Verifier *Verifier
}

func NewManager(cfg Config) *Manager {
	return &Manager{
		Issuer:   NewIssuer(cfg),
		Verifier: NewVerifier(cfg),
	}
}
