// Package jwttoken issues and validates the stateless bearer tokens that
// prove member identity. Validity is fully determined by the HMAC signature
// and the embedded expiry; there is no server-side session store, so two
// tokens issued for the same account are independent until each expires.
package jwttoken

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "member-gateway/pkg/domain-errors"
)

func init() {
	// Claims default to whole-second precision, which floors a sub-second
	// validity window into the past at issuance. Millisecond precision keeps
	// exp strictly after the issue instant for any positive TTL.
	jwt.TimePrecision = time.Millisecond
}

// Claims carries the identity claim set embedded in every access token.
type Claims struct {
	Account string `json:"account"`
	UserID  int64  `json:"user_id"`
	jwt.RegisteredClaims
}

// Service handles token creation and validation against a single secret.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for issuance and expiry checks. Tests
// use this for deterministic expiry behavior.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New constructs a token service. ttl is the fixed validity window measured
// from the issuance instant.
func New(signingKey, issuer string, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate produces a signed token carrying the account and user ID claims.
func (s *Service) Generate(account string, userID int64) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Account: account,
		UserID:  userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not sign token")
	}
	return signed, nil
}

// Validate reports whether the token's signature verifies, its claims parse,
// and it has not expired. This is a boundary-facing predicate: any parse or
// signature failure yields false, never an error.
func (s *Service) Validate(tokenString string) bool {
	_, err := s.parse(tokenString, true)
	return err == nil
}

// IsExpired reports whether the token's expiry instant is at or before now.
// Tokens that fail to parse or verify at all also report expired, so callers
// fail closed.
func (s *Service) IsExpired(tokenString string) bool {
	claims, err := s.parse(tokenString, false)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return !claims.ExpiresAt.Time.After(s.now())
}

// Account extracts the account claim. Callers are expected to have validated
// the token first.
func (s *Service) Account(tokenString string) (string, error) {
	claims, err := s.parse(tokenString, true)
	if err != nil {
		return "", err
	}
	return claims.Account, nil
}

// UserID extracts the user ID claim. Callers are expected to have validated
// the token first.
func (s *Service) UserID(tokenString string) (int64, error) {
	claims, err := s.parse(tokenString, true)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// parse verifies the signature and optionally the registered claims. With
// validateClaims false the signature is still checked but expiry is not,
// which lets IsExpired inspect the expiry of an already-expired token.
func (s *Service) parse(tokenString string, validateClaims bool) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithTimeFunc(s.now)}
	if !validateClaims {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, opts...)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}
