package integration

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Ramon1710/appschmiede-v2-sub000/internal/config"
)

const sessionSecret = "integration-session-secret"

// tokenIssuer signs HS256 editor session tokens matching the server's
// auth configuration.
type tokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
}

func newTokenIssuer(cfg config.AuthConfig) *tokenIssuer {
	return &tokenIssuer{
		secret:   []byte(sessionSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

// GenerateToken creates a valid, signed session token for a subject.
func (ti *tokenIssuer) GenerateToken(subject string) string {
	return ti.sign(subject, time.Now().Add(time.Hour))
}

// GenerateExpiredToken creates a session token that expired in the past.
func (ti *tokenIssuer) GenerateExpiredToken(subject string) string {
	return ti.sign(subject, time.Now().Add(-time.Hour))
}

func (ti *tokenIssuer) sign(subject string, expiry time.Time) string {
	claims := jwt.MapClaims{
		"iss": ti.issuer,
		"aud": ti.audience,
		"sub": subject,
		"iat": jwt.NewNumericDate(time.Now()),
		"exp": jwt.NewNumericDate(expiry),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		panic("sign session token: " + err.Error())
	}
	return signed
}
