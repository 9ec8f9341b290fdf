package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lukmanhakim/user-portal/internal"
)

// Claims is the payload of an issued token: the subject plus the authorities
// the subject held at issuance time. Authorities ride inside the token so the
// request authorizer never has to consult the user store.
type Claims struct {
	Authorities []string `json:"authorities"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HMAC-signed bearer tokens. It is stateless:
// a token's validity is recomputed from the signing secret and the clock on
// every use, never from server-side session state. The secret is immutable
// after construction, so verification needs no synchronization.
type TokenCodec struct {
	secret   []byte
	ttl      time.Duration
	issuer   string
	audience string
}

func NewTokenCodec(secret []byte, ttl time.Duration, issuer, audience string) *TokenCodec {
	return &TokenCodec{
		secret:   secret,
		ttl:      ttl,
		issuer:   issuer,
		audience: audience,
	}
}

// Issue signs a token for subject carrying the given authorities. The
// signature covers subject, authorities, issued-at and expiry.
func (c *TokenCodec) Issue(subject string, authorities []string) (string, error) {
	now := time.Now()

	claims := &Claims{
		Authorities: authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Subject extracts and verifies the subject of a token.
func (c *TokenCodec) Subject(tokenString string) (string, error) {
	claims, err := c.parse(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Authorities extracts the ordered authority set embedded in a token.
func (c *TokenCodec) Authorities(tokenString string) ([]string, error) {
	claims, err := c.parse(tokenString)
	if err != nil {
		return nil, err
	}
	return claims.Authorities, nil
}

// IsValid reports whether tokenString is a well-formed, correctly signed,
// unexpired token issued to subject. Any mismatch collapses to false so the
// caller decides between silent reject and an explicit error.
func (c *TokenCodec) IsValid(subject, tokenString string) bool {
	if subject == "" {
		return false
	}
	claims, err := c.parse(tokenString)
	if err != nil {
		return false
	}
	return claims.Subject == subject
}

func (c *TokenCodec) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal.ErrTokenBadSignature
		}
		return c.secret, nil
	}, jwt.WithIssuer(c.issuer), jwt.WithExpirationRequired())

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, internal.ErrTokenExpired.WithCause(err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, internal.ErrTokenBadSignature.WithCause(err)
		default:
			return nil, internal.ErrTokenMalformed.WithCause(err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrTokenMalformed
	}
	return claims, nil
}
