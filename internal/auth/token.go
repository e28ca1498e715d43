package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity embedded in a bearer token: the user's numeric id
// and nothing else.
type Claims struct {
	UserID int `json:"id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed bearer tokens. The signing
// secret is injected at construction and held for the process lifetime;
// validity is purely a function of the signature, there is no server-side
// token state.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service. A zero ttl issues tokens without
// an expiry claim.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token asserting the given user id.
func (s *TokenService) Issue(id int) (string, error) {
	claims := Claims{
		UserID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if s.ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifies a token's signature and decodes the embedded identity.
// Every failure mode — bad signature, undecodable claim, expired token,
// wrong signing method — comes back as ErrInvalidToken; callers never learn
// which part was wrong. Signature comparison inside the HMAC verify is
// constant-time.
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
