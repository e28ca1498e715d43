package auth

import (
	"context"
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type identityKey struct{}

// WithIdentity returns a context carrying the authenticated user id. The
// context belongs to a single request; the identity never outlives it.
func WithIdentity(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext reads the authenticated user id attached by the
// middleware. Handlers behind the protected group that find no identity must
// reject the request, never fall back to a default.
func IdentityFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(identityKey{}).(int)
	return id, ok
}

// Middleware gates a route group on a valid bearer token. Requests without
// an Authorization header are rejected with "missing token"; requests whose
// token fails signature verification or claim decoding are rejected with
// "invalid token" and no further detail. The wrapped handler only ever runs
// after the identity has been attached to the request context.
func Middleware(tokens *TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := tokens.Parse(token)
			if err != nil {
				return nil, err
			}
			req := c.Request()
			c.SetRequest(req.WithContext(WithIdentity(req.Context(), claims.UserID)))
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, ErrInvalidToken) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing token"})
		},
	})
}
