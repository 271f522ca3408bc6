package http

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	RoleCustomer = "customer"
	RoleDriver   = "driver"
	RoleAdmin    = "admin"

	principalKey = "principal"
	bearerPrefix = "Bearer "
)

var (
	ErrUnauthorized = errors.New("missing or invalid access token")
	ErrRoleDenied   = errors.New("role is not allowed to call this endpoint")
)

// Claims is the access token payload. The subject is the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the caller identified by the access token of the current request.
type Principal struct {
	ID   kernel.UUID
	Role string
}

func (p Principal) Actor() commands.Actor {
	return commands.Actor{ID: p.ID, IsAdmin: p.Role == RoleAdmin}
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Authenticate parses the bearer token and stores the Principal on the echo context.
func Authenticate(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, err := parseBearer(c.Request().Header.Get(echo.HeaderAuthorization), secret)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrUnauthorized, err)
			}
			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// RequireRole lets the request through only for the listed roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !slices.Contains(roles, principalFrom(c).Role) {
				return ErrRoleDenied
			}
			return next(c)
		}
	}
}

// IssueToken signs an access token for the user.
func IssueToken(secret []byte, userID kernel.UUID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return token, nil
}

func parseBearer(header string, secret []byte) (Principal, error) {
	tokenString, found := strings.CutPrefix(header, bearerPrefix)
	if !found || tokenString == "" {
		return Principal{}, errors.New("bearer token is missing")
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Principal{}, err
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Principal{}, fmt.Errorf("subject: %w", err)
	}
	switch claims.Role {
	case RoleCustomer, RoleDriver, RoleAdmin:
	default:
		return Principal{}, fmt.Errorf("unknown role %q", claims.Role)
	}
	return Principal{ID: userID, Role: claims.Role}, nil
}

func principalFrom(c echo.Context) Principal {
	p, _ := c.Get(principalKey).(Principal)
	return p
}
