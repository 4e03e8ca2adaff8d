package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin      = "admin"
	RoleAdvertiser = "advertiser"
)

// Claims are carried by bearer tokens. Advertiser tokens are bound to one
// advertiser account.
type Claims struct {
	AdvertiserID string `json:"advertiser_id,omitempty"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

type claimsKey struct{}

// ClaimsFromContext returns the claims of an authenticated request.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok
}

// Authenticator signs and verifies HS256 tokens.
type Authenticator struct {
	key []byte
	now func() time.Time
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{key: []byte(secret), now: time.Now}
}

// Issue signs a token for role, valid for ttl.
func (a *Authenticator) Issue(role, advertiserID string, ttl time.Duration) (string, error) {
	now := a.now()
	claims := &Claims{
		AdvertiserID: advertiserID,
		Role:         role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   advertiserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
}

// Parse verifies a token and returns its claims.
func (a *Authenticator) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return a.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, err
	}
	switch claims.Role {
	case RoleAdmin:
	case RoleAdvertiser:
		if claims.AdvertiserID == "" {
			return nil, errors.New("advertiser token without advertiser id")
		}
	default:
		return nil, fmt.Errorf("unknown role %q", claims.Role)
	}
	return claims, nil
}

// Require admits requests carrying a valid token with one of roles.
func (a *Authenticator) Require(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if a == nil || len(a.key) == 0 {
				writeAuthError(w, r, http.StatusUnauthorized, "authentication is not configured")
				return
			}
			header := r.Header.Get("Authorization")
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
				writeAuthError(w, r, http.StatusUnauthorized, "missing bearer token")
				return
			}
			claims, err := a.Parse(token)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, jwt.ErrTokenExpired) {
					msg = "token expired"
				}
				writeAuthError(w, r, http.StatusUnauthorized, msg)
				return
			}
			if !slices.Contains(roles, claims.Role) {
				writeAuthError(w, r, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}

func writeAuthError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="marketplace-ads"`)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg, RequestID: RequestIDFromContext(r.Context())})
}
