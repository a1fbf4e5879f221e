package stubserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"

	"droneRentalMarketplace/models"
)

// Identity is the authenticated caller extracted from a bearer JWT.
type Identity struct {
	Mobile string
	Role   models.Role
}

type identityKey struct{}

func withIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func identityFrom(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok
}

// mintToken signs an HS256 JWT carrying the caller's mobile and role.
func mintToken(secret, mobile string, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"mobile": mobile,
		"role":   role.Wire(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// parseToken validates and extracts claims from a bearer JWT.
func parseToken(tokenStr, secret string) (*Identity, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}

	type claims struct {
		Mobile string `json:"mobile"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	tok, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	c, _ := tok.Claims.(*claims)
	if c == nil || c.Mobile == "" {
		return nil, errors.New("invalid claims")
	}
	role, ok := models.ParseRole(c.Role)
	if !ok {
		return nil, errors.New("invalid role claim")
	}
	return &Identity{Mobile: c.Mobile, Role: role}, nil
}

// requireAuth extracts and validates a Bearer JWT from the Authorization
// header and injects the Identity into the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			writeError(w, http.StatusUnauthorized, "missing or invalid authorization header")
			return
		}
		id, err := parseToken(strings.TrimSpace(parts[1]), s.secret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "auth error: "+err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
	})
}

// requireRole wraps requireAuth and additionally gates on the token's role.
func (s *Server) requireRole(role models.Role, handler http.HandlerFunc) http.Handler {
	return s.requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identityFrom(r.Context())
		if !ok || id.Role != role {
			writeError(w, http.StatusForbidden, "only "+role.Wire()+" can perform this action")
			return
		}
		handler(w, r)
	}))
}
