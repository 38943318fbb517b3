package routes

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"gitlab.com/ranfdev/sqadmin/internal/models"
	"gitlab.com/ranfdev/sqadmin/internal/utils"
)

type sqadminCtxKey int

const IdentityCtxKey = sqadminCtxKey(1)

// IdentityClaims are the claims of the tokens issued by the site. The
// subject is the numeric user id.
type IdentityClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func parseIdentity(secret []byte, token string) (models.Identity, error) {
	claims := &IdentityClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Identity{}, fmt.Errorf("parsing token: %w", err)
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return models.Identity{}, fmt.Errorf("bad subject %q: %w", claims.Subject, err)
	}
	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return models.Identity{}, err
	}
	return models.Identity{UserID: userID, Role: role}, nil
}

// SignIdentity issues a token for id. The site's login flow owns token
// issuance, this is used by tests and tooling.
func SignIdentity(secret []byte, id models.Identity) (string, error) {
	claims := IdentityClaims{
		Role:             string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{Subject: strconv.Itoa(id.UserID)},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// IdentityCtx requires a valid bearer token and stores the caller's identity
// in the request context.
func (routes *Routes) IdentityCtx(next http.Handler) http.Handler {
	return routes.AppHandler(func(w http.ResponseWriter, r *http.Request) AppError {
		token, ok := utils.BearerToken(r)
		if !ok {
			return &ErrUnauthorized{Cause: models.ErrAuthenticationFailed}
		}
		identity, err := parseIdentity(routes.jwtSecret, token)
		if err != nil {
			return &ErrUnauthorized{Message: models.ErrAuthenticationFailed.Error(), Cause: err}
		}
		ctx := context.WithValue(r.Context(), IdentityCtxKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
		return nil
	})
}

// RequireRole rejects callers without role. It must run after IdentityCtx.
func (routes *Routes) RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return routes.AppHandler(func(w http.ResponseWriter, r *http.Request) AppError {
			if err := GetIdentity(r).Require(role); err != nil {
				return &ErrUnauthorized{Cause: err}
			}
			next.ServeHTTP(w, r)
			return nil
		})
	}
}

func GetIdentity(r *http.Request) models.Identity {
	identity, _ := r.Context().Value(IdentityCtxKey).(models.Identity)
	return identity
}
