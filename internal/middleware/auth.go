package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// RequireAdmin guards mutating requests. A request passes with either the
// static API token or an HS256 JWT signed with jwtSecret. Safe methods are
// never checked. An empty token and secret disable the guard.
func RequireAdmin(token string, jwtSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" && len(jwtSecret) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			credential := bearer(r)
			if credential == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if token != "" && subtle.ConstantTimeCompare([]byte(credential), []byte(token)) == 1 {
				next.ServeHTTP(w, r)
				return
			}
			if len(jwtSecret) > 0 && validJWT(credential, jwtSecret) {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		})
	}
}

func bearer(r *http.Request) string {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		authHeader = strings.TrimSpace(authHeader[7:])
	}
	return authHeader
}

func validJWT(tokenStr string, secret []byte) bool {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	return err == nil && token.Valid
}
