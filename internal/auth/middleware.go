package auth

import (
	"context"
	"net/http"

	logger "github.com/sirupsen/logrus"
)

type contextKey string

const userKey contextKey = "user"

type AuthenticateMiddleware struct {
	Secret []byte
}

// Handle rejects requests without a valid session cookie and stores the
// username in the request context.
func (m *AuthenticateMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := VerifyUser(r, m.Secret)
		if err != nil {
			logger.Debugf("Unauthenticated request to %s: %v", r.URL.Path, err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetAuthenticatedUser(r *http.Request) (string, bool) {
	username, ok := r.Context().Value(userKey).(string)
	return username, ok && username != ""
}
