package middleware

import (
	"errors"
	"net/http"

	"github.com/coursedesk/courseapi/internal/handlers"
	"github.com/coursedesk/courseapi/internal/logging"
	"github.com/coursedesk/courseapi/internal/services"
)

type AuthMiddleware struct {
	userService services.UserServiceInterface
	authService services.AuthServiceInterface
}

func NewAuthMiddleware(userService services.UserServiceInterface, authService services.AuthServiceInterface) *AuthMiddleware {
	return &AuthMiddleware{
		userService: userService,
		authService: authService,
	}
}

// RequireUser authenticates the request via HTTP Basic credentials and
// binds the user to the context. Every failure answers the same 400
// body; the distinguishing cause is only logged.
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, password, ok := r.BasicAuth()
		if !ok {
			m.deny(w, r, "credentials missing or malformed")
			return
		}

		user, err := m.userService.GetByEmail(r.Context(), email)
		if errors.Is(err, services.ErrUserNotFound) {
			m.deny(w, r, "no user for email")
			return
		}
		if err != nil {
			logging.Error("Looking up user for basic auth", map[string]interface{}{
				"error": err.Error(),
				"path":  r.URL.Path,
			})
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Internal server error"}`))
			return
		}

		if !m.authService.VerifyPassword(user.PasswordHash, password) {
			m.deny(w, r, "password mismatch")
			return
		}

		ctx := handlers.SetUserInContext(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) deny(w http.ResponseWriter, r *http.Request, cause string) {
	logging.Warn("Access denied", map[string]interface{}{
		"cause":  cause,
		"method": r.Method,
		"path":   r.URL.Path,
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	w.Write([]byte(`{"message":"Access Denied"}`))
}
