package app

import (
	"errors"
	"net/http"

	"github.com/gestio-app/gestio/internal/config"
	"github.com/gestio-app/gestio/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {
	r.Use(userContextMiddleware(deps.UserService))
}

// userContextMiddleware resolves the X-User-Id header into a full user and
// attaches it to the request context. Requests without the header pass
// through untouched; the Google OAuth callback, for one, arrives without it.
func userContextMiddleware(userService user.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			uid := req.Header.Get("X-User-Id")
			if uid == "" {
				next.ServeHTTP(w, req)
				return
			}

			ctx := req.Context()
			u, err := userService.GetUserByUid(ctx, uid)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					log.Debugf("unknown user uid: %s", uid)
					http.Error(w, "user not found", http.StatusForbidden)
					return
				}
				log.Errorf("failed to resolve user %s: %v", uid, err)
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			next.ServeHTTP(w, req.WithContext(user.WithUser(ctx, u)))
		})
	}
}
