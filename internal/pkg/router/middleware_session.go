package router

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/laprice/internal/pkg/goerror"
	"github.com/shandysiswandi/laprice/internal/pkg/session"
)

// middlewareSession resolves the session cookie into the request context.
//
// The session is attached for every endpoint that carries a valid cookie, so
// public auth endpoints (verify-otp, check-auth, logout) can still read it.
// Endpoints outside the public set additionally require a fully
// authenticated session.
func middlewareSession(store session.Store, cookieName string, publicEndpoints map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
				sess, err := store.Get(r.Context(), cookie.Value)
				if err != nil && !errors.Is(err, goerror.ErrNotFound) {
					slog.ErrorContext(r.Context(), "failed to resolve session", "error", err)
				}
				if sess != nil {
					ctx := session.SetAuth(r.Context(), &session.Auth{Token: cookie.Value, Session: *sess})
					r = r.WithContext(ctx)
				}
			}

			if s, ok := publicEndpoints[r.Method]; ok {
				if _, skip := s[matchedRoutePath(r)]; skip {
					next.ServeHTTP(w, r)
					return
				}
			}

			auth := session.GetAuth(r.Context())
			if auth == nil || auth.Session.State != session.StateAuthenticated {
				writeJSON(w, map[string]string{"message": "Authentication required"}, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
