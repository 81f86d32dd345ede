package auth

import (
	"context"
	"net/http"
)

type ctxKey struct{}

// FromContext returns the session placed by Middleware. The second return is
// false only for handlers mounted outside the authenticated group.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok
}

// WithSession is used by tests to impersonate a caller.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// Middleware resolves the session cookie. A caller with no valid session is
// redirected to the login entry point; no handler behind this middleware ever
// sees an unauthenticated request or returns partial data.
func Middleware(store SessionStore, cookieName, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cookieName)
			if err != nil || c.Value == "" {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			s, err := store.Get(r.Context(), c.Value)
			if err != nil {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}
