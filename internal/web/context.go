package web

import (
	"net"
	"net/http"

	"github.com/google/uuid"

	"github.com/JonMunkholm/OrderSheet/internal/core"
	"github.com/JonMunkholm/OrderSheet/internal/logging"
)

// SessionCookie names the cookie holding the wizard session id.
const SessionCookie = "ordersheet_session"

// SessionHeader lets API clients without a cookie jar pick their session.
const SessionHeader = "X-Session-ID"

// session resolves the wizard session for the request, issuing a new cookie
// when the client has none. Ids that are not UUIDs are replaced.
func (s *Server) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := validSession(r.Header.Get(SessionHeader))
		if id == "" {
			if c, err := r.Cookie(SessionCookie); err == nil {
				id = validSession(c.Value)
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   s.cfg.Retention.Days * 24 * 60 * 60,
				HttpOnly: true,
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := logging.WithSession(r.Context(), id)
		ctx = core.WithRequester(ctx, core.Requester{
			Session:   id,
			IP:        clientIP(r),
			UserAgent: r.UserAgent(),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func validSession(v string) string {
	u, err := uuid.Parse(v)
	if err != nil {
		return ""
	}
	return u.String()
}

// sessionID returns the session resolved by the session middleware.
func sessionID(r *http.Request) string {
	return logging.Session(r.Context())
}

// clientIP strips the port from RemoteAddr, which TrustedRealIP may already
// have replaced with a bare address.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
