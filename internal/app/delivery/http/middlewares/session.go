package middlewares

import (
	"context"
	"net/http"

	"github.com/Ardenexal/imaging-request/internal/app/config"
	"github.com/Ardenexal/imaging-request/internal/app/models"
	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/exceptions"
	"github.com/Ardenexal/imaging-request/internal/pkg/utils"
	"go.uber.org/zap"
)

// SessionOptional resolves the session cookie into a *models.Session on the
// request context. Requests without a usable session pass through untouched and
// a stale cookie is cleared. A session store failure is an error, not a missing
// session, so the cookie survives it.
func (m *Middlewares) SessionOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(constvars.SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.SessionService.GetSessionByToken(r.Context(), cookie.Value)
		if err != nil && exceptions.StatusCodeOf(err) != constvars.StatusUnauthorized {
			m.Log.Error("Failed to load session",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.Error(err),
			)
			m.ErrorHandler.Handle(w, r, err)
			return
		}
		if err != nil {
			m.Log.Info("Session cookie rejected",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.Error(err),
			)
			http.SetCookie(w, ExpiredSessionCookie(m.InternalConfig.Session))
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_KEY, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSession returns the session SessionOptional attached to ctx, or nil.
func GetSession(ctx context.Context) *models.Session {
	session, _ := ctx.Value(constvars.CONTEXT_SESSION_KEY).(*models.Session)
	return session
}

// SessionCookie carries the signed session token; the browser drops it when the
// server-side session expires.
func SessionCookie(cfg config.Session, token string) *http.Cookie {
	return &http.Cookie{
		Name:     constvars.SessionCookieName,
		Value:    token,
		Path:     constvars.RouteIndex,
		Domain:   cfg.CookieDomainName,
		MaxAge:   cfg.ExpTimeInHour * 3600,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func ExpiredSessionCookie(cfg config.Session) *http.Cookie {
	return &http.Cookie{
		Name:     constvars.SessionCookieName,
		Value:    "",
		Path:     constvars.RouteIndex,
		Domain:   cfg.CookieDomainName,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
