package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-web-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-web-go/internal/pkg/session"
	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	workspaceKey contextKey = "workspace"
	csrfKey      contextKey = "csrf_token"

	// CSRFFormField and CSRFHeader carry the token on unsafe requests.
	CSRFFormField = "csrf_token"
	CSRFHeader    = "X-CSRF-Token"
)

// TokenFromSessionCookie is the jwtauth token finder for the session cookie.
func TokenFromSessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(jwt.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Session resolves the workspace of the request. It runs after
// jwtauth.Verify; a missing, expired or foreign token starts a new session
// and sets its cookie. The workspace of a new session is kept only once the
// client sends the cookie back. A cookie past half its lifetime is re-issued
// for the same session.
func Session(jwtService jwt.Service, store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			sessionID, expiresAt := sessionFromContext(r.Context())

			returning := sessionID != ""
			if !returning {
				sessionID = store.NewID()
				slog.DebugContext(r.Context(), "Started session", "session_id", sessionID)
			}
			if time.Until(expiresAt) < store.TTL()/2 {
				token, exp, err := jwtService.GenerateSessionToken(sessionID)
				if err != nil {
					slog.ErrorContext(r.Context(), "Failed to issue session token", "error", err)
					response.InternalServerError(w, "Failed to start session")
					return
				}
				http.SetCookie(w, jwtService.SessionCookie(token, exp))
			}

			csrfToken, err := jwtService.GenerateCSRFToken(sessionID)
			if err != nil {
				slog.ErrorContext(r.Context(), "Failed to issue csrf token", "error", err)
				response.InternalServerError(w, "Failed to start session")
				return
			}

			var ws *session.Workspace
			if returning {
				ws = store.Get(sessionID)
			} else {
				ws = store.Transient(sessionID)
			}

			ctx := context.WithValue(r.Context(), workspaceKey, ws)
			ctx = context.WithValue(ctx, csrfKey, csrfToken)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// CSRF rejects unsafe requests whose form token does not belong to the
// session. It runs after Session.
func CSRF(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			ws := Workspace(r.Context())
			if ws == nil {
				response.Forbidden(w, "Session required")
				return
			}

			token := r.Header.Get(CSRFHeader)
			if token == "" {
				token = r.PostFormValue(CSRFFormField)
			}
			if err := jwtService.ValidateCSRFToken(token, ws.ID); err != nil {
				slog.WarnContext(r.Context(), "Rejected request with invalid csrf token", "session_id", ws.ID, "error", err)
				response.Forbidden(w, "Invalid CSRF token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// Workspace returns the session workspace set by Session.
func Workspace(ctx context.Context) *session.Workspace {
	ws, _ := ctx.Value(workspaceKey).(*session.Workspace)
	return ws
}

// CSRFToken returns the form token for the current session.
func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(csrfKey).(string)
	return token
}

// sessionFromContext returns the session ID and expiry of a verified
// session token, or "" when there is none.
func sessionFromContext(ctx context.Context) (string, time.Time) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return "", time.Time{}
	}
	if tokenType, ok := claims["type"].(string); !ok || tokenType != jwt.TokenTypeSession {
		return "", time.Time{}
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", time.Time{}
	}
	return sid, token.Expiration()
}
