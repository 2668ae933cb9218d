package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// contextKey используется как ключ для значений в контексте
type contextKey string

const (
	// ContextKeySessionID ключ идентификатора сессии в контексте запроса
	ContextKeySessionID contextKey = "session_id"
	// SessionCookieName имя cookie с подписанным идентификатором сессии
	SessionCookieName = "snipscan_session"
)

// SessionMiddleware привязывает запрос к сессии браузера.
// Если cookie нет или подпись неверна, создается новая сессия и выставляется cookie.
// При ttl > 0 действующая cookie переотправляется с новым MaxAge, чтобы браузер
// не удалил ее раньше, чем хранилище удалит сессию.
func SessionMiddleware(secretKey string, ttl time.Duration, secure bool, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID, signed string
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				if id, ok := ValidateSessionID(cookie.Value, secretKey); ok {
					sessionID, signed = id, cookie.Value
				} else {
					logger.Debug("Invalid session cookie, issuing new session")
				}
			}

			switch {
			case sessionID == "":
				sessionID = GenerateSessionID()
				setSessionCookie(w, SignSessionID(sessionID, secretKey), ttl, secure)
			case ttl > 0:
				setSessionCookie(w, signed, ttl, secure)
			}

			ctx := context.WithValue(r.Context(), ContextKeySessionID, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func setSessionCookie(w http.ResponseWriter, value string, ttl time.Duration, secure bool) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
	}
	http.SetCookie(w, cookie)
}

// SessionIDFromContext извлекает идентификатор сессии из контекста
func SessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(ContextKeySessionID).(string)
	return sessionID, ok && sessionID != ""
}
