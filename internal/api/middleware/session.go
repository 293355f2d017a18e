package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// sessionIDKey is the context key for the session ID.
type sessionIDKey struct{}

// SessionHeader is the header carrying the client session identifier.
const SessionHeader = "X-Session-Id"

// Session resolves the planner session for a request. The session ID is an
// opaque client-held token that keys the persisted itinerary snapshot; there
// is no real authentication in this product. A fresh ID is generated and
// echoed back when the client does not send one, so a first request
// bootstraps a session.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if sessionID == "" {
			sessionID = "ses_" + uuid.New().String()[:22]
		}

		w.Header().Set(SessionHeader, sessionID)

		ctx := context.WithValue(r.Context(), sessionIDKey{}, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID retrieves the session ID from the context.
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}
