package middlewarex

import (
	"net/http"

	"github.com/rs/xid"

	"deal_dashboard/pkg/contextx"
)

const HeaderNameSessionID = "X-Session-Id"

// SessionID binds the request to a deal set. Callers that do not send a
// session id get a fresh one echoed back and must reuse it on later calls.
func SessionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(HeaderNameSessionID)

		if sessionID == "" {
			sessionID = xid.New().String()
		}

		ctx := contextx.WithSessionID(r.Context(), contextx.SessionID(sessionID))

		w.Header().Set(HeaderNameSessionID, sessionID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
