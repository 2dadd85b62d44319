package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/golang-jwt/jwt/v5/request"
	"github.com/vaultpass/passmate/internal/crypto"
)

// APITokenHeader carries a bare API token for clients that cannot send Authorization.
const APITokenHeader = "X-API-Token"

type subjectKey struct{}

// tokenExtractor prefers "Authorization: Bearer <token>" and falls back to APITokenHeader.
var tokenExtractor = request.MultiExtractor{
	request.BearerExtractor{},
	request.HeaderExtractor{APITokenHeader},
}

// TokenAuth rejects requests without a valid API token signed with secret.
// The token subject is stored in the request context.
func TokenAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := tokenExtractor.ExtractToken(r)
			if err != nil || raw == "" {
				unauthorized(w, "missing API token")
				return
			}

			claims, err := crypto.ValidateToken(raw, secret)
			if err != nil {
				slog.Debug("rejected API token", "remote_addr", r.RemoteAddr, "error", err)
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext returns the token subject set by TokenAuth.
func SubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(subjectKey{}).(string)
	return sub, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="passmate"`)
	writeJSONError(w, http.StatusUnauthorized, msg)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
