package api

import (
	"net/http"
	"strings"
)

// bearerToken extracts the session token from the Authorization header.
// Returns "" when the request is anonymous; concepts decide whether that is
// allowed.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
