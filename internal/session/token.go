package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

// TokenExpired inspects the stored credential before bothering the backend
// with a doomed profile fetch. The client has no signing key, so the token is
// parsed unverified - this is a best-effort shortcut, not a security check.
// Opaque (non-JWT) tokens are never reported expired.
func TokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		log.Tracef("credential is not a parseable JWT: %s", err)
		return false
	}

	expiresAt, err := claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return false
	}

	return expiresAt.Before(now)
}
