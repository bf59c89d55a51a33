// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides bearer-token authentication and the admin gate. Token
// verification is delegated to a TokenVerifier so the middleware stays free
// of crypto and storage concerns; the auth service implements it.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAuth and read by handlers and other middleware.
const (
	ctxKeyUserID  = "userID"
	ctxKeyIsAdmin = "isAdmin"
)

// TokenVerifier validates a bearer token and returns the authenticated user
// id and admin flag. Any error is treated as an invalid token.
type TokenVerifier interface {
	Verify(token string) (userID string, admin bool, err error)
}

// UserID returns the authenticated user id stored by RequireAuth.
// The second return value indicates presence.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyUserID)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsAdmin reports whether the authenticated user carries the admin flag.
func IsAdmin(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIsAdmin)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// RequireAuth enforces a valid "Authorization: Bearer <token>" header.
//
// On success the user id and admin flag are stored in the Gin context under
// the keys read by UserID/IsAdmin (and by the logging and rate-limit
// middleware). On failure the request is aborted with a compact 401 body:
//
//	{ "request_id": "...", "code": "unauthorized", "message": "invalid or missing token" }
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortAuth(c, http.StatusUnauthorized, "unauthorized", "invalid or missing token")
			return
		}
		uid, admin, err := verifier.Verify(token)
		if err != nil || uid == "" {
			abortAuth(c, http.StatusUnauthorized, "unauthorized", "invalid or missing token")
			return
		}
		c.Set(ctxKeyUserID, uid)
		c.Set(ctxKeyIsAdmin, admin)
		c.Next()
	}
}

// RequireAdmin gates a route group to admin accounts. Must run after
// RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			abortAuth(c, http.StatusForbidden, "forbidden", "admin access required")
			return
		}
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value.
// Scheme matching is case-insensitive per RFC 7235.
func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func abortAuth(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       code,
		"message":    msg,
	})
}
