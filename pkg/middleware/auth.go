package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// WriteGuards returns the handlers to put in front of mutating routes: the
// bearer-token check when a verifier is configured, nothing otherwise.
func WriteGuards(ver Verifier) []gin.HandlerFunc {
	if ver == nil {
		return nil
	}
	return []gin.HandlerFunc{AuthMiddleware(ver)}
}

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using the provided verifier.
// On success the claims map is stored under "claims" and the subject under "sub".
// A request already identified by IdentifySubject is not verified twice.
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get("claims"); ok {
			c.Next()
			return
		}
		if msg, ok := authenticate(c, ver); !ok {
			unauthorized(c, msg)
			return
		}
		c.Next()
	}
}

// IdentifySubject stores "claims" and "sub" when the request carries a valid
// Bearer token and lets every request through. It runs ahead of the rate
// limiters so authenticated callers get a per-subject bucket.
func IdentifySubject(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ver != nil && c.GetHeader("Authorization") != "" {
			_, _ = authenticate(c, ver)
		}
		c.Next()
	}
}

// authenticate verifies the Bearer token of c and records its claims. On
// failure it returns the message for the 401 body.
func authenticate(c *gin.Context, ver Verifier) (string, bool) {
	auth := c.GetHeader("Authorization")
	if auth == "" {
		return "missing Authorization header", false
	}
	var token string
	if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
		return "invalid Authorization header", false
	}

	verified, err := ver.Verify(c.Request.Context(), token)
	if err != nil {
		return "invalid token", false
	}

	var claims map[string]interface{}
	if err := verified.Claims(&claims); err != nil {
		return "failed to parse claims", false
	}

	c.Set("claims", claims)
	if sub, ok := claims["sub"].(string); ok {
		c.Set("sub", sub)
	}
	return "", true
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": msg})
}
