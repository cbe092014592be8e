package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/aixiv-api/pkg/clientip"
)

const (
	// ContextUploaderKey is the gin context key storing the bearer subject.
	ContextUploaderKey = "uploader"
	// ContextClientIPKey is the gin context key storing the resolved client address.
	ContextClientIPKey = "clientIP"
)

// Identity attaches the subject of a bearer token when one is present. Signatures are not
// verified; the subject only labels uploads and never grants access.
func Identity() gin.HandlerFunc {
	parser := jwt.NewParser()
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		claims := jwt.RegisteredClaims{}
		if _, _, err := parser.ParseUnverified(strings.TrimSpace(parts[1]), &claims); err != nil {
			c.Next()
			return
		}
		if subject := strings.TrimSpace(claims.Subject); subject != "" {
			c.Set(ContextUploaderKey, subject)
		}
		c.Next()
	}
}

// ClientIP resolves the request origin once so handlers and the review limiter agree on it.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextClientIPKey, clientip.Resolve(c.Request))
		c.Next()
	}
}
