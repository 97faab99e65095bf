package auth

import (
	"net/http"
	"strings"

	dom "github.com/birat04/Notionize/internal/domain"

	"github.com/gin-gonic/gin"
)

const contextKeySubject = "auth_subject"

// TokenVerifier verifies bearer tokens.
type TokenVerifier interface {
	Verify(token string) (dom.Subject, error)
}

// SubjectFromContext returns the subject set by RequireBearer.
func SubjectFromContext(c *gin.Context) (dom.Subject, bool) {
	v, ok := c.Get(contextKeySubject)
	if !ok {
		return dom.Subject{}, false
	}
	sub, ok := v.(dom.Subject)
	return sub, ok
}

// UserIDFromContext returns the current user ID set by RequireBearer. 0 if not set.
func UserIDFromContext(c *gin.Context) int64 {
	sub, _ := SubjectFromContext(c)
	return sub.UserID
}

// RequireBearer returns a middleware that checks the Authorization header.
// An absent bearer token is 401; a token that fails verification is 403.
func RequireBearer(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access token required"})
			return
		}
		sub, err := v.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid token"})
			return
		}
		c.Set(contextKeySubject, sub)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
