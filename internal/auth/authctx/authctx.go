// Package authctx holds the request-context user helpers shared by the
// auth middleware and handler packages. It lives below auth so packages
// that auth itself depends on (such as account) can read the current
// user without importing auth.
package authctx

import (
	"github.com/gin-gonic/gin"
)

type contextKey string

const userContextKey contextKey = "quickshareUser"

// ContextUser represents the authenticated principal stored in the
// request context.
type ContextUser struct {
	ID    string
	Email string
	Role  string
}

// Set stores the authenticated user in the request context.
func Set(c *gin.Context, user ContextUser) {
	c.Set(string(userContextKey), user)
}

// CurrentUser extracts the authenticated user from the context.
func CurrentUser(c *gin.Context) (ContextUser, bool) {
	value, exists := c.Get(string(userContextKey))
	if !exists {
		return ContextUser{}, false
	}
	user, ok := value.(ContextUser)
	return user, ok
}
