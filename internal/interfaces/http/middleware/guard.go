package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transferdesk/internal/application/guard"
	"transferdesk/internal/application/session"
	"transferdesk/internal/shared/authorization"
)

// RequireRole maps guard decisions onto HTTP responses for a route
// group. The decision is re-evaluated on every request, so a logout
// flips a mounted protected view to the login redirect on its next
// navigation.
func RequireRole(store *session.Store, role authorization.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := guard.Evaluate(store.Current(), role)
		switch result.Decision {
		case guard.ShowLoading:
			// Rehydration is still running; ask the browser to retry.
			c.Header("Retry-After", "1")
			c.HTML(http.StatusServiceUnavailable, "loading.html", gin.H{})
			c.Abort()
		case guard.RedirectToLogin, guard.RedirectToRoleHome:
			c.Redirect(http.StatusFound, result.Target())
			c.Abort()
		case guard.Render:
			c.Next()
		}
	}
}
