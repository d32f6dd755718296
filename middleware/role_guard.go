// middleware/role_guard.go
package middleware

import (
	"github.com/labstack/echo/v4"
)

// Redirect targets used by the role guard
const (
	LoginPath = "/auth/login"
	RootPath  = "/"
)

// Decision is the outcome of a role-gate check: either the request may
// proceed, or it must be redirected.
type Decision struct {
	Allow    bool
	Redirect string
}

// CheckAccess gates a role subtree. No session redirects to login; a session
// with the wrong role redirects to root; anything else is allowed. The check
// runs on every request, results are never cached.
func CheckAccess(claims *JwtCustomClaims, requiredRole string) Decision {
	if claims == nil || claims.UserID == "" {
		return Decision{Redirect: LoginPath}
	}
	if claims.Role != requiredRole {
		return Decision{Redirect: RootPath}
	}
	return Decision{Allow: true}
}

// RequireRole applies CheckAccess to every request entering a role subtree
func RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := CheckAccess(GetUserFromToken(c), requiredRole)
			if !decision.Allow {
				return c.Redirect(302, decision.Redirect)
			}
			return next(c)
		}
	}
}
