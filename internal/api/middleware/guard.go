// Package middleware holds the routing-layer authorization guard.
//
// The guard is advisory, client-model authorization: it controls navigation,
// not data access. Every role-mismatch outcome is a redirect to the login
// route, deliberately indistinguishable from "not logged in".
package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/docukit/approval-system/internal/core/domain"
)

// credentialKey is where the guard stores the resolved credential for
// downstream handlers.
const credentialKey = "credential"

// SessionResolver reports who is currently logged in.
type SessionResolver interface {
	CurrentUser() (domain.Credential, bool)
}

// Guard gates a protected route group. role, when non-empty, must equal the
// current credential's role. enforceIDMatch additionally requires the route's
// :id parameter to equal the credential's linked entity id.
//
// Decision table:
//   - no current credential          → redirect to login, preserving location
//   - role set and role mismatch     → redirect to login
//   - id-match on and :id ≠ linkedId → redirect to login
//   - otherwise                      → serve the protected view
func Guard(sessions SessionResolver, role domain.Role, enforceIDMatch bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cred, ok := sessions.CurrentUser()
			if !ok {
				return redirectToLogin(c)
			}
			if role != "" && cred.Role != role {
				return redirectToLogin(c)
			}
			if enforceIDMatch && cred.LinkedID != "" {
				if id := c.Param("id"); id != "" && id != cred.LinkedID {
					return redirectToLogin(c)
				}
			}

			c.Set(credentialKey, cred)
			return next(c)
		}
	}
}

// CredentialFrom returns the credential the guard resolved for this request.
func CredentialFrom(c echo.Context) (domain.Credential, bool) {
	cred, ok := c.Get(credentialKey).(domain.Credential)
	return cred, ok
}

// redirectToLogin sends the client to the login view, keeping the attempted
// location for an optional post-login redirect.
func redirectToLogin(c echo.Context) error {
	from := c.Request().URL.Path
	return c.Redirect(http.StatusFound, "/?from="+url.QueryEscape(from))
}
