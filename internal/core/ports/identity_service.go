package ports

import (
	"context"

	"github.com/docukit/approval-system/internal/core/domain"
)

// LoginResult mirrors what the login flow hands back to the presentation
// layer: success, the actor's role, and the entity the credential is linked to.
type LoginResult struct {
	OK       bool        `json:"ok"`
	Role     domain.Role `json:"role,omitempty"`
	LinkedID string      `json:"linkedId,omitempty"`
}

// IdentityService resolves login attempts against the credential table and
// manages the single session pointer.
type IdentityService interface {
	// Login scans for an exact username/password match. On success the session
	// points at the matched credential; on failure the session is unchanged and
	// the result carries OK=false with no error (unknown user and wrong
	// password are deliberately indistinguishable).
	Login(ctx context.Context, username, password string) (LoginResult, error)
	// Logout clears the session unconditionally. Idempotent.
	Logout(ctx context.Context) error
	// CurrentUser resolves the session pointer, if a user is logged in.
	CurrentUser() (domain.Credential, bool)
	// Credentials returns every credential record (admin reporting view).
	Credentials() []domain.Credential
}
