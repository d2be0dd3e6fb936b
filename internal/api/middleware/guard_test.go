package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/docukit/approval-system/internal/core/domain"
)

type stubSessions struct {
	cred domain.Credential
	ok   bool
}

func (s stubSessions) CurrentUser() (domain.Credential, bool) { return s.cred, s.ok }

func protectedOK(c echo.Context) error { return c.String(http.StatusOK, "protected") }

func invokeGuard(t *testing.T, sessions stubSessions, role domain.Role, idMatch bool, path, paramID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}
	if err := Guard(sessions, role, idMatch)(protectedOK)(c); err != nil {
		t.Fatalf("guard: %v", err)
	}
	return rec
}

func TestGuard_NoSessionRedirects(t *testing.T) {
	rec := invokeGuard(t, stubSessions{}, domain.RoleAdmin, false, "/admin", "")

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/?from=%2Fadmin" {
		t.Fatalf("Location = %q, want /?from=%%2Fadmin", loc)
	}
}

func TestGuard_RoleMismatchRedirects(t *testing.T) {
	sessions := stubSessions{
		cred: domain.Credential{ID: "c1", Role: domain.RoleCompany, LinkedID: "co-1"},
		ok:   true,
	}
	rec := invokeGuard(t, sessions, domain.RoleAdmin, false, "/admin", "")

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
}

func TestGuard_MatchingRoleServes(t *testing.T) {
	sessions := stubSessions{
		cred: domain.Credential{ID: "c1", Role: domain.RoleAdmin},
		ok:   true,
	}
	rec := invokeGuard(t, sessions, domain.RoleAdmin, false, "/admin", "")

	if rec.Code != http.StatusOK || rec.Body.String() != "protected" {
		t.Fatalf("expected protected view, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestGuard_IDMismatchRedirects(t *testing.T) {
	sessions := stubSessions{
		cred: domain.Credential{ID: "c1", Role: domain.RoleCompany, LinkedID: "co-1"},
		ok:   true,
	}
	rec := invokeGuard(t, sessions, domain.RoleCompany, true, "/company/co-2", "co-2")

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
}

func TestGuard_IDMatchServes(t *testing.T) {
	sessions := stubSessions{
		cred: domain.Credential{ID: "c1", Role: domain.RoleApplicant, LinkedID: "ap-1"},
		ok:   true,
	}
	rec := invokeGuard(t, sessions, domain.RoleApplicant, true, "/applicant/ap-1", "ap-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestGuard_StoresCredentialInContext(t *testing.T) {
	cred := domain.Credential{ID: "c1", Username: "fc-acme-1234", Role: domain.RoleCompany, LinkedID: "co-1"}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/company/co-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("co-1")

	handler := Guard(stubSessions{cred: cred, ok: true}, domain.RoleCompany, true)(func(c echo.Context) error {
		got, ok := CredentialFrom(c)
		if !ok {
			t.Fatalf("credential missing from context")
		}
		if got.ID != cred.ID {
			t.Fatalf("context credential = %+v, want %+v", got, cred)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("guard: %v", err)
	}
}
