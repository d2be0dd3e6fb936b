package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/docukit/approval-system/internal/core/domain"
	"github.com/docukit/approval-system/internal/core/ports"
)

// docOptions is the fixed list of documents an admin can bundle into a kit.
var docOptions = []string{
	"Proforma 3",
	"Proforma 4",
	"Proforma 5",
	"Proforma 6",
	"Invitation Letter",
	"Undertaking",
}

// staticProformas are the admin-only placeholder documents, keyed by route slug.
var staticProformas = map[string]string{
	"proforma-4":        "Proforma 4",
	"proforma-6":        "Proforma 6",
	"invitation-letter": "Invitation Letter",
	"undertaking":       "Undertaking",
}

type AdminHandler struct {
	workflow  ports.WorkflowService
	identity  ports.IdentityService
	analytics ports.AnalyticsService
}

func NewAdminHandler(workflow ports.WorkflowService, identity ports.IdentityService, analytics ports.AnalyticsService) *AdminHandler {
	return &AdminHandler{workflow: workflow, identity: identity, analytics: analytics}
}

// Dashboard returns the admin work view: all companies, all applicants, and
// the pending queue (submitted but not yet approved).
func (h *AdminHandler) Dashboard(c echo.Context) error {
	applicants := h.workflow.Applicants()
	pending := make([]domain.Applicant, 0)
	for _, a := range applicants {
		if a.Submitted && !a.Approved {
			pending = append(pending, a)
		}
	}
	return c.JSON(http.StatusOK, adminDashboard{
		Companies:  h.workflow.Companies(),
		Applicants: toApplicantViews(applicants),
		Pending:    toApplicantViews(pending),
	})
}

// Credentials lists every credential record. Passwords are included: this is
// the same all-data-visible model the admin view always had.
func (h *AdminHandler) Credentials(c echo.Context) error {
	return c.JSON(http.StatusOK, h.identity.Credentials())
}

// CreateCompany enrolls a company and returns its generated login.
//
// @Summary      Create a company
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createCompanyRequest  true  "Company name"
// @Success      201   {object}  ports.CompanyGrant
// @Failure      400   {object}  errorResponse
// @Router       /admin/companies [post]
func (h *AdminHandler) CreateCompany(c echo.Context) error {
	var req createCompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	grant, err := h.workflow.CreateCompany(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, grant)
}

// Approve marks the applicant approved. When the body carries a document
// list, the kit is assigned in the same request.
func (h *AdminHandler) Approve(c echo.Context) error {
	var req approveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	if err := h.workflow.ApproveApplicant(ctx, id); err != nil {
		return err
	}
	if len(req.Documents) > 0 {
		if err := h.workflow.SetDocumentKit(ctx, id, req.Documents); err != nil {
			return err
		}
	}

	applicant, ok := h.workflow.Applicant(id)
	if !ok {
		return domain.ErrApplicantNotFound
	}
	return c.JSON(http.StatusOK, toApplicantView(applicant))
}

// SetDocumentKit wholesale-replaces the applicant's document kit.
func (h *AdminHandler) SetDocumentKit(c echo.Context) error {
	var req documentKitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	id := c.Param("id")
	if err := h.workflow.SetDocumentKit(c.Request().Context(), id, req.Documents); err != nil {
		return err
	}
	applicant, ok := h.workflow.Applicant(id)
	if !ok {
		return domain.ErrApplicantNotFound
	}
	return c.JSON(http.StatusOK, toApplicantView(applicant))
}

// DocumentOptions returns the fixed kit option list.
func (h *AdminHandler) DocumentOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"options": docOptions})
}

// StaticProforma serves the admin-only placeholder documents.
func (h *AdminHandler) StaticProforma(c echo.Context) error {
	slug := c.Param("slug")
	title, ok := staticProformas[slug]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown proforma")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"slug":    slug,
		"title":   title,
		"content": "This document is issued by the administrator.",
	})
}

// AnalyticsReport returns the filtered event log with per-type counts.
// Query params: month (1-12), year, company, applicant, type; all optional.
func (h *AdminHandler) AnalyticsReport(c echo.Context) error {
	filter := ports.EventFilter{
		CompanyID:   c.QueryParam("company"),
		ApplicantID: c.QueryParam("applicant"),
		Type:        domain.EventType(c.QueryParam("type")),
	}
	var err error
	if filter.Month, err = intQueryParam(c, "month", 1, 12); err != nil {
		return err
	}
	if filter.Year, err = intQueryParam(c, "year", 1970, 9999); err != nil {
		return err
	}

	events, err := h.analytics.Filter(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, analyticsReport{
		Events: events,
		Counts: h.analytics.CountsByType(events),
		Total:  len(events),
	})
}

// AnalyticsClear truncates the event log.
func (h *AdminHandler) AnalyticsClear(c echo.Context) error {
	if err := h.analytics.Clear(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// intQueryParam parses an optional integer query parameter within [lo, hi];
// 0 means absent.
func intQueryParam(c echo.Context, name string, lo, hi int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return n, nil
}
