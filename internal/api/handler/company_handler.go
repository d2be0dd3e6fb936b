package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docukit/approval-system/internal/core/domain"
	"github.com/docukit/approval-system/internal/core/ports"
)

type CompanyHandler struct {
	workflow ports.WorkflowService
}

func NewCompanyHandler(workflow ports.WorkflowService) *CompanyHandler {
	return &CompanyHandler{workflow: workflow}
}

// Dashboard returns the company record with its applicants resolved in list
// order.
func (h *CompanyHandler) Dashboard(c echo.Context) error {
	company, ok := h.workflow.Company(c.Param("id"))
	if !ok {
		return domain.ErrCompanyNotFound
	}

	applicants := make([]applicantView, 0, len(company.Applicants))
	for _, id := range company.Applicants {
		if a, ok := h.workflow.Applicant(id); ok {
			applicants = append(applicants, toApplicantView(a))
		}
	}
	return c.JSON(http.StatusOK, companyDashboard{Company: company, Applicants: applicants})
}

// GetProforma2 returns the company's proforma 2 text.
func (h *CompanyHandler) GetProforma2(c echo.Context) error {
	company, ok := h.workflow.Company(c.Param("id"))
	if !ok {
		return domain.ErrCompanyNotFound
	}
	return c.JSON(http.StatusOK, proformaResponse{Content: company.Proforma2})
}

// SaveProforma2 overwrites the proforma 2 text. Callable any number of times.
func (h *CompanyHandler) SaveProforma2(c echo.Context) error {
	var req proformaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.workflow.SaveProforma2(c.Request().Context(), c.Param("id"), req.Content); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, proformaResponse{Content: req.Content})
}

// CreateApplicant creates an applicant under this company and returns the
// generated login.
//
// @Summary      Create an applicant
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Company id"
// @Param        body  body      createApplicantRequest  true  "Applicant name"
// @Success      201   {object}  ports.ApplicantGrant
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /company/{id}/applicants [post]
func (h *CompanyHandler) CreateApplicant(c echo.Context) error {
	var req createApplicantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	grant, err := h.workflow.CreateApplicant(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, grant)
}
