package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docukit/approval-system/internal/core/domain"
	"github.com/docukit/approval-system/internal/core/ports"
)

type ApplicantHandler struct {
	workflow ports.WorkflowService
}

func NewApplicantHandler(workflow ports.WorkflowService) *ApplicantHandler {
	return &ApplicantHandler{workflow: workflow}
}

// Dashboard returns the applicant record with its derived stage.
func (h *ApplicantHandler) Dashboard(c echo.Context) error {
	applicant, ok := h.workflow.Applicant(c.Param("id"))
	if !ok {
		return domain.ErrApplicantNotFound
	}
	return c.JSON(http.StatusOK, toApplicantView(applicant))
}

// GetProforma1 returns the applicant's proforma 1 text.
func (h *ApplicantHandler) GetProforma1(c echo.Context) error {
	applicant, ok := h.workflow.Applicant(c.Param("id"))
	if !ok {
		return domain.ErrApplicantNotFound
	}
	return c.JSON(http.StatusOK, proformaResponse{Content: applicant.Proforma1})
}

// SaveProforma1 overwrites the proforma 1 text. Rejected with 409 once the
// applicant has submitted.
func (h *ApplicantHandler) SaveProforma1(c echo.Context) error {
	var req proformaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.workflow.SaveProforma1(c.Request().Context(), c.Param("id"), req.Content); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, proformaResponse{Content: req.Content})
}

// Submit moves the applicant from draft to submitted. Blank content is
// rejected; re-submitting is a no-op.
//
// @Summary      Submit proforma 1
// @Tags         applicant
// @Produce      json
// @Param        id  path  string  true  "Applicant id"
// @Success      200  {object}  applicantView
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /applicant/{id}/proforma-1/submit [post]
func (h *ApplicantHandler) Submit(c echo.Context) error {
	id := c.Param("id")
	if err := h.workflow.SubmitProforma1(c.Request().Context(), id); err != nil {
		return err
	}
	applicant, ok := h.workflow.Applicant(id)
	if !ok {
		return domain.ErrApplicantNotFound
	}
	return c.JSON(http.StatusOK, toApplicantView(applicant))
}

// Documents returns the assigned document kit.
func (h *ApplicantHandler) Documents(c echo.Context) error {
	applicant, ok := h.workflow.Applicant(c.Param("id"))
	if !ok {
		return domain.ErrApplicantNotFound
	}
	return c.JSON(http.StatusOK, map[string]any{
		"approved":  applicant.Approved,
		"documents": applicant.Documents,
	})
}
