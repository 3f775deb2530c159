package handlers

import (
	"net/http"
	"strconv"

	"github.com/formhub/formhub-go/dto"
	"github.com/formhub/formhub-go/response"
	"github.com/formhub/formhub-go/services"
	"github.com/formhub/formhub-go/utils"
	"github.com/gin-gonic/gin"
)

type FormHandler struct {
	svc    *services.FormService
	report *services.ReportService
}

func NewFormHandler(svc *services.FormService, report *services.ReportService) *FormHandler {
	return &FormHandler{svc: svc, report: report}
}

// CreateForm godoc
// @Summary Create a form with a field schema
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} models.Form
// @Failure 400 {object} response.ErrorResponse "Invalid field schema"
// @Failure 403 {object} response.ErrorResponse
// @Router /forms [post]
func (h *FormHandler) CreateForm(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input dto.CreateFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	form, err := h.svc.CreateForm(actor, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, form)
}

func (h *FormHandler) ListForms(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var siteID *uint
	if id, err := utils.ParseQueryUintParam(c, "site_id"); err == nil {
		siteID = &id
	}
	skip := utils.ParseQueryInt(c, "skip", 0)
	limit := utils.ParseQueryInt(c, "limit", 100)

	forms, err := h.svc.ListForms(actor, siteID, skip, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, forms)
}

func (h *FormHandler) GetFormByID(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid form id"})
		return
	}

	form, err := h.svc.GetForm(actor, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) UpdateForm(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid form id"})
		return
	}

	var input dto.UpdateFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	form, err := h.svc.UpdateForm(actor, id, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) DeleteForm(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid form id"})
		return
	}

	if err := h.svc.DeleteForm(actor, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitResponse godoc
// @Summary Submit a response against a form's field schema
// @Tags forms
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} models.FormResponse
// @Failure 400 {object} response.ErrorResponse "Submission does not match schema"
// @Failure 404 {object} response.ErrorResponse
// @Router /forms/{id}/submit [post]
func (h *FormHandler) SubmitResponse(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	formID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid form id"})
		return
	}

	var input dto.SubmitFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.svc.SubmitResponse(actor, formID, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FormHandler) ListResponses(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	formID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid form id"})
		return
	}

	responses, err := h.svc.ListResponses(actor, formID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses)
}

// UploadFile godoc
// @Summary Attach an uploaded file to a form response
// @Tags forms
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param response_id query int true "Form response the file belongs to"
// @Param file formData file true "File to upload"
// @Success 201 {object} models.UploadedFile
// @Failure 400 {object} response.ErrorResponse
// @Router /forms/{id}/upload [post]
func (h *FormHandler) UploadFile(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	formID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid form id"})
		return
	}
	responseID, err := strconv.ParseUint(c.Query("response_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid response id"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "missing file"})
		return
	}

	file, err := h.svc.UploadFile(c.Request.Context(), actor, formID, uint(responseID), header)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, file)
}

func (h *FormHandler) GenerateResponseReport(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	formID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid form id"})
		return
	}
	responseID, err := utils.ParseIDParam(c, "responseId")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid response id"})
		return
	}

	path, err := h.report.GenerateResponseReport(c.Request.Context(), actor, formID, responseID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ReportResponse{Path: path})
}

func (h *FormHandler) GenerateSummaryReport(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	formID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid form id"})
		return
	}

	path, err := h.report.GenerateSummaryReport(c.Request.Context(), actor, formID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ReportResponse{Path: path})
}
