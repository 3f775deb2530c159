package handlers

import (
	"net/http"

	"github.com/formhub/formhub-go/dto"
	"github.com/formhub/formhub-go/response"
	"github.com/formhub/formhub-go/services"
	"github.com/formhub/formhub-go/utils"
	"github.com/gin-gonic/gin"
)

type SiteHandler struct {
	svc *services.SiteService
}

func NewSiteHandler(svc *services.SiteService) *SiteHandler {
	return &SiteHandler{svc: svc}
}

// CreateSite godoc
// @Summary Create a site (super admin)
// @Tags sites
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} models.Site
// @Failure 400 {object} response.ErrorResponse "Name or subdomain taken"
// @Failure 403 {object} response.ErrorResponse
// @Router /sites [post]
func (h *SiteHandler) CreateSite(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input dto.CreateSiteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	site, err := h.svc.CreateSite(actor, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, site)
}

func (h *SiteHandler) ListSites(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	skip := utils.ParseQueryInt(c, "skip", 0)
	limit := utils.ParseQueryInt(c, "limit", 100)

	sites, err := h.svc.ListSites(actor, skip, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sites)
}

func (h *SiteHandler) GetSiteByID(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid site id"})
		return
	}

	site, err := h.svc.GetSite(actor, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}

func (h *SiteHandler) UpdateSite(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid site id"})
		return
	}

	var input dto.UpdateSiteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	site, err := h.svc.UpdateSite(actor, id, input)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, site)
}

func (h *SiteHandler) DeleteSite(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid site id"})
		return
	}

	if err := h.svc.DeleteSite(actor, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
