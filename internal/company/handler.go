package company

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"cataloghub/internal/portal"
	"cataloghub/pkg/models"
)

type Handler struct {
	Repo    *Repo
	Portals *portal.Repo
}

func NewHandler(repo *Repo, portals *portal.Repo) *Handler {
	return &Handler{Repo: repo, Portals: portals}
}

// RegisterPublicRoutes exposes the company read surface used by viewer deep
// links: /portals/:portal_slug/companies[/:company_slug].
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/portals/:portal_slug/companies", h.list)
	rg.GET("/portals/:portal_slug/companies/:company_slug", h.getBySlug)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/portals/:portal_id/companies", h.create)
	rg.PUT("/editions/:edition_id/companies/:company_id/pages", h.assignPages)
}

func (h *Handler) list(c *gin.Context) {
	p, err := h.Portals.GetBySlug(c.Request.Context(), c.Param("portal_slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "portal lookup failed"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "portal not found"})
		return
	}

	items, err := h.Repo.ListByPortal(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(items),
		"items": items,
	})
}

func (h *Handler) getBySlug(c *gin.Context) {
	p, err := h.Portals.GetBySlug(c.Request.Context(), c.Param("portal_slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "portal lookup failed"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "portal not found"})
		return
	}

	comp, err := h.Repo.GetBySlug(c.Request.Context(), p.ID, c.Param("company_slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if comp == nil || !comp.Active {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, comp)
}

type createReq struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
	Active  *bool  `json:"active"`
}

func (h *Handler) create(c *gin.Context) {
	portalID := c.Param("portal_id")

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	companySlug := strings.TrimSpace(req.Slug)
	if companySlug == "" {
		companySlug = slug.Make(req.Name)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	comp := models.Company{
		ID:       uuid.NewString(),
		PortalID: portalID,
		Slug:     companySlug,
		Name:     req.Name,
		LogoURL:  strings.TrimSpace(req.LogoURL),
		Active:   active,
	}

	if err := h.Repo.Create(c.Request.Context(), comp); err != nil {
		// unique (portal, slug) also triggers here
		c.JSON(http.StatusConflict, gin.H{"error": "create failed"})
		return
	}

	c.JSON(http.StatusCreated, comp)
}

type assignReq struct {
	Pages []models.AssignmentPage `json:"pages"`
}

func (h *Handler) assignPages(c *gin.Context) {
	editionID := c.Param("edition_id")
	companyID := c.Param("company_id")

	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	for _, p := range req.Pages {
		if p.PageNumber < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page_number must be >= 1"})
			return
		}
		if strings.TrimSpace(p.ImageURL) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image_url required"})
			return
		}
	}

	comp, err := h.Repo.GetByID(c.Request.Context(), companyID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "company lookup failed"})
		return
	}
	if comp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
		return
	}

	if err := h.Repo.AssignPages(c.Request.Context(), uuid.NewString(), editionID, companyID, req.Pages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"edition_id": editionID,
		"company_id": companyID,
		"pages":      len(req.Pages),
	})
}
