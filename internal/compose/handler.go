package compose

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cataloghub/internal/portal"
)

type Handler struct {
	Assembler *Assembler
	Portals   *portal.Repo
}

func NewHandler(assembler *Assembler, portals *portal.Repo) *Handler {
	return &Handler{Assembler: assembler, Portals: portals}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/portals/:portal_slug/editions", h.listEditions)
	rg.GET("/portals/:portal_slug/editions/:edition_slug/catalog", h.catalog)
}

func (h *Handler) listEditions(c *gin.Context) {
	p, err := h.Portals.GetBySlug(c.Request.Context(), c.Param("portal_slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "portal lookup failed"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "portal not found"})
		return
	}

	items, err := h.Portals.ListEditions(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(items),
		"items": items,
	})
}

// catalog is the sole contract between the composition engine and the
// viewer. An unknown portal or edition is 404; an edition that resolves to
// zero pages is 200 with total 0, so the client can render an explicit
// empty-catalog state instead of a not-found one.
func (h *Handler) catalog(c *gin.Context) {
	p, err := h.Portals.GetBySlug(c.Request.Context(), c.Param("portal_slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "portal lookup failed"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "portal not found"})
		return
	}

	ed, err := h.Portals.GetEditionBySlug(c.Request.Context(), p.ID, c.Param("edition_slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "edition lookup failed"})
		return
	}
	if ed == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "edition not found"})
		return
	}

	cat, err := h.Assembler.Assemble(c.Request.Context(), ed.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "compose failed"})
		return
	}

	cat.PortalSlug = p.Slug
	cat.EditionSlug = ed.Slug
	cat.EditionName = ed.Name

	c.JSON(http.StatusOK, cat)
}
