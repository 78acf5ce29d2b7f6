package pages

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cataloghub/internal/live"
	"cataloghub/internal/portal"
	"cataloghub/pkg/models"
)

type Handler struct {
	Repo    *Repo
	Portals *portal.Repo
	Hub     *live.Hub
}

func NewHandler(repo *Repo, portals *portal.Repo, hub *live.Hub) *Handler {
	return &Handler{Repo: repo, Portals: portals, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/editions/:edition_id/pages", h.list)
	rg.POST("/editions/:edition_id/pages", h.create)
	rg.DELETE("/pages/:page_id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	editionID := c.Param("edition_id")

	kinds := []models.PageKind{models.KindIntro, models.KindOutro}
	if k := strings.TrimSpace(c.Query("kind")); k != "" {
		kind := models.PageKind(k)
		if kind != models.KindIntro && kind != models.KindOutro {
			c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be intro or outro"})
			return
		}
		kinds = []models.PageKind{kind}
	}

	items := make([]models.CatalogPage, 0)
	for _, kind := range kinds {
		got, err := h.Repo.ListByKind(c.Request.Context(), editionID, kind)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
			return
		}
		items = append(items, got...)
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(items),
		"items": items,
	})
}

type createReq struct {
	Kind     string `json:"kind"`
	Order    int    `json:"order"`
	ImageURL string `json:"image_url"`
}

func (h *Handler) create(c *gin.Context) {
	editionID := c.Param("edition_id")

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	kind := models.PageKind(strings.TrimSpace(req.Kind))
	if kind != models.KindIntro && kind != models.KindOutro {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be intro or outro"})
		return
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_url required"})
		return
	}

	ed, err := h.Portals.GetEdition(c.Request.Context(), editionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "edition lookup failed"})
		return
	}
	if ed == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "edition not found"})
		return
	}

	p := models.CatalogPage{
		ID:        uuid.NewString(),
		EditionID: editionID,
		Kind:      kind,
		Order:     req.Order,
		ImageURL:  strings.TrimSpace(req.ImageURL),
	}

	if err := h.Repo.Create(c.Request.Context(), p); err != nil {
		// unique (edition, kind, ord) also triggers here
		c.JSON(http.StatusConflict, gin.H{"error": "create failed"})
		return
	}

	h.broadcast(ed)
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) remove(c *gin.Context) {
	pageID := c.Param("page_id")

	p, err := h.Repo.Get(c.Request.Context(), pageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), pageID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	ed, err := h.Portals.GetEdition(c.Request.Context(), p.EditionID)
	if err == nil && ed != nil {
		h.broadcast(ed)
	}

	c.JSON(http.StatusOK, gin.H{"deleted": pageID})
}

func (h *Handler) broadcast(ed *models.Edition) {
	if h.Hub == nil {
		return
	}
	ev := live.CatalogEvent{
		Type:      live.EventPagesUpdate,
		PortalID:  ed.PortalID,
		EditionID: ed.ID,
		At:        time.Now().UTC(),
	}
	go h.Hub.Broadcast(ev)
}
