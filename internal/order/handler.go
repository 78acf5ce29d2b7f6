package order

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cataloghub/internal/live"
	"cataloghub/internal/portal"
	"cataloghub/pkg/models"
)

type Handler struct {
	Resolver *Resolver
	Orders   *Repo
	Portals  *portal.Repo
	Hub      *live.Hub
}

func NewHandler(resolver *Resolver, orders *Repo, portals *portal.Repo, hub *live.Hub) *Handler {
	return &Handler{Resolver: resolver, Orders: orders, Portals: portals, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/editions/:edition_id/order", h.get)
	rg.PUT("/editions/:edition_id/order", h.save)
	rg.DELETE("/editions/:edition_id/order", h.reset)
}

// get returns the resolved company order including hidden companies, so the
// admin UI can re-show them.
func (h *Handler) get(c *gin.Context) {
	editionID := c.Param("edition_id")

	resolved, err := h.Resolver.Resolve(c.Request.Context(), editionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resolve failed"})
		return
	}
	hasCustom, err := h.Orders.HasCustomOrder(c.Request.Context(), editionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"has_custom_order": hasCustom,
		"companies":        resolved,
	})
}

type saveItem struct {
	CompanyID string `json:"company_id"`
	Position  int    `json:"position"`
	Visible   *bool  `json:"visible"`
}

type saveReq struct {
	Companies []saveItem `json:"companies"`
}

func (h *Handler) save(c *gin.Context) {
	editionID := c.Param("edition_id")

	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if len(req.Companies) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "companies required"})
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

	seen := make(map[string]bool, len(req.Companies))
	items := make([]models.OrderRecord, 0, len(req.Companies))
	for _, item := range req.Companies {
		companyID := strings.TrimSpace(item.CompanyID)
		if companyID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "company_id required"})
			return
		}
		if seen[companyID] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate company_id " + companyID})
			return
		}
		seen[companyID] = true

		visible := true
		if item.Visible != nil {
			visible = *item.Visible
		}
		items = append(items, models.OrderRecord{
			EditionID: editionID,
			CompanyID: companyID,
			PortalID:  ed.PortalID,
			Position:  item.Position,
			Visible:   visible,
		})
	}

	if err := h.Orders.Replace(c.Request.Context(), editionID, ed.PortalID, items); err != nil {
		// the transaction rolled back; the previous order is still in place
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	h.broadcast(live.EventOrderUpdate, ed)
	c.JSON(http.StatusOK, gin.H{
		"edition_id": editionID,
		"saved":      len(items),
	})
}

func (h *Handler) reset(c *gin.Context) {
	editionID := c.Param("edition_id")

	ed, err := h.Portals.GetEdition(c.Request.Context(), editionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "edition lookup failed"})
		return
	}
	if ed == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "edition not found"})
		return
	}

	if err := h.Orders.Reset(c.Request.Context(), editionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reset failed"})
		return
	}

	h.broadcast(live.EventOrderReset, ed)
	c.JSON(http.StatusOK, gin.H{"edition_id": editionID, "reset": true})
}

func (h *Handler) broadcast(eventType string, ed *models.Edition) {
	if h.Hub == nil {
		return
	}
	ev := live.CatalogEvent{
		Type:      eventType,
		PortalID:  ed.PortalID,
		EditionID: ed.ID,
		At:        time.Now().UTC(),
	}
	go h.Hub.Broadcast(ev)
}
