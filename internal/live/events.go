package live

import "time"

const (
	EventOrderUpdate = "order.update"
	EventOrderReset  = "order.reset"
	EventPagesUpdate = "pages.update"
)

// CatalogEvent tells connected clients that an edition's composition inputs
// changed and the composed catalog should be re-fetched.
type CatalogEvent struct {
	Type      string    `json:"type"`
	PortalID  string    `json:"portal_id"`
	EditionID string    `json:"edition_id"`
	At        time.Time `json:"at"`
}
