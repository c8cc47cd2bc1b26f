package handler

import (
	"github.com/gin-gonic/gin"

	appkds "github.com/possuite/backend/internal/application/kds"
	"github.com/possuite/backend/internal/infrastructure/realtime"
)

// KdsHandler serves kitchen display ticket operations and the realtime
// ticket stream.
type KdsHandler struct {
	BaseHandler
	tickets *appkds.TicketService
	hub     *realtime.Hub
}

// NewKdsHandler creates the KDS handler
func NewKdsHandler(tickets *appkds.TicketService, hub *realtime.Hub) *KdsHandler {
	return &KdsHandler{tickets: tickets, hub: hub}
}

// ListLive lists the active tickets on one display, oldest first
func (h *KdsHandler) ListLive(c *gin.Context) {
	displayID, ok := h.parseUUIDParam(c, "displayId")
	if !ok {
		return
	}
	tickets, err := h.tickets.ListLive(c.Request.Context(), displayID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tickets)
}

// Bump marks a ticket done. Bumping an already bumped ticket is a no-op.
func (h *KdsHandler) Bump(c *gin.Context) {
	ticketID, ok := h.parseID(c)
	if !ok {
		return
	}
	employeeID, ok := h.requireEmployee(c)
	if !ok {
		return
	}
	if err := h.tickets.Bump(c.Request.Context(), ticketID, employeeID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Recall brings a bumped ticket back to the display with every item
// reset to pending.
func (h *KdsHandler) Recall(c *gin.Context) {
	ticketID, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.tickets.Recall(c.Request.Context(), ticketID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MarkItemReady marks one ticket item ready
func (h *KdsHandler) MarkItemReady(c *gin.Context) {
	itemID, ok := h.parseUUIDParam(c, "itemId")
	if !ok {
		return
	}
	if err := h.tickets.MarkReady(c.Request.Context(), itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UnmarkItemReady returns a ready ticket item to pending
func (h *KdsHandler) UnmarkItemReady(c *gin.Context) {
	itemID, ok := h.parseUUIDParam(c, "itemId")
	if !ok {
		return
	}
	if err := h.tickets.UnmarkReady(c.Request.Context(), itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Heartbeat records display liveness
func (h *KdsHandler) Heartbeat(c *gin.Context) {
	displayID, ok := h.parseUUIDParam(c, "displayId")
	if !ok {
		return
	}
	if err := h.tickets.Heartbeat(c.Request.Context(), displayID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Stream upgrades to a websocket subscribed to one display's ticket
// events.
func (h *KdsHandler) Stream(c *gin.Context) {
	displayID, ok := h.parseUUIDParam(c, "displayId")
	if !ok {
		return
	}
	// The upgrade writes the handshake response itself
	if err := h.hub.HandleSubscriber(realtime.DisplayChannel(displayID), c.Writer, c.Request); err != nil {
		return
	}
}

// OpsStream upgrades to a websocket subscribed to the property's
// operator events (printer liveness, failed jobs).
func (h *KdsHandler) OpsStream(c *gin.Context) {
	propertyID, ok := h.requireProperty(c)
	if !ok {
		return
	}
	if err := h.hub.HandleSubscriber(realtime.PropertyOpsChannel(propertyID), c.Writer, c.Request); err != nil {
		return
	}
}
