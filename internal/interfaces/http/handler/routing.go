package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	approuting "github.com/possuite/backend/internal/application/routing"
)

// RoutingHandler serves print class and route configuration plus the
// routing resolution preview.
type RoutingHandler struct {
	BaseHandler
	config   *approuting.ConfigService
	resolver *approuting.ResolverService
}

// NewRoutingHandler creates the routing handler
func NewRoutingHandler(config *approuting.ConfigService, resolver *approuting.ResolverService) *RoutingHandler {
	return &RoutingHandler{config: config, resolver: resolver}
}

type createPrintClassRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// CreatePrintClass creates a print class
func (h *RoutingHandler) CreatePrintClass(c *gin.Context) {
	propertyID, ok := h.requireProperty(c)
	if !ok {
		return
	}
	var req createPrintClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	class, err := h.config.CreatePrintClass(c.Request.Context(), propertyID, req.Name, req.Code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, class)
}

// ListPrintClasses lists the property's print classes
func (h *RoutingHandler) ListPrintClasses(c *gin.Context) {
	propertyID, ok := h.requireProperty(c)
	if !ok {
		return
	}
	classes, err := h.config.ListPrintClasses(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, classes)
}

type assignPrintClassRequest struct {
	PrintClassID uuid.UUID `json:"print_class_id" binding:"required"`
}

// AssignPrintClass assigns a print class to a menu item
func (h *RoutingHandler) AssignPrintClass(c *gin.Context) {
	menuItemID, ok := h.parseID(c)
	if !ok {
		return
	}
	var req assignPrintClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.config.AssignPrintClass(c.Request.Context(), menuItemID, req.PrintClassID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ClearPrintClass removes the print class from a menu item. The item
// stops routing anywhere until a class is assigned again.
func (h *RoutingHandler) ClearPrintClass(c *gin.Context) {
	menuItemID, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.config.ClearPrintClass(c.Request.Context(), menuItemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

type createRouteRequest struct {
	PrintClassID  uuid.UUID  `json:"print_class_id" binding:"required"`
	OrderDeviceID uuid.UUID  `json:"order_device_id" binding:"required"`
	Scope         string     `json:"scope" binding:"required,oneof=rvc property global"`
	RvcID         *uuid.UUID `json:"rvc_id"`
}

// CreateRoute binds a print class to an order device at one scope tier
func (h *RoutingHandler) CreateRoute(c *gin.Context) {
	propertyID, ok := h.requireProperty(c)
	if !ok {
		return
	}
	var req createRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	switch req.Scope {
	case "rvc":
		if req.RvcID == nil {
			h.BadRequest(c, "rvc_id is required for rvc scoped routes")
			return
		}
		route, err := h.config.CreateRvcRoute(c.Request.Context(), req.PrintClassID, req.OrderDeviceID, *req.RvcID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Created(c, route)
	case "property":
		route, err := h.config.CreatePropertyRoute(c.Request.Context(), propertyID, req.PrintClassID, req.OrderDeviceID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Created(c, route)
	default:
		route, err := h.config.CreateGlobalRoute(c.Request.Context(), propertyID, req.PrintClassID, req.OrderDeviceID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Created(c, route)
	}
}

// ListRoutes lists the property's routes across all scopes
func (h *RoutingHandler) ListRoutes(c *gin.Context) {
	propertyID, ok := h.requireProperty(c)
	if !ok {
		return
	}
	routes, err := h.config.ListRoutes(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, routes)
}

// DeleteRoute removes a route
func (h *RoutingHandler) DeleteRoute(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.config.DeleteRoute(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Resolve previews where a menu item would route within a revenue
// center, without sending anything.
func (h *RoutingHandler) Resolve(c *gin.Context) {
	menuItemID, ok := h.parseUUIDParam(c, "menuItemId")
	if !ok {
		return
	}
	rvcID, ok := h.parseUUIDParam(c, "rvcId")
	if !ok {
		return
	}
	resolution, err := h.resolver.ResolveDevices(c.Request.Context(), menuItemID, rvcID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resolution)
}
