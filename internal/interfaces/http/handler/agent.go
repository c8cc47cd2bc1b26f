package handler

import (
	"github.com/gin-gonic/gin"

	infraprinting "github.com/possuite/backend/internal/infrastructure/printing"
)

// AgentHandler accepts print agent websocket connections. Agents run on
// POS terminals and bridge jobs to locally attached printers.
type AgentHandler struct {
	BaseHandler
	agents *infraprinting.AgentHub
}

// NewAgentHandler creates the agent handler
func NewAgentHandler(agents *infraprinting.AgentHub) *AgentHandler {
	return &AgentHandler{agents: agents}
}

// Connect upgrades an agent connection for one property. A reconnect
// replaces any existing agent for the property.
func (h *AgentHandler) Connect(c *gin.Context) {
	propertyID, ok := h.requireProperty(c)
	if !ok {
		return
	}
	if err := h.agents.HandleConnection(propertyID, c.Writer, c.Request); err != nil {
		return
	}
}
