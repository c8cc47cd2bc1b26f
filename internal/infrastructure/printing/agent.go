package printing

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/possuite/backend/internal/domain/shared"
)

// MessageType discriminates agent bridge messages
type MessageType string

const (
	MessagePrint  MessageType = "print"
	MessageResult MessageType = "result"
	MessageStatus MessageType = "status"
	MessagePing   MessageType = "ping"
	MessagePong   MessageType = "pong"
)

// PrintMessage is pushed to the agent for a serial/usb-attached printer.
// Data marshals to base64 over the wire.
type PrintMessage struct {
	Type        MessageType `json:"type"`
	JobID       uuid.UUID   `json:"jobId"`
	PrinterID   uuid.UUID   `json:"printerId"`
	Data        []byte      `json:"data"`
	PrinterType string      `json:"printerType"` // serial | usb
	Port        string      `json:"port,omitempty"`
}

// ResultMessage reports delivery outcome back from the agent
type ResultMessage struct {
	Type    MessageType `json:"type"`
	JobID   uuid.UUID   `json:"jobId"`
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
}

// StatusMessage is the liveness probe pair: the agent sends status/ping,
// the server answers pong.
type StatusMessage struct {
	Type MessageType `json:"type"`
}

// ResultHandler consumes delivery results reported by an agent
type ResultHandler func(ctx context.Context, propertyID uuid.UUID, result ResultMessage)

type agentConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (a *agentConn) writeJSON(v interface{}) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	return a.conn.WriteJSON(v)
}

// AgentHub tracks one connected print agent per property and relays
// print jobs for locally-attached printers. The hub only implements the
// message contract; device discovery and the serial transport live in
// the agent process.
type AgentHub struct {
	mu       sync.RWMutex
	agents   map[uuid.UUID]*agentConn
	onResult ResultHandler
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewAgentHub creates an agent hub
func NewAgentHub(logger *zap.Logger) *AgentHub {
	return &AgentHub{
		agents: make(map[uuid.UUID]*agentConn),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// SetResultHandler registers the consumer for inbound result messages
func (h *AgentHub) SetResultHandler(fn ResultHandler) {
	h.onResult = fn
}

// IsConnected reports whether a property has a live agent
func (h *AgentHub) IsConnected(propertyID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.agents[propertyID]
	return ok
}

// SendPrint pushes a print message to the property's agent
func (h *AgentHub) SendPrint(propertyID uuid.UUID, msg PrintMessage) error {
	msg.Type = MessagePrint
	h.mu.RLock()
	agent, ok := h.agents[propertyID]
	h.mu.RUnlock()
	if !ok {
		return shared.ErrAgentOffline
	}
	if err := agent.writeJSON(msg); err != nil {
		h.logger.Warn("agent write failed, dropping connection",
			zap.String("property_id", propertyID.String()),
			zap.Error(err))
		h.disconnect(propertyID, agent)
		return shared.ErrAgentOffline
	}
	return nil
}

// HandleConnection upgrades an HTTP request to the agent websocket and
// serves its read loop until the agent disconnects. One agent per
// property; a new connection replaces the old one.
func (h *AgentHub) HandleConnection(propertyID uuid.UUID, w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	agent := &agentConn{conn: conn}

	h.mu.Lock()
	if old, ok := h.agents[propertyID]; ok {
		old.conn.Close()
	}
	h.agents[propertyID] = agent
	h.mu.Unlock()

	h.logger.Info("print agent connected", zap.String("property_id", propertyID.String()))
	h.readLoop(r.Context(), propertyID, agent)
	h.disconnect(propertyID, agent)
	h.logger.Info("print agent disconnected", zap.String("property_id", propertyID.String()))
	return nil
}

func (h *AgentHub) readLoop(ctx context.Context, propertyID uuid.UUID, agent *agentConn) {
	for {
		_, raw, err := agent.conn.ReadMessage()
		if err != nil {
			return
		}
		var envelope StatusMessage
		if err := json.Unmarshal(raw, &envelope); err != nil {
			h.logger.Warn("malformed agent message", zap.Error(err))
			continue
		}
		switch envelope.Type {
		case MessageStatus, MessagePing:
			if err := agent.writeJSON(StatusMessage{Type: MessagePong}); err != nil {
				return
			}
		case MessageResult:
			var result ResultMessage
			if err := json.Unmarshal(raw, &result); err != nil {
				h.logger.Warn("malformed result message", zap.Error(err))
				continue
			}
			if h.onResult != nil {
				h.onResult(ctx, propertyID, result)
			}
		default:
			h.logger.Debug("unknown agent message type", zap.String("type", string(envelope.Type)))
		}
	}
}

func (h *AgentHub) disconnect(propertyID uuid.UUID, agent *agentConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.agents[propertyID]; ok && current == agent {
		delete(h.agents, propertyID)
	}
	agent.conn.Close()
}
