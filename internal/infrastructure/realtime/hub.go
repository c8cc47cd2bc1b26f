package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
	sendBuffer = 32
)

type subscriber struct {
	send chan []byte
	conn *websocket.Conn
	done chan struct{}
	once sync.Once
}

// shutdown ends the write loop and closes the socket. The send channel
// is never closed: concurrent publishers may still hold a reference,
// and a send on a closed channel panics where a send to an abandoned
// buffered channel is merely ignored.
func (s *subscriber) shutdown() {
	s.once.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

// Hub fans channel payloads out to websocket subscribers in this
// process. Kitchen displays subscribe to their own channel; operator
// dashboards subscribe to the property ops channel. A slow subscriber
// is dropped rather than allowed to stall the channel.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*subscriber]struct{}
	logger      *zap.Logger
	upgrader    websocket.Upgrader
}

var _ Publisher = (*Hub)(nil)

// NewHub creates a websocket hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string]map[*subscriber]struct{}),
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Publish implements Publisher over the local subscriber set
func (h *Hub) Publish(_ context.Context, channel string, payload []byte) error {
	h.mu.RLock()
	subs := make([]*subscriber, 0, len(h.subscribers[channel]))
	for sub := range h.subscribers[channel] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		select {
		case sub.send <- payload:
		default:
			h.logger.Warn("dropping slow subscriber", zap.String("channel", channel))
			h.remove(channel, sub)
		}
	}
	return nil
}

// SubscriberCount reports the live subscribers on a channel
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[channel])
}

// HandleSubscriber upgrades the request and streams the channel to the
// client until it disconnects.
func (h *Hub) HandleSubscriber(channel string, w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	sub := &subscriber{
		send: make(chan []byte, sendBuffer),
		conn: conn,
		done: make(chan struct{}),
	}

	h.mu.Lock()
	if h.subscribers[channel] == nil {
		h.subscribers[channel] = make(map[*subscriber]struct{})
	}
	h.subscribers[channel][sub] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("subscriber connected", zap.String("channel", channel))

	go h.writeLoop(channel, sub)
	h.readLoop(sub)

	h.remove(channel, sub)
	h.logger.Debug("subscriber disconnected", zap.String("channel", channel))
	return nil
}

// readLoop consumes control frames; subscribers never send data
func (h *Hub) readLoop(sub *subscriber) {
	sub.conn.SetReadLimit(512)
	_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(channel string, sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-sub.done:
			return
		case payload := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.remove(channel, sub)
				return
			}
		case <-ticker.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(channel, sub)
				return
			}
		}
	}
}

func (h *Hub) remove(channel string, sub *subscriber) {
	h.mu.Lock()
	if subs, ok := h.subscribers[channel]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.subscribers, channel)
		}
	}
	h.mu.Unlock()

	sub.shutdown()
}
