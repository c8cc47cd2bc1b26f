package printing

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"
)

// DefaultDialTimeout bounds the connect+write window for one delivery
const DefaultDialTimeout = 5 * time.Second

// Transport delivers an encoded payload to a network printer
type Transport interface {
	Deliver(ctx context.Context, address string, port int, payload []byte) error
}

// TCPTransport writes raw bytes to a printer's jet-direct port. There is
// no application-level handshake: connect, write the full payload, close.
type TCPTransport struct {
	Timeout time.Duration
}

var _ Transport = (*TCPTransport)(nil)

// NewTCPTransport creates a transport with the given timeout; zero uses
// the default.
func NewTCPTransport(timeout time.Duration) *TCPTransport {
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	return &TCPTransport{Timeout: timeout}
}

// Deliver opens a timed TCP connection and writes the payload
func (t *TCPTransport) Deliver(ctx context.Context, address string, port int, payload []byte) error {
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(address, strconv.Itoa(port)))
	if err != nil {
		return fmt.Errorf("connect to printer %s:%d: %w", address, port, err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	written := 0
	for written < len(payload) {
		n, err := conn.Write(payload[written:])
		if err != nil {
			return fmt.Errorf("write to printer %s:%d: %w", address, port, err)
		}
		written += n
	}
	return nil
}
