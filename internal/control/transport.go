// Package control queries a running daemon's live state over its local
// control socket.
//
// The wire protocol is a single framed request/response exchange: a 4-byte
// little-endian payload length followed by the payload, in both directions.
// Exactly one reply is delivered per request; there is no streaming and no
// retry at this layer.
package control

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"
)

// maxFrameSize bounds a reply frame. A header above this is corruption,
// not a legitimate reply.
const maxFrameSize = 1 << 20

// headerSize is the length-prefix size in bytes.
const headerSize = 4

// Conn is one open control-socket exchange.
type Conn interface {
	// Send writes one framed message.
	Send(payload []byte) error
	// Receive blocks for exactly one framed reply.
	Receive() ([]byte, error)
	// Close releases the socket. Safe to call after a failed Receive.
	Close() error
}

// Transport opens control sockets. The default implementation dials unix
// domain sockets; tests substitute fakes.
type Transport interface {
	Open(path string) (Conn, error)
}

// UnixTransport dials unix domain sockets with the framed protocol.
// Timeout, when non-zero, bounds the whole round trip as a deadline on the
// connection.
type UnixTransport struct {
	Timeout time.Duration
}

// Open dials the socket at path.
func (t UnixTransport) Open(path string) (Conn, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, err
	}
	if t.Timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(t.Timeout)); err != nil {
			conn.Close()
			return nil, err
		}
	}
	return &unixConn{conn: conn}, nil
}

type unixConn struct {
	conn net.Conn
}

// Send frames payload with its length header and writes it in one call.
func (c *unixConn) Send(payload []byte) error {
	msg := make([]byte, headerSize+len(payload))
	binary.LittleEndian.PutUint32(msg, uint32(len(payload)))
	copy(msg[headerSize:], payload)
	_, err := c.conn.Write(msg)
	return err
}

// Receive reads one length-prefixed frame.
func (c *unixConn) Receive() ([]byte, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(c.conn, header); err != nil {
		return nil, err
	}
	size := binary.LittleEndian.Uint32(header)
	if size > maxFrameSize {
		return nil, fmt.Errorf("reply frame of %d bytes exceeds limit %d", size, maxFrameSize)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(c.conn, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *unixConn) Close() error {
	return c.conn.Close()
}
