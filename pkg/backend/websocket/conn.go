package websocket

import "golang.org/x/net/websocket"

// Conn sends and receives log output as binary websocket messages.
type Conn websocket.Conn

// Wrap wraps websocket.Conn.
func Wrap(conn *websocket.Conn) *Conn {
	return (*Conn)(conn)
}

// Write implements io.Writer. Each call is sent as one message.
func (c *Conn) Write(p []byte) (int, error) {
	if err := websocket.Message.Send((*websocket.Conn)(c), p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// ReadChunk receives one message.
func (c *Conn) ReadChunk() (chunk []byte, err error) {
	err = websocket.Message.Receive((*websocket.Conn)(c), &chunk)
	return
}

// Close closes the connection.
func (c *Conn) Close() error {
	return (*websocket.Conn)(c).Close()
}
