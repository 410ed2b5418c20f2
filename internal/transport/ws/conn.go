package ws

import (
	"bingolive/internal/model"
	"encoding/json"
	"sync"
)

// Conn is the outbound side of one member's session: a bounded queue the
// room pushes updates into and the write pump drains. A member whose queue
// fills up is disconnected rather than allowed to stall the room.
type Conn struct {
	send chan []byte

	closeOnce sync.Once
	closed    chan struct{}
}

func newConn(queueSize int) *Conn {
	return &Conn{
		send:   make(chan []byte, queueSize),
		closed: make(chan struct{}),
	}
}

// Push implements game.Sink. It never blocks; a full queue closes the
// connection and reports failure.
func (c *Conn) Push(update *model.Update) bool {
	data, err := json.Marshal(update)
	if err != nil {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		c.close()
		return false
	}
}

func (c *Conn) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
	})
}
