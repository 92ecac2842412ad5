package session

import "ballpit/protocol"

// Conn is a viewer. Send must not block the session for long; transports
// queue or drop.
type Conn interface {
	Send([]byte) error
	Close() error
}

// Join: issued once after hello parsed
type Join struct {
	Conn  Conn
	Name  string
	Reply chan<- JoinResult
}

type JoinResult struct {
	ViewerID string
	Welcome  protocol.Welcome
}

// Leave: issued on disconnect
type Leave struct {
	ViewerID string
}

// Control: pause, resume, reset or step from a joined viewer; others are ignored
type Control struct {
	ViewerID string
	Action   string
}
