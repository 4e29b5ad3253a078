package models

type Role int

const (
	User Role = iota
	Assistant
	System
	// Typing marks a transient placeholder shown while a request is in flight.
	Typing
)

func (r Role) String() string {
	switch r {
	case User:
		return "user"
	case Assistant:
		return "assistant"
	case System:
		return "system"
	case Typing:
		return "typing"
	}
	return "unknown"
}

type Message struct {
	ID      string // Set for Typing placeholders, empty otherwise
	Content string
	Role    Role
}

// ConnectionStatus is the backend reachability shown in the header.
type ConnectionStatus int

const (
	ConnectionChecking ConnectionStatus = iota
	ConnectionConnected
	ConnectionError
)

func (s ConnectionStatus) String() string {
	switch s {
	case ConnectionConnected:
		return "connected"
	case ConnectionError:
		return "error"
	}
	return "checking"
}
