package net

import (
	"strings"

	"GraphicsStudio/internal/state"
)

// JoinScheme prefixes the links a host hands out to clients.
const JoinScheme = "studio://"

// Message types.
const (
	TypeShape    = "shape"
	TypeClear    = "clear"
	TypeSnapshot = "snapshot"
)

// Message is one frame of the sharing protocol.
type Message struct {
	Type   string        `json:"type"`
	Shape  *state.Shape  `json:"shape,omitempty"`
	Owner  string        `json:"owner,omitempty"`
	Shapes []state.Shape `json:"shapes,omitempty"`
}

// JoinLink returns the link clients use to reach a host at addr.
func JoinLink(addr string) string {
	return JoinScheme + addr
}

// ParseJoinLink extracts "host:port" from a join link.
func ParseJoinLink(link string) (string, bool) {
	if !strings.HasPrefix(link, JoinScheme) {
		return "", false
	}
	addr := strings.TrimSuffix(strings.TrimPrefix(link, JoinScheme), "/")
	return addr, addr != ""
}

// apply updates surface from a message received from another site. It
// reports whether the surface accepted the message.
func apply(surface *state.Surface, msg Message) bool {
	switch msg.Type {
	case TypeShape:
		return msg.Shape != nil && surface.Merge(*msg.Shape)
	case TypeClear:
		surface.ClearOwner(msg.Owner)
		return true
	case TypeSnapshot:
		surface.Sync(msg.Shapes)
		return true
	}
	return false
}
