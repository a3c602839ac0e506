// Package core defines the transport-facing contracts of the signaling
// relay: connection identity, the outbound frame type, and the interfaces
// the relay and its websocket adapter meet in the middle on.
package core

import "github.com/rindev0901/video-group-meeting/internal/domain"

// Frame is a marshaled outbound message.
type Frame []byte

// ConnID identifies one live connection. It is assigned by the transport
// at connect time, never reused while the connection lives, and invalid
// after disconnect.
type ConnID string

// SignalConnection abstracts a system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// Transport is the grouping and addressing surface the relay routes
// through. Sends are fire-and-forget: addressing a gone connection is a
// no-op, never an error.
type Transport interface {
	JoinRoom(id ConnID, room domain.RoomID)
	LeaveRoom(id ConnID, room domain.RoomID)
	MembersOf(room domain.RoomID) []ConnID
	RoomsOf(id ConnID) []domain.RoomID

	SendTo(id ConnID, event string, data any)
	BroadcastExcept(room domain.RoomID, sender ConnID, event string, data any)
	Broadcast(room domain.RoomID, event string, data any)
}

// Handler consumes inbound events the transport delivers. The transport
// guarantees serialized delivery: one event is handled to completion
// before the next is dispatched.
type Handler interface {
	HandleEvent(sender ConnID, event string, data []byte)
	HandleDisconnect(sender ConnID)
}
