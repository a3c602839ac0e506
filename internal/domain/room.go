package domain

// RoomID is supplied by the joining client. Rooms exist implicitly:
// a room exists iff its membership set is non-empty, so there is no
// room entity beyond the identifier.
type RoomID string
