package relay

import (
	"github.com/rs/zerolog/log"

	"github.com/rindev0901/video-group-meeting/internal/core"
	"github.com/rindev0901/video-group-meeting/internal/domain"
)

// roster computes the live presence list for a room on demand. Members
// without a presence record (mid-teardown) are skipped.
func (r *Relay) roster(room domain.RoomID) []core.RosterEntry {
	members := r.transport.MembersOf(room)
	entries := make([]core.RosterEntry, 0, len(members))
	for _, id := range members {
		p, ok := r.registry.Get(id)
		if !ok {
			continue
		}
		entries = append(entries, core.RosterEntry{UserID: id, Info: p})
	}
	return entries
}

// checkUser is advisory: it reports whether the name is held by a current
// member at this instant. A check-then-join from two connections can
// still race; each individual event is atomic, the pair is not.
func (r *Relay) checkUser(sender core.ConnID, p core.CheckUserIn) {
	if p.RoomID == "" || p.UserName == "" {
		dropPayload(sender, core.EvCheckUser, "missing roomId or userName")
		return
	}
	taken := false
	for _, e := range r.roster(p.RoomID) {
		if e.Info.UserName == p.UserName {
			taken = true
			break
		}
	}
	log.Info().Str("module", "relay").Str("conn", string(sender)).Str("room", string(p.RoomID)).
		Str("name", p.UserName).Bool("taken", taken).Msg("name check")
	r.transport.SendTo(sender, core.EvErrorUserExist, core.UserExistOut{Error: taken})
}

func (r *Relay) joinRoom(sender core.ConnID, p core.JoinRoomIn) {
	if p.RoomID == "" {
		dropPayload(sender, core.EvJoinRoom, "missing roomId")
		return
	}
	presence, err := domain.NewPresence(p.UserName)
	if err != nil {
		dropPayload(sender, core.EvJoinRoom, err.Error())
		return
	}

	// Single-room invariant: joining again means leaving the old room
	// first, with its own FE-user-leave broadcast.
	for _, prev := range r.transport.RoomsOf(sender) {
		r.leaveOne(sender, prev)
	}

	r.registry.Put(sender, presence)
	r.transport.JoinRoom(sender, p.RoomID)
	log.Info().Str("module", "relay").Str("conn", string(sender)).Str("room", string(p.RoomID)).
		Str("name", presence.UserName).Msg("joined room")

	// Full roster including the joiner; every other member receives it
	// and filters its own name out client-side.
	r.transport.BroadcastExcept(p.RoomID, sender, core.EvUserJoin, core.UserJoinOut{Users: r.roster(p.RoomID)})
}

func (r *Relay) leaveRoom(sender core.ConnID, p core.LeaveRoomIn) {
	if p.RoomID == "" {
		dropPayload(sender, core.EvLeaveRoom, "missing roomId")
		return
	}
	if _, ok := r.registry.Get(sender); !ok {
		dropPayload(sender, core.EvLeaveRoom, "not joined")
		return
	}
	r.leaveOne(sender, p.RoomID)
	r.registry.Delete(sender)
	r.chat.Forget(sender)
}

// leaveOne removes the sender from one room and tells the remaining
// members. It leaves the presence record alone so a rejoin can overwrite
// it and a disconnect can delete it once, after all rooms are left.
func (r *Relay) leaveOne(sender core.ConnID, room domain.RoomID) {
	name := ""
	if p, ok := r.registry.Get(sender); ok {
		name = p.UserName
	}
	r.transport.LeaveRoom(sender, room)
	r.transport.Broadcast(room, core.EvUserLeave, core.UserLeaveOut{UserID: sender, UserName: name})
	log.Info().Str("module", "relay").Str("conn", string(sender)).Str("room", string(room)).Msg("left room")
}

func (r *Relay) toggleCameraAudio(sender core.ConnID, p core.ToggleCameraAudioIn) {
	if p.RoomID == "" {
		dropPayload(sender, core.EvToggleCameraAudio, "missing roomId")
		return
	}
	kind, err := domain.ParseMediaKind(p.SwitchTarget)
	if err != nil {
		dropPayload(sender, core.EvToggleCameraAudio, err.Error())
		return
	}
	if !r.registry.Update(sender, func(pr *domain.Presence) { _ = pr.Toggle(kind) }) {
		dropPayload(sender, core.EvToggleCameraAudio, "not joined")
		return
	}
	r.transport.BroadcastExcept(p.RoomID, sender, core.EvToggleCamera, core.ToggleCameraOut{UserID: sender, SwitchTarget: kind})
}
