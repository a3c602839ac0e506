// Package relay implements the signaling state machine: it validates the
// inbound event union, maintains presence records and room membership,
// and fans call-setup and presence changes out to exactly the right
// peers. Media bytes never pass through here; once signaling completes
// they flow peer-to-peer.
package relay

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/rindev0901/video-group-meeting/internal/app"
	"github.com/rindev0901/video-group-meeting/internal/core"
)

type Relay struct {
	registry  *app.Registry
	transport core.Transport
	chat      *ChatLimiter
}

func New(registry *app.Registry, transport core.Transport, chat *ChatLimiter) *Relay {
	return &Relay{
		registry:  registry,
		transport: transport,
		chat:      chat,
	}
}

// HandleEvent implements core.Handler. A payload that fails to decode or
// validate is dropped and logged; no partial mutation happens.
func (r *Relay) HandleEvent(sender core.ConnID, event string, data []byte) {
	switch event {
	case core.EvCheckUser:
		var p core.CheckUserIn
		if decode(sender, event, data, &p) {
			r.checkUser(sender, p)
		}
	case core.EvJoinRoom:
		var p core.JoinRoomIn
		if decode(sender, event, data, &p) {
			r.joinRoom(sender, p)
		}
	case core.EvCallUser:
		var p core.CallUserIn
		if decode(sender, event, data, &p) {
			r.callUser(sender, p)
		}
	case core.EvAcceptCall:
		var p core.AcceptCallIn
		if decode(sender, event, data, &p) {
			r.acceptCall(sender, p)
		}
	case core.EvSendMessage:
		var p core.SendMessageIn
		if decode(sender, event, data, &p) {
			r.sendMessage(sender, p)
		}
	case core.EvLeaveRoom:
		var p core.LeaveRoomIn
		if decode(sender, event, data, &p) {
			r.leaveRoom(sender, p)
		}
	case core.EvToggleCameraAudio:
		var p core.ToggleCameraAudioIn
		if decode(sender, event, data, &p) {
			r.toggleCameraAudio(sender, p)
		}
	default:
		log.Warn().Str("module", "relay").Str("conn", string(sender)).Str("event", event).Msg("unknown event")
	}
}

// HandleDisconnect implements core.Handler: same effect as an explicit
// leave for every room the connection was in, with one FE-user-leave
// broadcast per room.
func (r *Relay) HandleDisconnect(sender core.ConnID) {
	for _, room := range r.transport.RoomsOf(sender) {
		r.leaveOne(sender, room)
	}
	r.registry.Delete(sender)
	r.chat.Forget(sender)
	log.Info().Str("module", "relay").Str("conn", string(sender)).Msg("disconnected")
}

func decode(sender core.ConnID, event string, data []byte, v any) bool {
	if err := json.Unmarshal(data, v); err != nil {
		log.Warn().Err(err).Str("module", "relay").Str("conn", string(sender)).Str("event", event).Msg("bad payload")
		return false
	}
	return true
}

func dropPayload(sender core.ConnID, event, reason string) {
	log.Warn().Str("module", "relay").Str("conn", string(sender)).Str("event", event).Str("reason", reason).Msg("payload dropped")
}
