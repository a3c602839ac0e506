package relay

import (
	"github.com/rs/zerolog/log"

	"github.com/rindev0901/video-group-meeting/internal/core"
	"github.com/rindev0901/video-group-meeting/internal/metrics"
)

// callUser relays an SDP/ICE offer to the chosen peer. The target was
// discovered via a roster, so no same-room check is made; if it is gone
// by now the send is a silent no-op and the caller's attempt stalls,
// which the client recovers from by leaving and rejoining.
func (r *Relay) callUser(sender core.ConnID, p core.CallUserIn) {
	if p.UserToCall == "" || len(p.Signal) == 0 {
		dropPayload(sender, core.EvCallUser, "missing userToCall or signal")
		return
	}
	info, ok := r.registry.Get(sender)
	if !ok {
		dropPayload(sender, core.EvCallUser, "not joined")
		return
	}
	// From is the transport-assigned sender id, not the spoofable field
	// of the inbound payload.
	r.transport.SendTo(p.UserToCall, core.EvReceiveCall, core.ReceiveCallOut{
		Signal: p.Signal,
		From:   sender,
		Info:   info,
	})
}

func (r *Relay) acceptCall(sender core.ConnID, p core.AcceptCallIn) {
	if p.To == "" || len(p.Signal) == 0 {
		dropPayload(sender, core.EvAcceptCall, "missing to or signal")
		return
	}
	if _, ok := r.registry.Get(sender); !ok {
		dropPayload(sender, core.EvAcceptCall, "not joined")
		return
	}
	r.transport.SendTo(p.To, core.EvCallAccepted, core.CallAcceptedOut{
		Signal:   p.Signal,
		AnswerID: sender,
	})
}

// sendMessage fans a chat line out to the whole room, sender included;
// echo suppression is the client's concern. Nothing is persisted.
func (r *Relay) sendMessage(sender core.ConnID, p core.SendMessageIn) {
	if p.RoomID == "" {
		dropPayload(sender, core.EvSendMessage, "missing roomId")
		return
	}
	presence, ok := r.registry.Get(sender)
	if !ok {
		dropPayload(sender, core.EvSendMessage, "not joined")
		return
	}
	if !r.chat.Allow(sender) {
		metrics.DroppedChat.Inc()
		log.Warn().Str("module", "relay").Str("conn", string(sender)).Str("room", string(p.RoomID)).Msg("chat rate limit")
		return
	}
	r.transport.Broadcast(p.RoomID, core.EvReceiveMessage, core.ReceiveMessageOut{
		Msg:    p.Msg,
		Sender: presence.UserName,
	})
}
