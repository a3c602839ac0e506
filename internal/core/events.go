package core

import (
	"encoding/json"
	"errors"

	"github.com/rindev0901/video-group-meeting/internal/domain"
)

// Event names are wire-compatible with the existing browser client:
// BE-* flows client -> relay, FE-* flows relay -> client.
const (
	EvCheckUser         = "BE-check-user"
	EvJoinRoom          = "BE-join-room"
	EvCallUser          = "BE-call-user"
	EvAcceptCall        = "BE-accept-call"
	EvSendMessage       = "BE-send-message"
	EvLeaveRoom         = "BE-leave-room"
	EvToggleCameraAudio = "BE-toggle-camera-audio"

	EvErrorUserExist = "FE-error-user-exist"
	EvUserJoin       = "FE-user-join"
	EvReceiveCall    = "FE-receive-call"
	EvCallAccepted   = "FE-call-accepted"
	EvReceiveMessage = "FE-receive-message"
	EvUserLeave      = "FE-user-leave"
	EvToggleCamera   = "FE-toggle-camera"
)

var ErrEmptyEvent = errors.New("envelope without event name")

// Envelope is the websocket wire framing: every message carries an event
// name plus that event's payload object.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func DecodeEnvelope(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if env.Event == "" {
		return nil, ErrEmptyEvent
	}
	return &env, nil
}

func EncodeEnvelope(event string, data any) (Frame, error) {
	b, err := json.Marshal(struct {
		Event string `json:"event"`
		Data  any    `json:"data"`
	}{event, data})
	if err != nil {
		return nil, err
	}
	return Frame(b), nil
}

// Inbound payloads, one fixed field set per BE-* event. The signal
// blobs are opaque SDP/ICE material and pass through unmodified.

type CheckUserIn struct {
	RoomID   domain.RoomID `json:"roomId"`
	UserName string        `json:"userName"`
}

type JoinRoomIn struct {
	RoomID   domain.RoomID `json:"roomId"`
	UserName string        `json:"userName"`
}

type CallUserIn struct {
	UserToCall ConnID          `json:"userToCall"`
	From       ConnID          `json:"from"`
	Signal     json.RawMessage `json:"signal"`
}

type AcceptCallIn struct {
	Signal json.RawMessage `json:"signal"`
	To     ConnID          `json:"to"`
}

type SendMessageIn struct {
	RoomID domain.RoomID `json:"roomId"`
	Msg    string        `json:"msg"`
	Sender string        `json:"sender"`
}

type LeaveRoomIn struct {
	RoomID domain.RoomID `json:"roomId"`
	Leaver string        `json:"leaver"`
}

type ToggleCameraAudioIn struct {
	RoomID       domain.RoomID `json:"roomId"`
	SwitchTarget string        `json:"switchTarget"`
}

// Outbound payloads, one per FE-* event.

type UserExistOut struct {
	Error bool `json:"error"`
}

// RosterEntry pairs a connection with its presence record. The client
// identifies itself in a roster by display name, so the joiner's own
// entry is included.
type RosterEntry struct {
	UserID ConnID          `json:"userId"`
	Info   domain.Presence `json:"info"`
}

type UserJoinOut struct {
	Users []RosterEntry `json:"users"`
}

type ReceiveCallOut struct {
	Signal json.RawMessage `json:"signal"`
	From   ConnID          `json:"from"`
	Info   domain.Presence `json:"info"`
}

type CallAcceptedOut struct {
	Signal   json.RawMessage `json:"signal"`
	AnswerID ConnID          `json:"answerId"`
}

type ReceiveMessageOut struct {
	Msg    string `json:"msg"`
	Sender string `json:"sender"`
}

type UserLeaveOut struct {
	UserID   ConnID `json:"userId"`
	UserName string `json:"userName"`
}

type ToggleCameraOut struct {
	UserID       ConnID           `json:"userId"`
	SwitchTarget domain.MediaKind `json:"switchTarget"`
}
