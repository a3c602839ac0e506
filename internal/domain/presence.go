// Package domain contains entity without logic, just meta-data
package domain

import "errors"

const MaxDisplayNameLen = 36

var (
	ErrNameEmpty        = errors.New("display name empty")
	ErrNameTooLong      = errors.New("display name too long")
	ErrUnknownMediaKind = errors.New("unknown media kind")
)

// MediaKind names a toggleable media track on a presence record.
type MediaKind string

const (
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

func ParseMediaKind(s string) (MediaKind, error) {
	switch MediaKind(s) {
	case MediaVideo, MediaAudio:
		return MediaKind(s), nil
	}
	return "", ErrUnknownMediaKind
}

// Presence is the per-connection record a room roster is built from.
// Only the connection that owns it may mutate it.
type Presence struct {
	UserName string `json:"userName"`
	Video    bool   `json:"video"`
	Audio    bool   `json:"audio"`
}

// NewPresence validates the display name and applies the join-time
// defaults: both media tracks start enabled.
func NewPresence(userName string) (*Presence, error) {
	if len(userName) == 0 {
		return nil, ErrNameEmpty
	}
	if len(userName) > MaxDisplayNameLen {
		return nil, ErrNameTooLong
	}
	return &Presence{UserName: userName, Video: true, Audio: true}, nil
}

// Toggle flips the named track and leaves the other one untouched.
func (p *Presence) Toggle(kind MediaKind) error {
	switch kind {
	case MediaVideo:
		p.Video = !p.Video
	case MediaAudio:
		p.Audio = !p.Audio
	default:
		return ErrUnknownMediaKind
	}
	return nil
}
