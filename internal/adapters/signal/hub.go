package signal

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/rindev0901/video-group-meeting/internal/core"
	"github.com/rindev0901/video-group-meeting/internal/domain"
	"github.com/rindev0901/video-group-meeting/internal/metrics"
)

type inbound struct {
	sender core.ConnID
	event  string
	data   []byte
	gone   bool
}

// Hub implements core.Transport over websocket connections. Inbound
// events funnel through one channel drained by a single Run goroutine,
// so the relay sees strictly serialized, FIFO-per-connection delivery
// and needs no cross-event locking.
type Hub struct {
	mu     sync.RWMutex
	conns  map[core.ConnID]core.SignalConnection
	rooms  map[domain.RoomID]map[core.ConnID]struct{}
	joined map[core.ConnID]map[domain.RoomID]struct{}

	events chan inbound
}

func NewHub() *Hub {
	return &Hub{
		conns:  make(map[core.ConnID]core.SignalConnection),
		rooms:  make(map[domain.RoomID]map[core.ConnID]struct{}),
		joined: make(map[core.ConnID]map[domain.RoomID]struct{}),
		events: make(chan inbound, 256),
	}
}

// Run drains the event channel until ctx is done. Each event is handled
// to completion before the next one is read.
func (h *Hub) Run(ctx context.Context, handler core.Handler) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal.hub").Msg("event loop stopped")
			return
		case e := <-h.events:
			if e.gone {
				handler.HandleDisconnect(e.sender)
				h.unregister(e.sender)
				continue
			}
			metrics.Events.WithLabelValues(e.event).Inc()
			handler.HandleEvent(e.sender, e.event, e.data)
		}
	}
}

// Deliver enqueues an inbound event. Called from the connection's read
// pump, which preserves per-connection ordering.
func (h *Hub) Deliver(sender core.ConnID, event string, data []byte) {
	h.events <- inbound{sender: sender, event: event, data: data}
}

// Disconnected enqueues the transport disconnect notification.
func (h *Hub) Disconnected(sender core.ConnID) {
	h.events <- inbound{sender: sender, gone: true}
}

func (h *Hub) register(id core.ConnID, conn core.SignalConnection) {
	h.mu.Lock()
	h.conns[id] = conn
	h.mu.Unlock()
	metrics.Connections.Inc()
	log.Info().Str("module", "signal.hub").Str("conn", string(id)).Msg("connection registered")
}

func (h *Hub) unregister(id core.ConnID) {
	h.mu.Lock()
	conn, ok := h.conns[id]
	delete(h.conns, id)
	h.mu.Unlock()
	if !ok {
		return
	}
	conn.Close()
	metrics.Connections.Dec()
	log.Info().Str("module", "signal.hub").Str("conn", string(id)).Msg("connection unregistered")
}

func (h *Hub) JoinRoom(id core.ConnID, room domain.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.rooms[room]
	if !ok {
		set = make(map[core.ConnID]struct{})
		h.rooms[room] = set
		metrics.Rooms.Inc()
	}
	set[id] = struct{}{}

	mine, ok := h.joined[id]
	if !ok {
		mine = make(map[domain.RoomID]struct{})
		h.joined[id] = mine
	}
	mine[room] = struct{}{}
}

func (h *Hub) LeaveRoom(id core.ConnID, room domain.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.rooms[room]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(h.rooms, room)
			metrics.Rooms.Dec()
		}
	}
	if mine, ok := h.joined[id]; ok {
		delete(mine, room)
		if len(mine) == 0 {
			delete(h.joined, id)
		}
	}
}

func (h *Hub) MembersOf(room domain.RoomID) []core.ConnID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	set := h.rooms[room]
	out := make([]core.ConnID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

func (h *Hub) RoomsOf(id core.ConnID) []domain.RoomID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	mine := h.joined[id]
	out := make([]domain.RoomID, 0, len(mine))
	for room := range mine {
		out = append(out, room)
	}
	return out
}

func (h *Hub) SendTo(id core.ConnID, event string, data any) {
	frame, err := core.EncodeEnvelope(event, data)
	if err != nil {
		log.Error().Err(err).Str("module", "signal.hub").Str("event", event).Msg("encode envelope")
		return
	}
	h.sendFrame(id, event, frame)
}

func (h *Hub) BroadcastExcept(room domain.RoomID, sender core.ConnID, event string, data any) {
	frame, err := core.EncodeEnvelope(event, data)
	if err != nil {
		log.Error().Err(err).Str("module", "signal.hub").Str("event", event).Msg("encode envelope")
		return
	}
	for _, id := range h.MembersOf(room) {
		if id == sender {
			continue
		}
		h.sendFrame(id, event, frame)
	}
}

func (h *Hub) Broadcast(room domain.RoomID, event string, data any) {
	h.BroadcastExcept(room, "", event, data)
}

// sendFrame is fire-and-forget: an unknown target is a no-op and a full
// or closed connection costs only that one frame.
func (h *Hub) sendFrame(id core.ConnID, event string, frame core.Frame) {
	h.mu.RLock()
	conn, ok := h.conns[id]
	h.mu.RUnlock()
	if !ok {
		log.Debug().Str("module", "signal.hub").Str("conn", string(id)).Str("event", event).Msg("send to unknown connection")
		return
	}
	if err := conn.TrySend(frame); err != nil {
		metrics.DroppedSends.Inc()
		log.Warn().Err(err).Str("module", "signal.hub").Str("conn", string(id)).Str("event", event).Msg("send dropped")
	}
}
