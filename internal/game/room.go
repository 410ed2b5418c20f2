// Package game implements the room registry and the selective broadcast
// engine: who is in which room, which options each member's card holds, and
// who must hear about each mark/unmark.
package game

import (
	"bingolive/internal/model"
	"bingolive/internal/pool"
	"errors"
	"log"
	"sync"
)

// errRoomClosed is returned by AddMember when the room has been reclaimed
// by the registry; the caller must join again for a fresh instance.
var errRoomClosed = errors.New("room closed")

// Sink delivers one update to a member's transport. Push must not block;
// it reports whether the update was accepted.
type Sink interface {
	Push(update *model.Update) bool
}

type member struct {
	card Card
	sink Sink
}

// Room holds one broadcast domain: its members, their cards, and the shared
// marked set. All mutation is serialized by the room's own mutex, so
// different rooms never contend.
type Room struct {
	key  string
	pool *pool.Pool

	mu      sync.Mutex
	members map[string]*member
	marked  map[string]struct{}
	closed  bool
}

func newRoom(key string, p *pool.Pool) *Room {
	return &Room{
		key:     key,
		pool:    p,
		members: make(map[string]*member),
		marked:  make(map[string]struct{}),
	}
}

// Key returns the room's identifier.
func (r *Room) Key() string {
	return r.key
}

// AddMember issues a fresh card to the connection and registers its sink.
// It returns the card plus a snapshot of the options already marked, so the
// new member can render state it would otherwise never hear about.
func (r *Room) AddMember(connID string, sink Sink) (Card, []string, error) {
	drawn, err := r.pool.Sample(CardSize)
	if err != nil {
		return Card{}, nil, err
	}
	card := newCard(drawn)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return Card{}, nil, errRoomClosed
	}

	r.members[connID] = &member{card: card, sink: sink}

	snapshot := make([]string, 0, len(r.marked))
	for opt := range r.marked {
		snapshot = append(snapshot, opt)
	}

	log.Printf("room %s: member %s joined (%d members)", r.key, connID, len(r.members))
	return card, snapshot, nil
}

// Apply records one mark/unmark and fans it out to every other member whose
// card contains the option. The broadcast happens on every call, even when
// the marked set did not change. The acting member is never notified; its
// client already updated optimistically. An unknown connID is a no-op.
func (r *Room) Apply(connID string, action model.Action, option string) error {
	if option == "" {
		return model.ErrEmptyOption
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[connID]; !ok {
		// Likely a frame that raced with disconnect cleanup.
		return nil
	}

	if action == model.ActionMark {
		r.marked[option] = struct{}{}
	} else {
		delete(r.marked, option)
	}

	update := model.NewUpdate(action, option)
	for id, m := range r.members {
		if id == connID || !m.card.Contains(option) {
			continue
		}
		if !m.sink.Push(update) {
			log.Printf("room %s: member %s send queue full, update dropped", r.key, id)
		}
	}
	return nil
}

// RemoveMember forgets the connection. The marked set keeps the member's
// contributions, and nobody is told about the departure.
func (r *Room) RemoveMember(connID string) {
	r.removeMember(connID, false)
}

// removeMember deletes the connection and, when evictEmpty is set, closes
// the room once it is empty. Closing happens under the same mutex that
// guards AddMember, so a member can never register into a room that is
// about to be reclaimed. Reports whether the room closed.
func (r *Room) removeMember(connID string, evictEmpty bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[connID]; ok {
		delete(r.members, connID)
		log.Printf("room %s: member %s left (%d members)", r.key, connID, len(r.members))
	}

	if evictEmpty && len(r.members) == 0 && !r.closed {
		r.closed = true
		return true
	}
	return false
}

// MemberCount returns the number of connected members.
func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// MarkedCount returns the size of the shared marked set.
func (r *Room) MarkedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.marked)
}

// IsMarked reports whether the option is currently in the marked set.
func (r *Room) IsMarked(option string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.marked[option]
	return ok
}
