package game

import (
	"bingolive/internal/pool"
	"log"
	"sync"
)

// Registry owns the process-wide room table. Rooms are created lazily on
// first join and, depending on policy, reclaimed when their last member
// leaves.
type Registry struct {
	pool       *pool.Pool
	evictEmpty bool

	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRegistry creates an empty registry drawing cards from the given pool.
func NewRegistry(p *pool.Pool, evictEmpty bool) *Registry {
	return &Registry{
		pool:       p,
		evictEmpty: evictEmpty,
		rooms:      make(map[string]*Room),
	}
}

// Join registers the connection in the room for the key, creating the room
// if absent. Registration is atomic with respect to eviction: a joiner that
// races a concurrent Leave emptying the room is handed a fresh instance,
// never a reclaimed one. Concurrent first joins to the same key resolve to
// a single room.
func (g *Registry) Join(roomKey, connID string, sink Sink) (*Room, Card, []string, error) {
	for {
		g.mu.Lock()
		room, ok := g.rooms[roomKey]
		if !ok {
			room = newRoom(roomKey, g.pool)
			g.rooms[roomKey] = room
			log.Printf("room %s created", roomKey)
		}
		g.mu.Unlock()

		card, snapshot, err := room.AddMember(connID, sink)
		if err == errRoomClosed {
			// Lost the race with the eviction of the last member's room.
			// Drop the dead entry if the evicting Leave has not yet, then
			// retry against a live instance.
			g.mu.Lock()
			if g.rooms[roomKey] == room {
				delete(g.rooms, roomKey)
			}
			g.mu.Unlock()
			continue
		}
		if err != nil {
			return nil, Card{}, nil, err
		}
		return room, card, snapshot, nil
	}
}

// Leave removes the connection from its room and, under the eviction
// policy, reclaims the room once it is empty. Only the map bookkeeping
// runs under the registry lock, so leaves in one room do not stall joins
// to others.
func (g *Registry) Leave(roomKey, connID string) {
	g.mu.Lock()
	room, ok := g.rooms[roomKey]
	g.mu.Unlock()
	if !ok {
		return
	}

	if !room.removeMember(connID, g.evictEmpty) {
		return
	}

	g.mu.Lock()
	if g.rooms[roomKey] == room {
		delete(g.rooms, roomKey)
		log.Printf("room %s evicted", roomKey)
	}
	g.mu.Unlock()
}

// Get returns the room for the key if it exists.
func (g *Registry) Get(roomKey string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	room, ok := g.rooms[roomKey]
	return room, ok
}

// Len returns the number of live rooms.
func (g *Registry) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.rooms)
}
