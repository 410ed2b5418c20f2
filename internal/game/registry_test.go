package game

import (
	"bingolive/internal/model"
	"bingolive/internal/pool"
	"fmt"
	"sync"
	"testing"
)

func TestJoinReturnsSameRoomForSameKey(t *testing.T) {
	g := NewRegistry(testPool(t, pool.MinOptions), true)

	r1, _, _, err := g.Join("alpha", "m1", &recordSink{})
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	r2, _, _, err := g.Join("alpha", "m2", &recordSink{})
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	r3, _, _, err := g.Join("beta", "m3", &recordSink{})
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}

	if r1 != r2 {
		t.Fatal("two joins to the same key returned different rooms")
	}
	if r1 == r3 {
		t.Fatal("different keys returned the same room")
	}
	if g.Len() != 2 {
		t.Fatalf("registry has %d rooms, want 2", g.Len())
	}
}

func TestJoinIssuesCardAndSnapshot(t *testing.T) {
	g := NewRegistry(testPool(t, pool.MinOptions), true)

	room, card, marked, err := g.Join("alpha", "m1", &recordSink{})
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	if card.Size() != CardSize {
		t.Fatalf("card size = %d, want %d", card.Size(), CardSize)
	}
	if len(marked) != 0 {
		t.Fatalf("fresh room snapshot = %v, want empty", marked)
	}

	if err := room.Apply("m1", model.ActionMark, "Option 1"); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	_, _, marked, err = g.Join("alpha", "m2", &recordSink{})
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	if len(marked) != 1 || marked[0] != "Option 1" {
		t.Fatalf("snapshot = %v, want [Option 1]", marked)
	}
}

func TestConcurrentJoinsCreateOneRoom(t *testing.T) {
	g := NewRegistry(testPool(t, 30), true)

	const n = 50
	rooms := make([]*Room, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			room, _, _, err := g.Join("contested", fmt.Sprintf("m%d", i), &recordSink{})
			if err != nil {
				t.Errorf("Join returned error: %v", err)
				return
			}
			rooms[i] = room
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if rooms[i] != rooms[0] {
			t.Fatal("concurrent joins produced more than one room instance")
		}
	}
	if g.Len() != 1 {
		t.Fatalf("registry has %d rooms, want 1", g.Len())
	}
}

func TestLeaveEvictsEmptyRoom(t *testing.T) {
	g := NewRegistry(testPool(t, pool.MinOptions), true)

	room, _, _, err := g.Join("alpha", "m1", &recordSink{})
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}

	g.Leave("alpha", "m1")

	if _, ok := g.Get("alpha"); ok {
		t.Fatal("empty room should have been evicted")
	}

	// A rejoin starts from a clean slate.
	fresh, _, _, err := g.Join("alpha", "m2", &recordSink{})
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	if fresh == room {
		t.Fatal("rejoin after eviction returned the reclaimed room")
	}
	if fresh.MarkedCount() != 0 {
		t.Fatal("fresh room should have no marks")
	}
}

func TestLeaveKeepsRoomWhenEvictionDisabled(t *testing.T) {
	g := NewRegistry(testPool(t, pool.MinOptions), false)

	room, _, _, err := g.Join("alpha", "m1", &recordSink{})
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	if err := room.Apply("m1", model.ActionMark, "Option 1"); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	g.Leave("alpha", "m1")

	kept, ok := g.Get("alpha")
	if !ok {
		t.Fatal("room should be retained with eviction disabled")
	}
	if kept != room {
		t.Fatal("retained room is not the original instance")
	}
	if !kept.IsMarked("Option 1") {
		t.Fatal("marks should survive the last member leaving")
	}
}

func TestLeaveUnknownRoomIsNoOp(t *testing.T) {
	g := NewRegistry(testPool(t, 30), true)
	g.Leave("nowhere", "m1")

	if g.Len() != 0 {
		t.Fatalf("registry has %d rooms, want 0", g.Len())
	}
}

// A joiner holding a handle to a room that was emptied and reclaimed in the
// meantime must not be able to register into it.
func TestEvictedRoomRefusesNewMembers(t *testing.T) {
	g := NewRegistry(testPool(t, pool.MinOptions), true)

	stale, _, _, err := g.Join("k", "m2", &recordSink{})
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	g.Leave("k", "m2")

	if _, _, err := stale.AddMember("m1", &recordSink{}); err != errRoomClosed {
		t.Fatalf("AddMember on evicted room = %v, want errRoomClosed", err)
	}
	if stale.MemberCount() != 0 {
		t.Fatalf("evicted room has %d members, want 0", stale.MemberCount())
	}

	fresh, _, _, err := g.Join("k", "m1", &recordSink{})
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	if fresh == stale {
		t.Fatal("Join returned the reclaimed room")
	}
	got, ok := g.Get("k")
	if !ok || got != fresh {
		t.Fatal("registry does not hold the room the joiner landed in")
	}
	if fresh.MemberCount() != 1 {
		t.Fatalf("fresh room has %d members, want 1", fresh.MemberCount())
	}

	// The stranded member's Leave must still resolve against the live room.
	g.Leave("k", "m1")
	if _, ok := g.Get("k"); ok {
		t.Fatal("room should have been evicted after its last member left")
	}
}

// Join/leave churn on one key must leave every pair of simultaneous members
// in the same room instance, with fan-out intact between them.
func TestJoinLeaveChurnKeepsOneRoomPerKey(t *testing.T) {
	g := NewRegistry(testPool(t, pool.MinOptions), true)

	const workers, iterations = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				connID := fmt.Sprintf("m%d-%d", w, i)
				room, _, _, err := g.Join("k", connID, &recordSink{})
				if err != nil {
					t.Errorf("Join returned error: %v", err)
					return
				}
				if err := room.Apply(connID, model.ActionMark, "Option 1"); err != nil {
					t.Errorf("Apply returned error: %v", err)
					return
				}
				g.Leave("k", connID)
			}
		}(w)
	}
	wg.Wait()

	s1, s2 := &recordSink{}, &recordSink{}
	r1, _, _, err := g.Join("k", "a", s1)
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	r2, _, _, err := g.Join("k", "b", s2)
	if err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	if r1 != r2 {
		t.Fatal("two live members of the same key are in different rooms")
	}

	// Cards drawn from a 24-option pool hold the whole pool, so the other
	// member always hears the mark.
	if err := r1.Apply("a", model.ActionMark, "Option 1"); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if s2.count() != 1 {
		t.Fatalf("peer received %d updates, want 1", s2.count())
	}
	if s1.count() != 0 {
		t.Fatalf("actor received %d updates, want 0", s1.count())
	}
}
