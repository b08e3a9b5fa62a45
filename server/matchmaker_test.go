package server

import (
	"sync"
	"testing"
	"time"
)

func TestConcurrentSeekersPairIntoOneRoom(t *testing.T) {
	mm := NewMatchmaker(DefaultLevel())
	c1, c2 := newFakeConn("c1"), newFakeConn("c2")

	var wg sync.WaitGroup
	for _, c := range []*fakeConn{c1, c2} {
		wg.Add(1)
		go func(c *fakeConn) {
			defer wg.Done()
			mm.FindGame(c)
		}(c)
	}
	wg.Wait()
	defer mm.HandleDisconnect(c1)

	rooms := mm.RoomList()
	if len(rooms) != 1 {
		t.Fatalf("rooms = %d, want the pair in exactly one", len(rooms))
	}
	if rooms[0].Players != 2 {
		t.Fatalf("players = %d, want 2", rooms[0].Players)
	}
	if c1.count(EvRoleAssigned)+c2.count(EvRoleAssigned) != 2 {
		t.Fatal("both seekers must receive a role")
	}
}

func TestFindGameTwiceIsRejected(t *testing.T) {
	mm := NewMatchmaker(DefaultLevel())
	c1 := newFakeConn("c1")

	mm.FindGame(c1)
	mm.FindGame(c1)
	defer mm.HandleDisconnect(c1)

	if got := c1.count(EvErrorMessage); got != 1 {
		t.Fatalf("error-message count = %d, want 1", got)
	}
	if got := len(mm.RoomList()); got != 1 {
		t.Fatalf("rooms = %d, a repeat seek must not open another", got)
	}
}

func TestWaitingDisconnectDiscardsOrphanRoom(t *testing.T) {
	mm := NewMatchmaker(DefaultLevel())
	c1, c2 := newFakeConn("c1"), newFakeConn("c2")

	mm.FindGame(c1)
	mm.HandleDisconnect(c1)

	if got := len(mm.RoomList()); got != 0 {
		t.Fatalf("rooms = %d after the waiter left, want 0", got)
	}

	// The next seeker must wait, not get paired with the ghost.
	mm.FindGame(c2)
	defer mm.HandleDisconnect(c2)
	c2.waitFor(t, EvWaiting, 1)
	if got := c1.count(EvGameInit); got != 0 {
		t.Fatal("departed waiter must not be pulled into a game")
	}
}

func TestReplayWithoutSeatIsRejected(t *testing.T) {
	mm := NewMatchmaker(DefaultLevel())
	c := newFakeConn("drifter")

	mm.HandleReplay(c)

	if got := c.count(EvErrorMessage); got != 1 {
		t.Fatalf("error-message count = %d, want 1", got)
	}
}

func TestInputRoutesToSeatedRoom(t *testing.T) {
	mm := NewMatchmaker(DefaultLevel())
	c1, c2 := newFakeConn("c1"), newFakeConn("c2")

	mm.FindGame(c1)
	mm.FindGame(c2)
	defer mm.HandleDisconnect(c1)
	c1.waitFor(t, EvGameStart, 1)

	room := mm.Room(mm.RoomList()[0].ID)
	mm.HandleInput(c1, Input{Right: true})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if room.Metrics().Snapshot()["inputs_accepted"].(int64) > 0 {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("staged input never reached the room")
}

func TestInputFromUnseatedConnIsDropped(t *testing.T) {
	mm := NewMatchmaker(DefaultLevel())
	c := newFakeConn("drifter")

	mm.HandleInput(c, Input{Jump: true})

	if got := c.count(EvErrorMessage); got != 0 {
		t.Fatalf("stray input produced %d error messages, want silence", got)
	}
}
