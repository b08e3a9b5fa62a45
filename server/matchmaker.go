package server

import "sync"

// seat records where a connection sits, so rooms are looked up through the
// matchmaker instead of back-pointers on the connection.
type seat struct {
	roomID string
	role   Role
}

// Matchmaker pairs connections into rooms. A single waiting slot exists at a
// time; taking it is an atomic check-and-clear under mu, so two concurrent
// seekers can never both consume the same waiting peer.
type Matchmaker struct {
	mu          sync.Mutex
	level       *Level
	waiting     Conn
	waitingRoom *GameRoom
	rooms       map[string]*GameRoom
	seats       map[string]seat // conn id -> seat
}

func NewMatchmaker(lvl *Level) *Matchmaker {
	return &Matchmaker{
		level: lvl,
		rooms: make(map[string]*GameRoom),
		seats: make(map[string]seat),
	}
}

// FindGame pairs the seeker with the waiting connection if one exists, or
// parks the seeker as the sole waiting connection with a fresh room.
func (m *Matchmaker) FindGame(conn Conn) {
	m.mu.Lock()
	if _, seated := m.seats[conn.ID()]; seated {
		m.mu.Unlock()
		conn.Send(EvErrorMessage, MessagePayload{Message: "You are already in a game."})
		return
	}

	if m.waiting != nil && m.waiting.ID() != conn.ID() {
		room := m.waitingRoom
		m.waiting, m.waitingRoom = nil, nil
		m.seats[conn.ID()] = seat{roomID: room.ID, role: RoleWater}
		m.mu.Unlock()

		Log.Infof("match made in room %s", shortID(room.ID))
		room.AddSecondPlayer(conn)
		return
	}

	room := NewGameRoom(m.level, conn)
	m.rooms[room.ID] = room
	m.seats[conn.ID()] = seat{roomID: room.ID, role: RoleFire}
	m.waiting = conn
	m.waitingRoom = room
	m.mu.Unlock()

	conn.Send(EvWaiting, MessagePayload{Message: "Looking for a partner..."})
}

// HandleInput routes a staged input to the seeker's room, if any. Input from
// a connection outside a room is dropped silently.
func (m *Matchmaker) HandleInput(conn Conn, in Input) {
	m.mu.Lock()
	st, ok := m.seats[conn.ID()]
	room := m.rooms[st.roomID]
	m.mu.Unlock()
	if !ok || room == nil {
		return
	}
	room.HandleInput(st.role, in)
}

// HandleReplay forwards a replay request to the sender's room.
func (m *Matchmaker) HandleReplay(conn Conn) {
	m.mu.Lock()
	st, ok := m.seats[conn.ID()]
	room := m.rooms[st.roomID]
	m.mu.Unlock()
	if !ok || room == nil {
		conn.Send(EvErrorMessage, MessagePayload{Message: "No finished game to replay."})
		return
	}
	room.HandleReplay()
}

// HandleDisconnect clears the waiting slot if the waiter left, or tears down
// the seeker's room and unregisters both seats. Destroyed rooms are never
// reused.
func (m *Matchmaker) HandleDisconnect(conn Conn) {
	m.mu.Lock()
	if m.waiting != nil && m.waiting.ID() == conn.ID() {
		orphan := m.waitingRoom
		m.waiting, m.waitingRoom = nil, nil
		delete(m.rooms, orphan.ID)
		delete(m.seats, conn.ID())
		m.mu.Unlock()
		Log.Infof("waiting player %s left, discarding room %s", conn.ID(), shortID(orphan.ID))
		return
	}

	st, ok := m.seats[conn.ID()]
	if !ok {
		m.mu.Unlock()
		return
	}
	room := m.rooms[st.roomID]
	delete(m.rooms, st.roomID)
	for id, s := range m.seats {
		if s.roomID == st.roomID {
			delete(m.seats, id)
		}
	}
	m.mu.Unlock()

	if room != nil {
		room.Destroy(conn.ID())
	}
}

// RoomInfo is one row in the admin room listing.
type RoomInfo struct {
	ID      string `json:"id"`
	Status  Status `json:"status"`
	Tick    int    `json:"tick"`
	Players int    `json:"players"`
}

// Room looks up a live room by id.
func (m *Matchmaker) Room(id string) *GameRoom {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rooms[id]
}

// RoomList snapshots the live rooms for the admin endpoint.
func (m *Matchmaker) RoomList() []RoomInfo {
	m.mu.Lock()
	rooms := make([]*GameRoom, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.Unlock()

	out := make([]RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomInfo{ID: r.ID, Status: r.Status(), Tick: r.Tick(), Players: r.PlayerCount()})
	}
	return out
}
