package memory

import (
	"errors"
	"sync"
)

var (
	ErrRoomNotFound   = errors.New("room is not found")
	ErrPresenterTaken = errors.New("room already has a presenter")
	ErrAlreadyJoined  = errors.New("session is already in a room")
)

type room struct {
	presenter string
	viewers   map[string]struct{}
}

func (r *room) members() []string {
	members := make([]string, 0, len(r.viewers)+1)
	if r.presenter != "" {
		members = append(members, r.presenter)
	}
	for viewer := range r.viewers {
		members = append(members, viewer)
	}
	return members
}

func (r *room) empty() bool {
	return r.presenter == "" && len(r.viewers) == 0
}

// MemStore keeps room membership in memory. A room exists exactly while
// it has at least one member; records are deleted as soon as membership
// reaches zero. The session index guarantees a session is a member of at
// most one room.
type MemStore struct {
	mx       *sync.Mutex
	rooms    map[string]*room
	sessions map[string]string // session -> roomID
}

func NewMemStore() *MemStore {
	return &MemStore{
		mx:       &sync.Mutex{},
		rooms:    make(map[string]*room),
		sessions: make(map[string]string),
	}
}

// Join admits a session into a room and returns the other current
// members, for notification fan-out. A presenter join creates the room
// if needed and claims its presenter slot; a viewer join requires the
// room to already have members.
func (ms *MemStore) Join(session, roomID string, presenter bool) ([]string, error) {
	ms.mx.Lock()
	defer ms.mx.Unlock()

	if _, ok := ms.sessions[session]; ok {
		return nil, ErrAlreadyJoined
	}

	rm, ok := ms.rooms[roomID]
	if !ok {
		if !presenter {
			return nil, ErrRoomNotFound
		}
		ms.rooms[roomID] = &room{
			presenter: session,
			viewers:   make(map[string]struct{}),
		}
		ms.sessions[session] = roomID
		return nil, nil
	}

	others := rm.members()
	if presenter {
		if rm.presenter != "" {
			return nil, ErrPresenterTaken
		}
		rm.presenter = session
	} else {
		rm.viewers[session] = struct{}{}
	}
	ms.sessions[session] = roomID
	return others, nil
}

// Leave removes a session from its room and returns the room id along
// with the remaining members. It is a no-op for sessions that are not a
// member of any room.
func (ms *MemStore) Leave(session string) (string, []string) {
	ms.mx.Lock()
	defer ms.mx.Unlock()

	roomID, ok := ms.sessions[session]
	if !ok {
		return "", nil
	}
	delete(ms.sessions, session)

	rm := ms.rooms[roomID]
	if rm.presenter == session {
		rm.presenter = ""
	} else {
		delete(rm.viewers, session)
	}

	if rm.empty() {
		delete(ms.rooms, roomID)
		return roomID, nil
	}
	return roomID, rm.members()
}

// MembersOf returns the current members of a room, presenter included.
func (ms *MemStore) MembersOf(roomID string) []string {
	ms.mx.Lock()
	defer ms.mx.Unlock()

	rm, ok := ms.rooms[roomID]
	if !ok {
		return nil
	}
	return rm.members()
}
