package registry

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/screenroom/relay/model"
)

// Registry maps live connections to session identifiers. A session id
// exists exactly as long as the connection that produced it; nothing
// outside this package fabricates session ids.
type Registry struct {
	logger zerolog.Logger
	mx     *sync.Mutex
	wires  map[string]model.Wire
}

func New(logger *zerolog.Logger) *Registry {
	return &Registry{
		logger: logger.With().Str("component", "registry").Logger(),
		mx:     &sync.Mutex{},
		wires:  make(map[string]model.Wire),
	}
}

// Register issues a fresh session id for a connection's wire and
// records it as live.
func (r *Registry) Register(wire model.Wire) string {
	session := uuid.New().String()

	r.mx.Lock()
	r.wires[session] = wire
	r.mx.Unlock()

	r.logger.Debug().Str("session", session).Msg("session registered")
	return session
}

// Deregister removes the session mapping and reports whether it was
// live. Safe to call more than once for the same session.
func (r *Registry) Deregister(session string) bool {
	r.mx.Lock()
	_, ok := r.wires[session]
	delete(r.wires, session)
	r.mx.Unlock()

	if ok {
		r.logger.Debug().Str("session", session).Msg("session deregistered")
	}
	return ok
}

// Wire returns the wire currently registered under session.
func (r *Registry) Wire(session string) (model.Wire, bool) {
	r.mx.Lock()
	defer r.mx.Unlock()

	wire, ok := r.wires[session]
	return wire, ok
}
