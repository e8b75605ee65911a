package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"

	"github.com/screenroom/relay/model"
	"github.com/screenroom/relay/storage/memory"
)

// Client-facing rejection texts. Only join rejections are surfaced;
// malformed signal envelopes are logged and dropped.
const (
	msgRoomNotFound   = "Room does not exist."
	msgPresenterTaken = "Room already has a presenter."
	msgAlreadyJoined  = "Already in a room."
	msgJoinFailed     = "Unable to join room."
)

type (
	Registry interface {
		Register(wire model.Wire) string
		Deregister(session string) bool
	}

	RoomStore interface {
		Join(session, roomID string, presenter bool) ([]string, error)
		Leave(session string) (roomID string, remaining []string)
	}

	Router interface {
		Relay(ctx context.Context, from, to string, payload json.RawMessage) bool
		Deliver(ctx context.Context, to string, msg model.Message) bool
	}

	Service struct {
		reg    Registry
		store  RoomStore
		router Router
		logger zerolog.Logger
	}

	Config struct {
		Registry  Registry
		RoomStore RoomStore
		Router    Router
		Logger    *zerolog.Logger
	}
)

func NewService(cfg Config) *Service {
	return &Service{
		reg:    cfg.Registry,
		store:  cfg.RoomStore,
		router: cfg.Router,
		logger: cfg.Logger.With().Str("component", "service").Logger(),
	}
}

// Connect registers a new connection's wire, starts consuming its
// inbound messages, and tells the client its assigned session id.
// Dispatch runs until ctx is canceled or the wire's RX is closed.
func (svc *Service) Connect(ctx context.Context, wire model.Wire) string {
	session := svc.reg.Register(wire)

	go svc.dispatch(ctx, session, wire.RX)
	go func() {
		_ = svc.router.Deliver(ctx, session, model.Message{
			Type:    model.TypeSession,
			Session: session,
		})
	}()
	return session
}

// Disconnect reconciles membership after a connection goes away. The
// registry entry is removed first so the switch stops addressing the
// dead wire, then remaining room members learn about the departure.
// Safe to call repeatedly for the same session.
func (svc *Service) Disconnect(ctx context.Context, session string) {
	svc.reg.Deregister(session)

	roomID, remaining := svc.store.Leave(session)
	if roomID == "" {
		return
	}
	svc.logger.Debug().
		Str("session", session).
		Str("roomID", roomID).
		Msg("session left room")

	svc.notify(ctx, remaining, model.Message{
		Type:    model.TypeMemberLeft,
		Session: session,
	})
}

func (svc *Service) dispatch(ctx context.Context, session string, rx <-chan model.Message) {
dispatchLoop:
	for {
		select {
		case <-ctx.Done():
			break dispatchLoop
		case msg, ok := <-rx:
			if !ok {
				break dispatchLoop
			}
			if e := svc.logger.Trace(); e.Enabled() {
				e.Str("session", session).
					Str("message", spew.Sdump(msg)).
					Msg("inbound message")
			}
			switch msg.Type {
			case model.TypeJoinRoom:
				svc.handleJoin(ctx, session, msg)
			case model.TypeSignal:
				svc.handleSignal(ctx, session, msg)
			default:
				svc.logger.Debug().
					Str("session", session).
					Str("type", msg.Type).
					Msg("unknown message type")
			}
		}
	}
}

func (svc *Service) handleJoin(ctx context.Context, session string, msg model.Message) {
	if msg.Room == "" {
		svc.logger.Error().
			Str("session", session).
			Msg("join request without room id")
		return
	}

	others, err := svc.store.Join(session, msg.Room, msg.Presenter)
	if err != nil {
		svc.logger.Debug().Err(err).
			Str("session", session).
			Str("roomID", msg.Room).
			Msg("join rejected")
		go func() {
			_ = svc.router.Deliver(ctx, session, model.Message{
				Type: model.TypeError,
				Text: rejectionText(err),
			})
		}()
		return
	}

	svc.logger.Debug().
		Str("session", session).
		Str("roomID", msg.Room).
		Bool("presenter", msg.Presenter).
		Msg("session joined room")

	evt := model.TypeViewerJoined
	if msg.Presenter {
		evt = model.TypePresenterJoined
	}
	svc.notify(ctx, others, model.Message{
		Type:    evt,
		Session: session,
	})
}

func (svc *Service) handleSignal(ctx context.Context, session string, msg model.Message) {
	if msg.To == "" || len(msg.Signal) == 0 {
		svc.logger.Error().
			Str("session", session).
			Msg("signal message missing to or signal")
		return
	}
	// sender identity always comes from the registry entry, never from
	// the payload
	_ = svc.router.Relay(ctx, session, msg.To, msg.Signal)
}

func (svc *Service) notify(ctx context.Context, members []string, msg model.Message) {
	go func() {
		for _, member := range members {
			_ = svc.router.Deliver(ctx, member, msg)
		}
	}()
}

func rejectionText(err error) string {
	switch {
	case errors.Is(err, memory.ErrRoomNotFound):
		return msgRoomNotFound
	case errors.Is(err, memory.ErrPresenterTaken):
		return msgPresenterTaken
	case errors.Is(err, memory.ErrAlreadyJoined):
		return msgAlreadyJoined
	}
	return msgJoinFailed
}
