package _switch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/screenroom/relay/model"
)

const (
	defaultFwdTimout = time.Second
)

// WireLookup resolves a session id to the wire of its live connection.
type WireLookup interface {
	Wire(session string) (model.Wire, bool)
}

// Switch forwards messages point-to-point between sessions. Delivery is
// best-effort: a target that disconnected in the meantime simply never
// receives the message, and the sender is not told.
type Switch struct {
	logger zerolog.Logger
	reg    WireLookup
}

func NewSwitch(logger *zerolog.Logger, reg WireLookup) *Switch {
	return &Switch{
		logger: logger.With().Str("component", "switch").Logger(),
		reg:    reg,
	}
}

// Relay forwards an opaque signaling payload to the target session,
// stamped with the sender's session id. The payload passes through
// untouched.
func (sw *Switch) Relay(ctx context.Context, from, to string, payload json.RawMessage) bool {
	return sw.Deliver(ctx, to, model.Message{
		Type:   model.TypeSignal,
		From:   from,
		Signal: payload,
	})
}

// Deliver sends a message to the connection currently registered under
// the target session id. Returns false if the target is not live or the
// send timed out.
func (sw *Switch) Deliver(ctx context.Context, to string, msg model.Message) bool {
	logger := sw.logger.With().
		Str("type", msg.Type).
		Str("dst", to).Logger()

	wire, ok := sw.reg.Wire(to)
	if !ok {
		logger.Debug().Msg("cannot forward, dst not found")
		return false
	}

	sent, _ := send(ctx, msg, wire.TX, &logger)
	return sent
}

func send(ctx context.Context, msg model.Message, tx chan<- model.Message, logger *zerolog.Logger) (bool, bool) {
	var sent, canceled bool
	tCh := time.NewTimer(defaultFwdTimout)
	select {
	case <-ctx.Done():
		canceled = true
	case <-tCh.C:
		logger.Error().Msg("dead endpoint")
	case tx <- msg:
		logger.Debug().Msg("message is forwarded")
		sent = true
	}
	tCh.Stop()
	return sent, canceled
}
