// Package ability tracks the lifecycle of purchase and cast requests.
//
// Every request walks a small state machine:
//
//	requested ──validate──▶ validated ──apply──▶ applied ──despawn──▶ despawned
//	    │
//	    └──reject──▶ rejected
//
// A purchase moves from validated to despawned within the tick it is
// accepted. A cast stays validated until the apply step resolves its
// effects, then is despawned by cleanup.
package ability

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/obelisk/lanedefense/internal/core/event"
	"github.com/obelisk/lanedefense/internal/data"
)

const (
	StateRequested = "requested"
	StateValidated = "validated"
	StateApplied   = "applied"
	StateDespawned = "despawned"
	StateRejected  = "rejected"
)

const (
	EventValidate = "validate"
	EventReject   = "reject"
	EventApply    = "apply"
	EventDespawn  = "despawn"
)

type Kind int

const (
	KindPurchase Kind = iota
	KindCast
)

func (k Kind) String() string {
	if k == KindCast {
		return "cast"
	}
	return "purchase"
}

// Request is a single purchase or cast moving through the pipeline.
type Request struct {
	ID      uuid.UUID
	Kind    Kind
	Player  data.PlayerID
	Ability data.AbilityID // zero for a cast until the slot is resolved
	Slot    int            // casts only
	Reason  event.Reason   // set once rejected

	machine *fsm.FSM
}

// NewPurchase creates a purchase request for ability id.
func NewPurchase(player data.PlayerID, id data.AbilityID, log *zap.Logger) *Request {
	return newRequest(KindPurchase, player, id, 0, log)
}

// NewCast creates a cast request for the ability bound to slot.
func NewCast(player data.PlayerID, slot int, log *zap.Logger) *Request {
	return newRequest(KindCast, player, 0, slot, log)
}

func newRequest(kind Kind, player data.PlayerID, id data.AbilityID, slot int, log *zap.Logger) *Request {
	r := &Request{
		ID:      uuid.New(),
		Kind:    kind,
		Player:  player,
		Ability: id,
		Slot:    slot,
	}
	r.machine = fsm.NewFSM(
		StateRequested,
		fsm.Events{
			{Name: EventValidate, Src: []string{StateRequested}, Dst: StateValidated},
			{Name: EventReject, Src: []string{StateRequested}, Dst: StateRejected},
			{Name: EventApply, Src: []string{StateValidated}, Dst: StateApplied},
			{Name: EventDespawn, Src: []string{StateApplied}, Dst: StateDespawned},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.Debug("ability request transition",
					zap.String("request", r.ID.String()),
					zap.Stringer("kind", r.Kind),
					zap.Uint8("player", uint8(r.Player)),
					zap.Uint16("ability", uint16(r.Ability)),
					zap.String("from", e.Src),
					zap.String("to", e.Dst),
				)
			},
		},
	)
	return r
}

// State returns the current lifecycle state.
func (r *Request) State() string { return r.machine.Current() }

// Terminal reports whether the request can no longer change state.
func (r *Request) Terminal() bool {
	s := r.machine.Current()
	return s == StateDespawned || s == StateRejected
}

func (r *Request) Validate(ctx context.Context) error {
	return r.fire(ctx, EventValidate)
}

// Reject discards the request with reason.
func (r *Request) Reject(ctx context.Context, reason event.Reason) error {
	if err := r.fire(ctx, EventReject); err != nil {
		return err
	}
	r.Reason = reason
	return nil
}

func (r *Request) Apply(ctx context.Context) error {
	return r.fire(ctx, EventApply)
}

func (r *Request) Despawn(ctx context.Context) error {
	return r.fire(ctx, EventDespawn)
}

func (r *Request) fire(ctx context.Context, name string) error {
	if err := r.machine.Event(ctx, name); err != nil {
		return fmt.Errorf("request %s %s: %w", r.ID, name, err)
	}
	return nil
}
