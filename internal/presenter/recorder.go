package presenter

import "github.com/obelisk/lanedefense/internal/core/ecs"

type CallKind int

const (
	CallSpawnEffect CallKind = iota
	CallPlayCue
	CallUpdateText
	CallDespawn
	CallSetAnimation
	CallSetHealthBar
)

// Call is one recorded presenter invocation. Only the fields relevant to
// Kind are set.
type Call struct {
	Kind     CallKind
	Name     string // effect, cue or text key
	Text     string
	Entity   ecs.EntityID
	X, Y     float64
	From, To int
	Loop     bool
	State    int
	Fraction float64
}

// Recorder keeps every call in order. Used by tests and replays.
type Recorder struct {
	Calls []Call
}

func (r *Recorder) SpawnEffect(effect string, x, y float64, frameStart, frameEnd int, loop bool) {
	r.Calls = append(r.Calls, Call{Kind: CallSpawnEffect, Name: effect, X: x, Y: y, From: frameStart, To: frameEnd, Loop: loop})
}

func (r *Recorder) PlayCue(name string) {
	r.Calls = append(r.Calls, Call{Kind: CallPlayCue, Name: name})
}

func (r *Recorder) UpdateText(key, text string) {
	r.Calls = append(r.Calls, Call{Kind: CallUpdateText, Name: key, Text: text})
}

func (r *Recorder) Despawn(id ecs.EntityID) {
	r.Calls = append(r.Calls, Call{Kind: CallDespawn, Entity: id})
}

func (r *Recorder) SetAnimation(id ecs.EntityID, state int) {
	r.Calls = append(r.Calls, Call{Kind: CallSetAnimation, Entity: id, State: state})
}

func (r *Recorder) SetHealthBar(id ecs.EntityID, fraction float64) {
	r.Calls = append(r.Calls, Call{Kind: CallSetHealthBar, Entity: id, Fraction: fraction})
}

// Of returns the recorded calls of one kind.
func (r *Recorder) Of(kind CallKind) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Cues returns the names of played cues in order.
func (r *Recorder) Cues() []string {
	var out []string
	for _, c := range r.Of(CallPlayCue) {
		out = append(out, c.Name)
	}
	return out
}

// LastText returns the most recent text pushed for key.
func (r *Recorder) LastText(key string) (string, bool) {
	for i := len(r.Calls) - 1; i >= 0; i-- {
		c := r.Calls[i]
		if c.Kind == CallUpdateText && c.Name == key {
			return c.Text, true
		}
	}
	return "", false
}

func (r *Recorder) Reset() { r.Calls = r.Calls[:0] }
