// Package input carries player intents from the input collaborator into
// the simulation. Commands are queued from any goroutine and drained by
// the input system at the start of each tick.
package input

import "github.com/obelisk/lanedefense/internal/data"

// Command is the closed set of player intents.
type Command interface {
	command()
}

// Purchase asks to unlock an ability for a player.
type Purchase struct {
	Player  data.PlayerID
	Ability data.AbilityID
}

// Cast asks to fire the ability bound to a 1-based slot.
type Cast struct {
	Player data.PlayerID
	Slot   int
}

// LaneChange moves a player's target lane by Delta (±1).
type LaneChange struct {
	Player data.PlayerID
	Delta  int
}

func (Purchase) command()   {}
func (Cast) command()       {}
func (LaneChange) command() {}

// Queue is a bounded buffer of commands.
type Queue struct {
	ch chan Command
}

func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan Command, size)}
}

// Push enqueues c without blocking. It returns false when the queue is full
// and the command was dropped.
func (q *Queue) Push(c Command) bool {
	select {
	case q.ch <- c:
		return true
	default:
		return false
	}
}

// Drain hands up to max queued commands to fn in arrival order. max <= 0
// drains everything currently queued.
func (q *Queue) Drain(max int, fn func(Command)) int {
	n := 0
	for max <= 0 || n < max {
		select {
		case c := <-q.ch:
			fn(c)
			n++
		default:
			return n
		}
	}
	return n
}

// Len returns the number of queued commands.
func (q *Queue) Len() int { return len(q.ch) }
