package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingSystem struct {
	name  string
	phase Phase
	log   *[]string
}

func (p recordingSystem) Phase() Phase { return p.phase }
func (p recordingSystem) Update(time.Duration) {
	*p.log = append(*p.log, p.name)
}

func TestRunner_PhaseThenRegistrationOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recordingSystem{"cleanup", PhaseCleanup, &log})
	r.Register(recordingSystem{"combat", PhaseUpdate, &log})
	r.Register(recordingSystem{"regen", PhasePostUpdate, &log})
	r.Register(recordingSystem{"abilities", PhaseUpdate, &log})
	r.Register(recordingSystem{"input", PhaseInput, &log})

	r.Tick(time.Second)
	assert.Equal(t, []string{"input", "combat", "abilities", "regen", "cleanup"}, log)
	assert.Equal(t, 5, r.Len())

	log = log[:0]
	r.TickPhase(PhaseUpdate, time.Second)
	assert.Equal(t, []string{"combat", "abilities"}, log)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "post_update", PhasePostUpdate.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
