// Package stat implements buffable statistics: a base value plus timed or
// permanent percentage/absolute modifiers.
package stat

import "math"

// permanentEpsilon is the tolerance under which an expiry counts as zero.
const permanentEpsilon = 1e-6

// Buff describes a modifier on a Statistic.
//
// Expiry is an absolute game time after which the buff is swept; zero means
// it never expires. Percentages add (0.1 + 0.2 = +30%), they do not compound.
// Absolute amounts are added after the percentage term:
//
//	value = floor(base * (1 + Σpercentage)) + Σamount
type Buff struct {
	Expiry     float64 `yaml:"expiry"`
	Percentage float64 `yaml:"percentage"`
	Amount     float64 `yaml:"amount"`
}

// Permanent reports whether the buff never expires.
func (b Buff) Permanent() bool {
	return math.Abs(b.Expiry) < permanentEpsilon
}

// Expired reports whether a timed buff has passed its expiry at game time now.
func (b Buff) Expired(now float64) bool {
	return !b.Permanent() && b.Expiry < now
}

// Statistic is a value that can be modified, temporarily or permanently.
// Value is cached and recomputed on every base change, buff add and sweep.
type Statistic struct {
	base  float64
	value float64
	buffs []Buff
}

func New(base float64) Statistic {
	return Statistic{base: base, value: base}
}

func (s *Statistic) Base() float64  { return s.base }
func (s *Statistic) Value() float64 { return s.value }

// Buffs returns a copy of the active buff list.
func (s *Statistic) Buffs() []Buff {
	out := make([]Buff, len(s.buffs))
	copy(out, s.buffs)
	return out
}

// SetBase replaces the base value and recomputes the value.
func (s *Statistic) SetBase(base float64) {
	s.base = base
	s.recalculate()
}

// AddBuff appends a buff and recomputes the value immediately.
func (s *Statistic) AddBuff(b Buff) {
	s.buffs = append(s.buffs, b)
	s.recalculate()
}

// Update sweeps buffs that expired before game time now. The value is
// recomputed only when something was removed; the return reports that.
func (s *Statistic) Update(now float64) bool {
	if len(s.buffs) == 0 {
		return false
	}
	before := len(s.buffs)
	kept := s.buffs[:0]
	for _, b := range s.buffs {
		if !b.Expired(now) {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < before; i++ {
		s.buffs[i] = Buff{}
	}
	s.buffs = kept
	if len(s.buffs) == before {
		return false
	}
	s.recalculate()
	return true
}

func (s *Statistic) recalculate() {
	var perc, abs float64
	for _, b := range s.buffs {
		perc += b.Percentage
		abs += b.Amount
	}
	// floor applies to the scaled base only, never to the flat amounts
	s.value = math.Floor(s.base*(1+perc)) + abs
}
