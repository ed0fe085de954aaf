// Package combat resolves a single exchange between an attacker and a
// defender: crit roll, damage roll and mitigation per channel.
package combat

// Element indexes the four elemental channels.
type Element int

const (
	Fire Element = iota
	Electricity
	Poison
	Frost
	ElementCount
)

func (e Element) String() string {
	switch e {
	case Fire:
		return "fire"
	case Electricity:
		return "electricity"
	case Poison:
		return "poison"
	case Frost:
		return "frost"
	}
	return "unknown"
}

// Attack is the attacker side of a resolution.
type Attack struct {
	MinDamage  int
	MaxDamage  int
	CritChance float64
	Elemental  [ElementCount]int
}

// Defence is the defender side of a resolution. Armour is the already
// buffed base armour value.
type Defence struct {
	Armour    int
	Elemental [ElementCount]int
}

// Result is the outcome of one resolution.
type Result struct {
	Damage int
	Crit   bool

	Burning  bool
	Shocked  bool
	Poisoned bool
	Frozen   bool
}

// Status reports whether the status flag for channel e was set.
func (r Result) Status(e Element) bool {
	switch e {
	case Fire:
		return r.Burning
	case Electricity:
		return r.Shocked
	case Poison:
		return r.Poisoned
	case Frost:
		return r.Frozen
	}
	return false
}

func (r *Result) setStatus(e Element) {
	switch e {
	case Fire:
		r.Burning = true
	case Electricity:
		r.Shocked = true
	case Poison:
		r.Poisoned = true
	case Frost:
		r.Frozen = true
	}
}

// CalcDamage is the mitigation curve a*a/(a+d) with truncating integer
// division. A non-positive attack is a disabled channel and deals nothing.
// Negative defence is treated as zero.
func CalcDamage(attack, defence int) int {
	if attack <= 0 {
		return 0
	}
	if defence < 0 {
		defence = 0
	}
	return attack * attack / (attack + defence)
}
