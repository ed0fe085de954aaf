package combat

import "go.uber.org/zap"

// Rand is the random source consumed by a Resolver. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Mitigator computes mitigated damage for one channel.
type Mitigator interface {
	Mitigate(attack, defence int) int
}

// MitigatorFunc adapts a plain function to Mitigator.
type MitigatorFunc func(attack, defence int) int

func (f MitigatorFunc) Mitigate(attack, defence int) int { return f(attack, defence) }

// Resolver rolls and mitigates attacks. It is not safe for concurrent use;
// the simulation drives it from a single goroutine.
type Resolver struct {
	rng       Rand
	mitigator Mitigator
	log       *zap.Logger
}

// NewResolver creates a resolver. A nil mitigator uses CalcDamage.
func NewResolver(rng Rand, m Mitigator, log *zap.Logger) *Resolver {
	if m == nil {
		m = MitigatorFunc(CalcDamage)
	}
	return &Resolver{rng: rng, mitigator: m, log: log}
}

// Roll returns true with probability p.
func (r *Resolver) Roll(p float64) bool {
	if p <= 0 {
		return false
	}
	return r.rng.Float64() < p
}

// Between returns a uniform integer in [lo, hi]. Swapped bounds are
// reordered.
func (r *Resolver) Between(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.rng.IntN(hi-lo+1)
}

func (r *Resolver) mitigate(attack, defence int) int {
	if attack <= 0 {
		return 0
	}
	return r.mitigator.Mitigate(attack, defence)
}

// Resolve performs one attack of a against d.
func (r *Resolver) Resolve(a Attack, d Defence) Result {
	var res Result
	res.Crit = r.Roll(a.CritChance)

	base := r.Between(a.MinDamage, a.MaxDamage)
	if res.Crit {
		base *= 2
	}
	res.Damage = r.mitigate(base, d.Armour)

	for e := Element(0); e < ElementCount; e++ {
		if a.Elemental[e] <= 0 {
			continue
		}
		dmg := r.mitigate(a.Elemental[e], d.Elemental[e])
		res.Damage += dmg
		if dmg > 0 {
			res.setStatus(e)
		}
	}

	r.log.Debug("combat resolved",
		zap.Int("roll", base),
		zap.Int("armour", d.Armour),
		zap.Int("damage", res.Damage),
		zap.Bool("crit", res.Crit),
	)
	return res
}
