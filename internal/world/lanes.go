package world

import (
	"math"

	"github.com/obelisk/lanedefense/internal/config"
)

// Lanes is the fixed lane geometry. Enemies walk from the spawn row down to
// the target row; players stand PlayerOffsetY above the target row.
type Lanes struct {
	cfg config.LanesConfig
}

func NewLanes(cfg config.LanesConfig) Lanes {
	return Lanes{cfg: cfg}
}

func (l Lanes) Count() int { return l.cfg.Count }

// Valid reports whether lane is a lane index.
func (l Lanes) Valid(lane int) bool { return lane >= 0 && lane < l.cfg.Count }

func (l Lanes) X(lane int) float64 { return l.cfg.SpawnX[lane] }

func (l Lanes) Spawn(lane int) (x, y float64) { return l.cfg.SpawnX[lane], l.cfg.SpawnY }

// Target is the point at the end of a lane that enemies walk towards.
func (l Lanes) Target(lane int) (x, y float64) { return l.cfg.SpawnX[lane], l.cfg.TargetY }

// PlayerY is the row every player stands on.
func (l Lanes) PlayerY() float64 { return l.cfg.TargetY + l.cfg.PlayerOffsetY }

func (l Lanes) MeleeRange() float64    { return l.cfg.MeleeRange }
func (l Lanes) EnemySpeed() float64    { return l.cfg.EnemySpeed }
func (l Lanes) SpawnJitter() float64   { return l.cfg.SpawnJitter }
func (l Lanes) ArriveEpsilon() float64 { return l.cfg.ArriveEpsilon }

// DistanceToTarget is the straight-line distance from (x, y) to the lane's
// target point.
func (l Lanes) DistanceToTarget(lane int, x, y float64) float64 {
	tx, ty := l.Target(lane)
	return math.Hypot(x-tx, y-ty)
}
