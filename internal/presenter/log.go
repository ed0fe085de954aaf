package presenter

import (
	"go.uber.org/zap"

	"github.com/obelisk/lanedefense/internal/core/ecs"
)

// Logger writes presenter calls to a zap logger. The headless driver uses
// it in place of a renderer. Health bars and text are Debug, the rest Info.
type Logger struct {
	log *zap.Logger
}

func NewLogger(log *zap.Logger) *Logger {
	return &Logger{log: log.Named("presenter")}
}

func (l *Logger) SpawnEffect(effect string, x, y float64, frameStart, frameEnd int, loop bool) {
	l.log.Info("spawn effect",
		zap.String("effect", effect),
		zap.Float64("x", x),
		zap.Float64("y", y),
		zap.Int("frame_start", frameStart),
		zap.Int("frame_end", frameEnd),
		zap.Bool("loop", loop),
	)
}

func (l *Logger) PlayCue(name string) {
	l.log.Info("play cue", zap.String("cue", name))
}

func (l *Logger) UpdateText(key, text string) {
	l.log.Debug("text", zap.String("key", key), zap.String("text", text))
}

func (l *Logger) Despawn(id ecs.EntityID) {
	l.log.Debug("despawn", zap.Stringer("entity", id))
}

func (l *Logger) SetAnimation(id ecs.EntityID, state int) {
	l.log.Info("animation", zap.Stringer("entity", id), zap.Int("state", state))
}

func (l *Logger) SetHealthBar(id ecs.EntityID, fraction float64) {
	l.log.Debug("health bar", zap.Stringer("entity", id), zap.Float64("fraction", fraction))
}
