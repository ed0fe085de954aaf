package data

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed yaml/waves.yaml
var embeddedWaves []byte

// EnemyKind selects one of the fixed enemy templates.
type EnemyKind int

const (
	EnemyWolf EnemyKind = iota
	EnemyBear
)

// EnemyKinds lists every kind in spawn order.
var EnemyKinds = []EnemyKind{EnemyWolf, EnemyBear}

func (k EnemyKind) String() string {
	switch k {
	case EnemyWolf:
		return "wolf"
	case EnemyBear:
		return "bear"
	}
	return fmt.Sprintf("EnemyKind(%d)", int(k))
}

// WaveData is one scheduled batch: per-lane counts for each enemy kind and
// the delay in game seconds before the next wave.
type WaveData struct {
	Wolves        []int   `yaml:"wolves"`
	Bears         []int   `yaml:"bears"`
	PostWaveDelay float64 `yaml:"post_wave_delay"`
}

// Counts returns the per-lane counts for kind.
func (w WaveData) Counts(kind EnemyKind) []int {
	switch kind {
	case EnemyWolf:
		return w.Wolves
	case EnemyBear:
		return w.Bears
	}
	return nil
}

// Total returns the number of enemies the wave spawns across all lanes.
func (w WaveData) Total() int {
	n := 0
	for _, kind := range EnemyKinds {
		for _, c := range w.Counts(kind) {
			n += c
		}
	}
	return n
}

// WaveTable is the ordered, read-only wave schedule.
type WaveTable struct {
	waves []WaveData
}

// NewWaveTable wraps waves after validating them against the lane count.
func NewWaveTable(waves []WaveData, lanes int) (*WaveTable, error) {
	for i, w := range waves {
		for _, kind := range EnemyKinds {
			counts := w.Counts(kind)
			if len(counts) != lanes {
				return nil, fmt.Errorf("wave %d: %s has %d lane counts, want %d", i, kind, len(counts), lanes)
			}
			for lane, c := range counts {
				if c < 0 {
					return nil, fmt.Errorf("wave %d: negative %s count in lane %d", i, kind, lane)
				}
			}
		}
		if w.PostWaveDelay < 0 {
			return nil, fmt.Errorf("wave %d: negative post_wave_delay", i)
		}
	}
	return &WaveTable{waves: waves}, nil
}

func (t *WaveTable) Len() int { return len(t.waves) }

// At returns wave i. It panics when i is out of range.
func (t *WaveTable) At(i int) WaveData { return t.waves[i] }

type waveListFile struct {
	Waves []WaveData `yaml:"waves"`
}

// DefaultWaveTable parses the schedule compiled into the binary.
func DefaultWaveTable(lanes int) (*WaveTable, error) {
	return ParseWaveTable(embeddedWaves, lanes)
}

// LoadWaveTable loads a wave schedule from a YAML file.
func LoadWaveTable(path string, lanes int) (*WaveTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read waves: %w", err)
	}
	return ParseWaveTable(raw, lanes)
}

// ParseWaveTable decodes and validates a YAML wave schedule.
func ParseWaveTable(raw []byte, lanes int) (*WaveTable, error) {
	var f waveListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse waves: %w", err)
	}
	return NewWaveTable(f.Waves, lanes)
}
