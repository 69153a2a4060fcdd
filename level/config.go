// Package level loads arena descriptions and turns them into a running match.
package level

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/plus3/bardmages/ai"
	"github.com/plus3/bardmages/bardmage"
	"github.com/plus3/bardmages/tune"
	"gopkg.in/yaml.v3"
)

// ErrInvalidLevel is wrapped by every validation failure.
var ErrInvalidLevel = errors.New("invalid level")

//go:embed grove.yaml
var groveYAML []byte

// Config describes one arena and the characters fighting in it.
type Config struct {
	Name         string            `yaml:"name"`
	Seed         uint64            `yaml:"seed"`
	Arena        ArenaConfig       `yaml:"arena"`
	Obstacles    []Obstacle        `yaml:"obstacles"`
	Rhythms      []tune.RhythmType `yaml:"rhythms"`
	TunesPerBard int               `yaml:"tunes_per_bard"`
	Characters   []CharacterConfig `yaml:"characters"`
}

type ArenaConfig struct {
	Width       float64 `yaml:"width"`
	Depth       float64 `yaml:"depth"`
	CellSize    float64 `yaml:"cell_size"`
	AgentRadius float64 `yaml:"agent_radius"`
}

// Obstacle is a solid axis-aligned box on the ground.
type Obstacle struct {
	MinX float64 `yaml:"min_x"`
	MinZ float64 `yaml:"min_z"`
	MaxX float64 `yaml:"max_x"`
	MaxZ float64 `yaml:"max_z"`
}

// Point is a position on the ground plane.
type Point struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

// CharacterConfig places one character. Characters without a controller are
// not AI driven and just stand where they are put.
type CharacterConfig struct {
	Player         bardmage.PlayerID `yaml:"player"`
	MinionOf       bardmage.PlayerID `yaml:"minion_of"`
	Controller     string            `yaml:"controller"`
	AttackRange    float64           `yaml:"attack_range"`
	RepathDistance float64           `yaml:"repath_distance"`
	Position       Point             `yaml:"position"`
	Facing         Point             `yaml:"facing"`
	Health         float64           `yaml:"health"`
	Speed          float64           `yaml:"speed"`
	TurnSpeed      float64           `yaml:"turn_speed"`
}

// IsMinion reports whether the character is summoned by another player.
func (c *CharacterConfig) IsMinion() bool {
	return c.MinionOf != bardmage.PlayerNone
}

// Load reads and validates a level file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a level, fills in defaults and validates it. Unknown keys are
// rejected.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLevel, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in grove arena.
func Default() *Config {
	cfg, err := Parse(groveYAML)
	if err != nil {
		panic("embedded level: " + err.Error())
	}
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "unnamed"
	}
	if c.Arena.CellSize == 0 {
		c.Arena.CellSize = 0.5
	}
	if c.TunesPerBard == 0 {
		c.TunesPerBard = 3
	}
	for i := range c.Characters {
		ch := &c.Characters[i]
		if ch.Player == bardmage.PlayerNone {
			ch.Player = ch.MinionOf
		}
		if ch.Health == 0 {
			ch.Health = 100
		}
		if ch.Speed == 0 {
			ch.Speed = 4
		}
		if ch.TurnSpeed == 0 {
			ch.TurnSpeed = 540
		}
		if ch.Facing == (Point{}) {
			ch.Facing = Point{X: 1}
		}
	}
}

// Validate checks the level for mistakes and reports all of them at once.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidLevel}, args...)...))
	}

	if c.Arena.Width <= 0 || c.Arena.Depth <= 0 {
		fail("arena must have a positive size, got %gx%g", c.Arena.Width, c.Arena.Depth)
	}
	if c.Arena.CellSize <= 0 {
		fail("cell size must be positive, got %g", c.Arena.CellSize)
	}
	if c.Arena.AgentRadius < 0 {
		fail("agent radius must not be negative, got %g", c.Arena.AgentRadius)
	}
	if c.TunesPerBard < 0 {
		fail("tunes per bard must not be negative, got %d", c.TunesPerBard)
	}
	for _, r := range c.Rhythms {
		if !r.Valid() {
			fail("unknown rhythm %q", r)
		}
	}

	players := make(map[bardmage.PlayerID]bool)
	for _, ch := range c.Characters {
		if !ch.IsMinion() {
			players[ch.Player] = true
		}
	}

	seen := make(map[bardmage.PlayerID]bool)
	for i, ch := range c.Characters {
		if ch.Player <= bardmage.PlayerNone {
			fail("character %d: player must be set", i)
		}
		if ch.IsMinion() {
			if !players[ch.MinionOf] {
				fail("character %d: minion of %s, which has no character", i, ch.MinionOf)
			}
		} else {
			if seen[ch.Player] {
				fail("character %d: player %s placed twice", i, ch.Player)
			}
			seen[ch.Player] = true
		}
		if ch.Health <= 0 {
			fail("character %d: health must be positive", i)
		}
		if ch.Speed < 0 || ch.TurnSpeed < 0 {
			fail("character %d: speeds must not be negative", i)
		}
		if ch.Position.X < 0 || ch.Position.Z < 0 || ch.Position.X > c.Arena.Width || ch.Position.Z > c.Arena.Depth {
			fail("character %d: position (%g, %g) is outside the arena", i, ch.Position.X, ch.Position.Z)
		}
		if ch.Controller != "" {
			if _, err := ai.NewBehavior(ch.Controller, ai.BehaviorConfig{}); err != nil {
				fail("character %d: %v", i, err)
			}
		}
	}
	return errors.Join(errs...)
}
