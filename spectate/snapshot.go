// Package spectate streams match state to websocket spectators.
package spectate

import (
	"iter"

	"github.com/plus3/bardmages/ai"
	"github.com/plus3/bardmages/bardmage"
	"github.com/plus3/bardmages/ecs"
	"github.com/plus3/bardmages/level"
	"github.com/plus3/bardmages/tune"
)

// Snapshot is the message sent to spectators.
type Snapshot struct {
	Type     string       `json:"type"`
	MatchID  string       `json:"matchId"`
	Level    string       `json:"level"`
	Tick     uint64       `json:"tick"`
	Elapsed  float64      `json:"elapsed"`
	Finished bool         `json:"finished"`
	Winner   string       `json:"winner,omitempty"`
	Agents   []AgentState `json:"agents"`
}

// AgentState is one character within a Snapshot.
type AgentState struct {
	Entity    uint64       `json:"entity"`
	Player    string       `json:"player"`
	Minion    bool         `json:"minion,omitempty"`
	Position  [3]float64   `json:"position"`
	Forward   [2]float64   `json:"forward"`
	Health    float64      `json:"health"`
	MaxHealth float64      `json:"maxHealth"`
	Steering  string       `json:"steering,omitempty"`
	NodeIndex int          `json:"nodeIndex"`
	Path      [][3]float64 `json:"path,omitempty"`
	Tune      string       `json:"tune,omitempty"`
}

type character struct {
	Transform *bardmage.Transform
	Player    *bardmage.Player
	Life      *bardmage.Life   `ecs:"optional"`
	Minion    *bardmage.Minion `ecs:"optional"`
	Control   *ai.Control      `ecs:"optional"`
	Bard      *tune.Bard       `ecs:"optional"`
}

// Capture builds a snapshot of every character in storage.
func Capture(storage *ecs.Storage, tick uint64) Snapshot {
	var match *level.Match
	storage.ReadSingleton(&match)
	return capture(ecs.NewView[character](storage).Iter(), match, tick)
}

func capture(characters iter.Seq2[ecs.EntityId, character], match *level.Match, tick uint64) Snapshot {
	snap := Snapshot{Type: "snapshot", Tick: tick, Agents: []AgentState{}}
	if match != nil {
		snap.MatchID = match.ID.String()
		snap.Level = match.Level
		snap.Elapsed = match.Elapsed
		snap.Finished = match.Finished
		if match.Finished {
			snap.Winner = match.Winner.String()
		}
	}

	for id, c := range characters {
		state := AgentState{
			Entity:    uint64(id),
			Player:    c.Player.ID.String(),
			Minion:    c.Minion != nil,
			Position:  [3]float64{c.Transform.Position.X, c.Transform.Position.Y, c.Transform.Position.Z},
			Forward:   [2]float64{c.Transform.Forward.X, c.Transform.Forward.Z},
			NodeIndex: -1,
		}
		if c.Life != nil {
			state.Health = c.Life.Health
			state.MaxHealth = c.Life.MaxHealth
		}
		if c.Control != nil {
			state.Steering = c.Control.State().String()
			state.NodeIndex = c.Control.NodeIndex()
			for _, corner := range c.Control.Path() {
				state.Path = append(state.Path, [3]float64{corner.X, corner.Y, corner.Z})
			}
		}
		if c.Bard != nil {
			if playing, ok := c.Bard.Playing(); ok {
				state.Tune = playing.Name
			}
		}
		snap.Agents = append(snap.Agents, state)
	}
	return snap
}

// Broadcaster delivers snapshots to spectators.
type Broadcaster interface {
	Broadcast(Snapshot) error
}

// SnapshotSystem broadcasts a snapshot every Every frames.
type SnapshotSystem struct {
	Broadcaster Broadcaster
	Every       uint64

	Characters ecs.Query[character]
	Match      ecs.Singleton[level.Match]
}

func (s *SnapshotSystem) Execute(frame *ecs.UpdateFrame) {
	every := max(s.Every, 1)
	if s.Broadcaster == nil || frame.Tick%every != 0 {
		return
	}
	// Delivery failures only drop the failing spectator.
	_ = s.Broadcaster.Broadcast(capture(s.Characters.Iter(), s.Match.Get(), frame.Tick))
}
