// Package bardmage defines the components every bardmage character carries and
// the systems that move them around the arena.
package bardmage

import (
	"fmt"

	"github.com/plus3/bardmages/ecs"
	"github.com/plus3/bardmages/vmath"
)

// PlayerID identifies which player slot a character belongs to.
type PlayerID int

const (
	PlayerNone PlayerID = iota
	PlayerOne
	PlayerTwo
	PlayerThree
	PlayerFour
)

func (p PlayerID) String() string {
	switch p {
	case PlayerNone:
		return "none"
	case PlayerOne:
		return "P1"
	case PlayerTwo:
		return "P2"
	case PlayerThree:
		return "P3"
	case PlayerFour:
		return "P4"
	default:
		return fmt.Sprintf("P%d", int(p))
	}
}

// Transform is a character's place in the world. Forward is kept on the
// horizontal plane.
type Transform struct {
	Position vmath.Vec3
	Forward  vmath.Vec3
}

// Player marks a controllable character and the slot it plays for.
type Player struct {
	ID PlayerID
}

// Minion marks a character summoned by, and fighting for, another player.
type Minion struct {
	Owner PlayerID
}

// Life tracks hit points.
type Life struct {
	Health    float64
	MaxHealth float64
}

// Alive reports whether the character still has health left.
func (l *Life) Alive() bool {
	return l.Health > 0
}

// Damage subtracts health, never going below zero, and reports whether this
// hit was the killing blow.
func (l *Life) Damage(amount float64) bool {
	if !l.Alive() || amount <= 0 {
		return false
	}
	l.Health = max(l.Health-amount, 0)
	return !l.Alive()
}

// RegisterComponents registers every component in this package.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Minion](registry)
	ecs.RegisterComponent[Life](registry)
	ecs.RegisterComponent[Locomotion](registry)
}
