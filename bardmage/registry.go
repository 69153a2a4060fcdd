package bardmage

import (
	"slices"

	"github.com/plus3/bardmages/ecs"
)

// Registry maps player slots to the entity playing them for one match.
type Registry struct {
	players map[PlayerID]ecs.EntityId
}

func NewRegistry() *Registry {
	return &Registry{players: make(map[PlayerID]ecs.EntityId)}
}

// Add registers (or re-registers) the entity for a player slot.
func (r *Registry) Add(id PlayerID, entity ecs.EntityId) {
	r.players[id] = entity
}

func (r *Registry) Lookup(id PlayerID) (ecs.EntityId, bool) {
	entity, ok := r.players[id]
	return entity, ok
}

// Players returns the registered slots in ascending order.
func (r *Registry) Players() []PlayerID {
	ids := make([]PlayerID, 0, len(r.players))
	for id := range r.players {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (r *Registry) Len() int {
	return len(r.players)
}
