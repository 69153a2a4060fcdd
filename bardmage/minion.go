package bardmage

import "github.com/plus3/bardmages/ecs"

// MinionSystem removes minions once their owner is dead or gone.
type MinionSystem struct {
	Registry *Registry

	Minions ecs.Query[struct{ *Minion }]
}

func (s *MinionSystem) Execute(frame *ecs.UpdateFrame) {
	for id, m := range s.Minions.Iter() {
		owner, ok := s.Registry.Lookup(m.Minion.Owner)
		if !ok {
			continue
		}
		if frame.Storage.Alive(owner) {
			if life := ecs.ReadComponent[Life](frame.Storage, owner); life == nil || life.Alive() {
				continue
			}
		}
		frame.Commands.Delete(id)
	}
}
