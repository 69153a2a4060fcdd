package debugui

import "github.com/plus3/bardmages/ecs"

// SpawnDebugUI spawns the debug windows and registers the systems that draw
// them on ui. The performance window reports on observed, or on ui when
// observed is nil. The windows only appear between an ImGui BeginFrame and
// EndFrame.
func SpawnDebugUI(storage *ecs.Storage, ui, observed *ecs.Scheduler) {
	if observed == nil {
		observed = ui
	}
	storage.Spawn(NewEntityBrowserComponent(100))
	storage.Spawn(NewComponentInspectorComponent())
	storage.Spawn(NewPerformanceStatsComponent(120))
	ecs.NewSingleton[ImguiInputState](storage)
	ui.Register(&WindowsSystem{Scheduler: observed})
	ui.Register(&ImguiSystem{})
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[ComponentInspectorComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[ImguiItem](registry)
}
