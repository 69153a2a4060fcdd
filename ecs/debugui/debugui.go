// Package debugui renders Dear ImGui debugging windows for an ECS world:
// an entity browser, a component inspector and scheduler performance stats.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bardmages/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState singleton with current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}

// WindowsSystem draws the debug windows spawned by SpawnDebugUI. The
// inspector follows the entity selected in the browser.
type WindowsSystem struct {
	Scheduler *ecs.Scheduler

	Browsers   ecs.Query[struct{ *EntityBrowserComponent }]
	Inspectors ecs.Query[struct{ *ComponentInspectorComponent }]
	Stats      ecs.Query[struct{ *PerformanceStatsComponent }]
}

func (w *WindowsSystem) Execute(frame *ecs.UpdateFrame) {
	storage := frame.Storage

	var browser *EntityBrowserComponent
	for b := range w.Browsers.Values() {
		current := b.EntityBrowserComponent
		browser = current
		frame.Commands.Defer(func() { current.Render(storage) })
	}

	for i := range w.Inspectors.Values() {
		inspector := i.ComponentInspectorComponent
		frame.Commands.Defer(func() {
			var selected ecs.EntityId
			if browser != nil {
				selected = browser.GetSelectedEntity()
			}
			inspector.Render(storage, selected)
		})
	}

	dt := float32(frame.DeltaTime)
	for s := range w.Stats.Values() {
		stats := s.PerformanceStatsComponent
		frame.Commands.Defer(func() {
			var scheduler *ecs.SchedulerStats
			if w.Scheduler != nil {
				scheduler = w.Scheduler.GetStats()
			}
			stats.Render(storage, scheduler, dt)
		})
	}
}
