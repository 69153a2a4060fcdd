package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bardmages/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ComponentTypes []string
}

// EntityBrowserCache holds the entity list between frames. It is rebuilt when
// the entity count changes or on request.
type EntityBrowserCache struct {
	entities      []EntityInfo
	lastCount     int
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache:              &EntityBrowserCache{sortAscending: true, lastCount: -1},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if eb.cache.lastCount != storage.Len() {
		eb.rebuild(storage)
	}

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}
	imgui.SameLine()
	if imgui.Button("Refresh") {
		eb.rebuild(storage)
	}

	filtered := eb.filtered()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sort()
			sortSpecs.SetSpecsDirty(false)
		}

		start := min(eb.currentPage*eb.maxEntitiesPerPage, len(filtered))
		end := min(start+eb.maxEntitiesPerPage, len(filtered))
		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := fmt.Sprintf("%d:%d", entity.ID.Index(), entity.ID.Generation())
			if imgui.SelectableBoolV(label, eb.selectedEntityId == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.ComponentTypes)))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		eb.currentPage = 0
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

func (eb *EntityBrowserComponent) rebuild(storage *ecs.Storage) {
	eb.cache.entities = eb.cache.entities[:0]
	for id := range storage.Entities() {
		types := storage.ComponentTypes(id)
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}
		eb.cache.entities = append(eb.cache.entities, EntityInfo{ID: id, ComponentTypes: names})
	}
	eb.cache.lastCount = storage.Len()
	eb.sort()
}

func (eb *EntityBrowserComponent) sort() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool
		switch eb.cache.sortColumn {
		case 1:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 2:
			less = len(a.ComponentTypes) < len(b.ComponentTypes)
		default:
			less = a.ID.Index() < b.ID.Index()
		}
		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

func (eb *EntityBrowserComponent) filtered() []EntityInfo {
	if eb.filterText == "" {
		return eb.cache.entities
	}

	needle := strings.ToLower(eb.filterText)
	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	for _, entity := range eb.cache.entities {
		id := fmt.Sprintf("%d", entity.ID.Index())
		components := strings.ToLower(strings.Join(entity.ComponentTypes, " "))
		if strings.Contains(id, needle) || strings.Contains(components, needle) {
			filtered = append(filtered, entity)
		}
	}
	return filtered
}

// GetSelectedEntity returns the entity picked in the table, or 0.
func (eb *EntityBrowserComponent) GetSelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}
