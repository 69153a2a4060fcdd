package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bardmages/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

// Render shows every component of the selected entity. Numbers, booleans and
// strings can be edited in place.
func (ci *ComponentInspectorComponent) Render(storage *ecs.Storage, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	ci.selectedEntityId = selectedEntityId
	if ci.selectedEntityId == 0 {
		imgui.Text("No entity selected")
		return
	}
	if !storage.Alive(ci.selectedEntityId) {
		imgui.Text(fmt.Sprintf("Entity %d:%d no longer exists", selectedEntityId.Index(), selectedEntityId.Generation()))
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %d (generation %d)", selectedEntityId.Index(), selectedEntityId.Generation()))
	imgui.Separator()

	for _, compType := range storage.ComponentTypes(ci.selectedEntityId) {
		component := storage.GetComponent(ci.selectedEntityId, compType)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			renderValue(reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}
}

// renderValue draws the exported fields of a struct value. Edits are written
// straight through since v is addressable.
func renderValue(v reflect.Value) {
	if v.Kind() != reflect.Struct {
		renderField("value", v)
		return
	}
	for _, field := range fieldsOf(v.Type()) {
		fv := v.Field(field.Index)
		if field.IsPointer {
			if fv.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fv = fv.Elem()
		}
		renderField(field.Name, fv)
	}
}

func renderField(name string, v reflect.Value) {
	id := "##" + name
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := int32(v.Int())
		label(name)
		if imgui.InputInt(id, &n) && v.CanSet() {
			v.SetInt(int64(n))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := int32(v.Uint())
		label(name)
		if imgui.InputInt(id, &n) && n >= 0 && v.CanSet() {
			v.SetUint(uint64(n))
		}

	case reflect.Float32, reflect.Float64:
		f := float32(v.Float())
		label(name)
		if imgui.InputFloat(id, &f) && v.CanSet() {
			v.SetFloat(float64(f))
		}

	case reflect.Bool:
		b := v.Bool()
		if imgui.Checkbox(name, &b) && v.CanSet() {
			v.SetBool(b)
		}

	case reflect.String:
		s := v.String()
		label(name)
		if imgui.InputTextWithHint(id, "", &s, imgui.InputTextFlagsNone, nil) && v.CanSet() {
			v.SetString(s)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderValue(v)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, v.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, v.Len()))

	case reflect.Interface:
		if v.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
		} else {
			imgui.Text(fmt.Sprintf("%s: %T", name, v.Interface()))
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, v.Kind()))
	}
}

func label(name string) {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
}
