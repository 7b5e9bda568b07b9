package entities

import (
	"fmt"
	"log"
	"strings"

	"github.com/decker502/texui/pkg/components"
	"github.com/decker502/texui/pkg/config"
	"github.com/decker502/texui/pkg/ecs"
	"github.com/decker502/texui/pkg/gui"
	"github.com/decker502/texui/pkg/resource"
)

// NewTextureButtonEntity 按布局创建纹理按钮实体
//
// 参数：
//   - em: 实体管理器
//   - rm: 资源管理器（加载纹理和点击遮罩）
//   - layout: 单个按钮的布局（已通过校验）
//   - onPressed: 点击回调，可为 nil
//
// 返回：
//   - 按钮实体ID
//   - 按钮控件
//   - 错误信息
func NewTextureButtonEntity(
	em *ecs.EntityManager,
	rm *resource.ResourceManager,
	layout *config.ButtonLayout,
	onPressed func(),
) (ecs.EntityID, *gui.TextureButton, error) {
	button := gui.NewTextureButton()

	slots := []struct {
		ref string
		set func(resource.Texture)
	}{
		{layout.Textures.Normal, button.SetNormalTexture},
		{layout.Textures.Pressed, button.SetPressedTexture},
		{layout.Textures.Hover, button.SetHoverTexture},
		{layout.Textures.Disabled, button.SetDisabledTexture},
		{layout.Textures.Focused, button.SetFocusedTexture},
	}
	for _, slot := range slots {
		if slot.ref == "" {
			continue
		}
		tex, err := loadTexture(rm, slot.ref)
		if err != nil {
			button.Release()
			return 0, nil, fmt.Errorf("button %q: %w", layout.Name, err)
		}
		slot.set(tex)
	}

	if ref := layout.Textures.ClickMask; ref != "" {
		mask, err := loadClickMask(rm, ref, layout.Textures.MaskThreshold)
		if err != nil {
			button.Release()
			return 0, nil, fmt.Errorf("button %q: %w", layout.Name, err)
		}
		button.SetClickMask(mask)
	}

	button.SetTextureScale(layout.ScaleVec())
	button.SetPressedScale(layout.PressedScaleVec())
	button.SetModulate(layout.ModulateColor())
	button.SetToggleMode(layout.Toggle)
	button.SetDisabled(layout.Disabled)
	button.SetPosition(layout.PositionVec())
	button.OnPressed = onPressed

	// 未指定尺寸时跟随最小尺寸
	if size := layout.SizeVec(); !size.IsZero() {
		button.SetSize(size)
	} else {
		button.SetSize(button.MinimumSize())
		button.OnMinimumSizeChanged = func() {
			button.SetSize(button.MinimumSize())
			button.ClearMinimumSizeDirty()
		}
	}
	button.ClearMinimumSizeDirty()

	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.TextureButtonComponent{
		Name:   layout.Name,
		Button: button,
		ZOrder: layout.ZOrder,
	})

	return entity, button, nil
}

// SpawnTextureButtonLayout 创建布局中的所有按钮
//
// 参数：
//   - handlers: 按钮名到点击回调的映射，没有回调的按钮照常创建
//
// 返回：
//   - 按钮名到实体ID的映射
//   - 第一个失败按钮的错误（之前创建的实体会被标记删除）
func SpawnTextureButtonLayout(
	em *ecs.EntityManager,
	rm *resource.ResourceManager,
	layout *config.TextureButtonLayout,
	handlers map[string]func(),
) (map[string]ecs.EntityID, error) {
	spawned := make(map[string]ecs.EntityID, len(layout.Buttons))
	for i := range layout.Buttons {
		b := &layout.Buttons[i]
		id, _, err := NewTextureButtonEntity(em, rm, b, handlers[b.Name])
		if err != nil {
			for _, created := range spawned {
				if comp, ok := ecs.GetComponent[*components.TextureButtonComponent](em, created); ok {
					comp.Button.Release()
				}
				em.DestroyEntity(created)
			}
			return nil, err
		}
		spawned[b.Name] = id
	}
	log.Printf("[TextureButtonFactory] Spawned %d buttons", len(spawned))
	return spawned, nil
}

// FindTextureButton 按名称查找按钮实体
func FindTextureButton(em *ecs.EntityManager, name string) (ecs.EntityID, *gui.TextureButton, bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.TextureButtonComponent](em) {
		comp, _ := ecs.GetComponent[*components.TextureButtonComponent](em, id)
		if comp.Name == name {
			return id, comp.Button, true
		}
	}
	return 0, nil, false
}

// isPathRef 资源引用是路径还是 resources.yaml 中的 ID
func isPathRef(ref string) bool {
	return strings.Contains(ref, "/") || strings.Contains(ref, "://")
}

func loadTexture(rm *resource.ResourceManager, ref string) (resource.Texture, error) {
	var (
		tex *resource.ImageTexture
		err error
	)
	if isPathRef(ref) {
		tex, err = rm.LoadTexture(ref)
	} else {
		tex, err = rm.LoadTextureByID(ref)
	}
	if err != nil {
		return nil, err
	}
	return tex, nil
}

func loadClickMask(rm *resource.ResourceManager, ref string, threshold float64) (*resource.BitMap, error) {
	if isPathRef(ref) {
		return rm.LoadClickMask(ref, threshold)
	}
	if threshold > 0 {
		// 布局里显式给出的阈值优先于 resources.yaml
		path, ok := rm.ResolvePath(ref)
		if !ok {
			return nil, fmt.Errorf("click mask %q: %w", ref, resource.ErrUnknownResourceID)
		}
		return rm.LoadClickMask(path, threshold)
	}
	return rm.LoadClickMaskByID(ref)
}
