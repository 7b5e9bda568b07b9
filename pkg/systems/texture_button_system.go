package systems

import (
	"github.com/decker502/texui/pkg/components"
	"github.com/decker502/texui/pkg/ecs"
	"github.com/decker502/texui/pkg/types"
	"github.com/decker502/texui/pkg/utils"
)

// TextureButtonSystem 纹理按钮交互系统
// 把指针状态翻译成按钮的交互钩子
//
// 职责：
//   - 找出指针下层级最高的按钮（使用按钮自身的 HasPoint，支持点击遮罩）
//   - 维护悬停状态（MouseEntered / MouseExited）
//   - 按下时记住目标按钮，之后的移动和松开都发给它
//   - 点击按钮时转移焦点，点击空白处释放焦点
type TextureButtonSystem struct {
	entityManager *ecs.EntityManager
	pointer       utils.PointerSource

	// active 正在被按住的按钮，0 表示没有
	active ecs.EntityID
}

// NewTextureButtonSystem 创建纹理按钮交互系统
func NewTextureButtonSystem(em *ecs.EntityManager, pointer utils.PointerSource) *TextureButtonSystem {
	return &TextureButtonSystem{
		entityManager: em,
		pointer:       pointer,
	}
}

// Update 处理本帧指针输入
func (s *TextureButtonSystem) Update(deltaTime float64) {
	st := s.pointer.Pointer()
	p := types.V(float64(st.X), float64(st.Y))

	entities := ecs.GetEntitiesWith1[*components.TextureButtonComponent](s.entityManager)
	top := s.hitTest(entities, p)

	for _, id := range entities {
		comp, _ := ecs.GetComponent[*components.TextureButtonComponent](s.entityManager, id)
		if comp.Button == nil {
			continue
		}
		if id == top && !comp.Button.IsDisabled() {
			comp.Button.MouseEntered()
		} else {
			comp.Button.MouseExited()
		}
	}

	if st.JustPressed {
		s.updateFocus(entities, top)
		if top != 0 {
			comp, _ := ecs.GetComponent[*components.TextureButtonComponent](s.entityManager, top)
			if !comp.Button.IsDisabled() {
				comp.Button.PressBegin()
				s.active = top
			}
		}
	}

	if s.active == 0 {
		return
	}
	comp, ok := ecs.GetComponent[*components.TextureButtonComponent](s.entityManager, s.active)
	if !ok {
		// 按住期间按钮被移除
		s.active = 0
		return
	}
	inside := top == s.active
	if st.JustReleased || !st.Pressed {
		s.active = 0
		comp.Button.PressEnd(inside)
		return
	}
	comp.Button.PointerMoved(inside)
}

// hitTest 返回 p 处层级最高的可见按钮，同层级时实体 ID 大的优先
func (s *TextureButtonSystem) hitTest(entities []ecs.EntityID, p types.Vec2) ecs.EntityID {
	var (
		top  ecs.EntityID
		topZ int
	)
	for _, id := range entities {
		comp, _ := ecs.GetComponent[*components.TextureButtonComponent](s.entityManager, id)
		if comp.Hidden || comp.Button == nil {
			continue
		}
		local := p.Sub(comp.Button.Position())
		if !comp.Button.HasPoint(local) {
			continue
		}
		if top == 0 || comp.ZOrder >= topZ {
			top = id
			topZ = comp.ZOrder
		}
	}
	return top
}

// updateFocus 焦点给被点击的按钮，其余按钮释放焦点
func (s *TextureButtonSystem) updateFocus(entities []ecs.EntityID, target ecs.EntityID) {
	for _, id := range entities {
		comp, _ := ecs.GetComponent[*components.TextureButtonComponent](s.entityManager, id)
		if comp.Button == nil {
			continue
		}
		if id == target && !comp.Button.IsDisabled() {
			comp.Button.GrabFocus()
		} else {
			comp.Button.ReleaseFocus()
		}
	}
}

// ReleaseButton 实体移除时断开按钮的纹理订阅
// 作为 EntityManager.RemoveMarkedEntities 的回调使用
func (s *TextureButtonSystem) ReleaseButton(id ecs.EntityID) {
	if id == s.active {
		s.active = 0
	}
	if comp, ok := ecs.GetComponent[*components.TextureButtonComponent](s.entityManager, id); ok && comp.Button != nil {
		comp.Button.Release()
	}
}
