package systems

import (
	"sort"

	"github.com/decker502/texui/pkg/components"
	"github.com/decker502/texui/pkg/ecs"
	"github.com/decker502/texui/pkg/gui"
	"github.com/hajimehoshi/ebiten/v2"
)

// TextureButtonRenderSystem 纹理按钮渲染系统
// 按 ZOrder 从低到高绘制所有可见按钮
type TextureButtonRenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewTextureButtonRenderSystem 创建纹理按钮渲染系统
func NewTextureButtonRenderSystem(em *ecs.EntityManager) *TextureButtonRenderSystem {
	return &TextureButtonRenderSystem{
		entityManager: em,
	}
}

// Draw 绘制到屏幕
func (s *TextureButtonRenderSystem) Draw(screen *ebiten.Image) {
	s.DrawTo(gui.NewScreenCanvas(screen))
}

// DrawTo 绘制到任意 Canvas
func (s *TextureButtonRenderSystem) DrawTo(c gui.Canvas) {
	for _, id := range s.drawOrder() {
		comp, _ := ecs.GetComponent[*components.TextureButtonComponent](s.entityManager, id)
		comp.Button.Draw(c)
	}
}

// PendingRedraws 有重绘请求的按钮数量（调试用）
func (s *TextureButtonRenderSystem) PendingRedraws() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TextureButtonComponent](s.entityManager) {
		comp, _ := ecs.GetComponent[*components.TextureButtonComponent](s.entityManager, id)
		if comp.Button != nil && comp.Button.NeedsRedraw() {
			n++
		}
	}
	return n
}

// drawOrder 可见按钮按 ZOrder 升序排列，同层级按实体 ID
func (s *TextureButtonRenderSystem) drawOrder() []ecs.EntityID {
	entities := ecs.GetEntitiesWith1[*components.TextureButtonComponent](s.entityManager)
	visible := entities[:0]
	zorder := make(map[ecs.EntityID]int, len(entities))
	for _, id := range entities {
		comp, _ := ecs.GetComponent[*components.TextureButtonComponent](s.entityManager, id)
		if comp.Hidden || comp.Button == nil {
			continue
		}
		visible = append(visible, id)
		zorder[id] = comp.ZOrder
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return zorder[visible[i]] < zorder[visible[j]]
	})
	return visible
}
