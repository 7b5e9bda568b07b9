// Package resource 提供 UI 控件使用的共享资源：纹理、点击遮罩和文本资源，
// 以及负责加载、缓存和热重载它们的 ResourceManager。
//
// 资源是共享引用：多个控件可以同时持有同一个 *ImageTexture，
// 资源被修改时通过 Changed() 信号通知所有订阅者。
package resource

import (
	"github.com/decker502/texui/pkg/signal"
	"github.com/decker502/texui/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// Texture 可绘制的图片资源
type Texture interface {
	// Size 纹理像素尺寸
	Size() types.Vec2
	// Image 底层 Ebitengine 图片，可能为 nil（尚未加载）
	Image() *ebiten.Image
	// Changed 内容变化时触发的信号
	Changed() *signal.Signal
	// RID 资源实例标识
	RID() RID
}

// ImageTexture 基于 *ebiten.Image 的纹理
type ImageTexture struct {
	rid     RID
	path    string
	image   *ebiten.Image
	changed signal.Signal
}

// NewImageTexture 用已有图片创建纹理，img 可以为 nil
func NewImageTexture(img *ebiten.Image) *ImageTexture {
	return &ImageTexture{
		rid:   NewRID(),
		image: img,
	}
}

// Size 返回图片尺寸，未设置图片时为 0
func (t *ImageTexture) Size() types.Vec2 {
	if t.image == nil {
		return types.Vec2{}
	}
	b := t.image.Bounds()
	return types.V(float64(b.Dx()), float64(b.Dy()))
}

// Image 返回底层图片
func (t *ImageTexture) Image() *ebiten.Image {
	return t.image
}

// SetImage 替换底层图片并触发 Changed
func (t *ImageTexture) SetImage(img *ebiten.Image) {
	t.image = img
	t.changed.Emit()
}

// Changed 内容变化信号
func (t *ImageTexture) Changed() *signal.Signal {
	return &t.changed
}

// RID 资源实例标识
func (t *ImageTexture) RID() RID {
	return t.rid
}

// Path 纹理的来源路径（由 ResourceManager 加载时设置）
func (t *ImageTexture) Path() string {
	return t.path
}

// IsNilTexture 判断接口值是否为 nil 或包着 nil 指针
// 避免 (*ImageTexture)(nil) 作为 Texture 传入后被当成有效纹理
func IsNilTexture(tex Texture) bool {
	if tex == nil {
		return true
	}
	if it, ok := tex.(*ImageTexture); ok && it == nil {
		return true
	}
	return false
}
