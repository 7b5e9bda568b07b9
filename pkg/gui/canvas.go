package gui

import (
	"image/color"

	"github.com/decker502/texui/pkg/resource"
	"github.com/decker502/texui/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// Canvas 控件的绘制目标
type Canvas interface {
	// SetTransform 设置后续绘制使用的变换
	SetTransform(geo ebiten.GeoM)
	// DrawTextureRect 将纹理拉伸绘制到 rect（变换前坐标），乘以 modulate
	DrawTextureRect(tex resource.Texture, rect types.Rect2, modulate color.Color)
}

// ScreenCanvas 直接绘制到 ebiten.Image 上的 Canvas
type ScreenCanvas struct {
	target    *ebiten.Image
	transform ebiten.GeoM
}

// NewScreenCanvas 创建绘制到 target 的画布
func NewScreenCanvas(target *ebiten.Image) *ScreenCanvas {
	return &ScreenCanvas{target: target}
}

// SetTransform 设置变换
func (c *ScreenCanvas) SetTransform(geo ebiten.GeoM) {
	c.transform = geo
}

// DrawTextureRect 绘制纹理
func (c *ScreenCanvas) DrawTextureRect(tex resource.Texture, rect types.Rect2, modulate color.Color) {
	if c.target == nil || resource.IsNilTexture(tex) {
		return
	}
	img := tex.Image()
	if img == nil {
		return
	}
	size := tex.Size()
	if size.HasZeroAxis() || rect.Size.HasZeroAxis() {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(rect.Size.X/size.X, rect.Size.Y/size.Y)
	op.GeoM.Translate(rect.Pos.X, rect.Pos.Y)
	op.GeoM.Concat(c.transform)
	if modulate != nil {
		op.ColorScale.ScaleWithColor(modulate)
	}
	op.Filter = ebiten.FilterLinear
	c.target.DrawImage(img, op)
}
