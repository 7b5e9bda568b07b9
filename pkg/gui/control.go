package gui

import (
	"github.com/decker502/texui/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// Control 所有控件共享的基础状态：位置、尺寸、焦点、重绘与最小尺寸失效标记
//
// 重绘请求只设置标记（幂等），真正的绘制由渲染系统在下一帧完成，
// 因此资源变更回调里调用 Update() 不会引起重入绘制。
type Control struct {
	position types.Vec2
	size     types.Vec2
	focused  bool

	needsRedraw  bool
	minSizeDirty bool

	// OnMinimumSizeChanged 最小尺寸失效时的回调（可选，由布局方设置）
	OnMinimumSizeChanged func()
}

// Position 控件左上角（屏幕坐标）
func (c *Control) Position() types.Vec2 {
	return c.position
}

// SetPosition 移动控件
func (c *Control) SetPosition(p types.Vec2) {
	if c.position == p {
		return
	}
	c.position = p
	c.Update()
}

// Size 控件尺寸（item rect 的尺寸）
func (c *Control) Size() types.Vec2 {
	return c.size
}

// SetSize 调整控件尺寸
func (c *Control) SetSize(s types.Vec2) {
	if c.size == s {
		return
	}
	c.size = s
	c.Update()
}

// ItemRect 控件在屏幕上的矩形
func (c *Control) ItemRect() types.Rect2 {
	return types.Rect2{Pos: c.position, Size: c.size}
}

// HasFocus 是否持有输入焦点
func (c *Control) HasFocus() bool {
	return c.focused
}

// GrabFocus 获取焦点
func (c *Control) GrabFocus() {
	if !c.focused {
		c.focused = true
		c.Update()
	}
}

// ReleaseFocus 释放焦点
func (c *Control) ReleaseFocus() {
	if c.focused {
		c.focused = false
		c.Update()
	}
}

// Update 请求重绘
func (c *Control) Update() {
	c.needsRedraw = true
}

// NeedsRedraw 是否有未处理的重绘请求
func (c *Control) NeedsRedraw() bool {
	return c.needsRedraw
}

// ClearRedraw 绘制完成后清除重绘标记
func (c *Control) ClearRedraw() {
	c.needsRedraw = false
}

// MinimumSizeChanged 标记最小尺寸失效并通知布局方
func (c *Control) MinimumSizeChanged() {
	c.minSizeDirty = true
	if c.OnMinimumSizeChanged != nil {
		c.OnMinimumSizeChanged()
	}
}

// MinimumSizeDirty 最小尺寸是否失效
func (c *Control) MinimumSizeDirty() bool {
	return c.minSizeDirty
}

// ClearMinimumSizeDirty 布局方读取新的最小尺寸后调用
func (c *Control) ClearMinimumSizeDirty() {
	c.minSizeDirty = false
}

// HasPoint 默认矩形命中测试，p 为控件本地坐标
func (c *Control) HasPoint(p types.Vec2) bool {
	return types.Rect2{Size: c.size}.HasPoint(p)
}

// Transform 控件自身的变换（平移到 position）
func (c *Control) Transform() ebiten.GeoM {
	var geo ebiten.GeoM
	geo.Translate(c.position.X, c.position.Y)
	return geo
}
