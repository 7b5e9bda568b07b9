package gui

import (
	"image/color"
	"math"

	"github.com/decker502/texui/pkg/resource"
	"github.com/decker502/texui/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// TextureButton 根据交互状态绘制不同纹理的按钮
//
// 纹理是共享引用：多个按钮可以指向同一个纹理，纹理变更（热重载、SetImage）
// 通过 Changed 信号通知按钮重绘。点击遮罩存在时取代矩形命中测试。
type TextureButton struct {
	BaseButton

	normal    resource.Texture
	pressed   resource.Texture
	hover     resource.Texture
	disabled  resource.Texture
	focused   resource.Texture
	clickMask *resource.BitMap

	scale        types.Vec2
	pressedScale types.Vec2
	modulate     color.Color
}

// NewTextureButton 创建一个没有纹理的按钮
func NewTextureButton() *TextureButton {
	b := &TextureButton{
		scale:        types.One(),
		pressedScale: types.One(),
		modulate:     color.White,
	}
	b.Update()
	return b
}

// NormalTexture 默认状态纹理
func (b *TextureButton) NormalTexture() resource.Texture { return b.normal }

// PressedTexture 按下状态纹理
func (b *TextureButton) PressedTexture() resource.Texture { return b.pressed }

// HoverTexture 悬停状态纹理
func (b *TextureButton) HoverTexture() resource.Texture { return b.hover }

// DisabledTexture 禁用状态纹理
func (b *TextureButton) DisabledTexture() resource.Texture { return b.disabled }

// FocusedTexture 焦点叠加纹理
func (b *TextureButton) FocusedTexture() resource.Texture { return b.focused }

// ClickMask 点击遮罩
func (b *TextureButton) ClickMask() *resource.BitMap { return b.clickMask }

// TextureScale 纹理缩放（影响最小尺寸和命中测试）
func (b *TextureButton) TextureScale() types.Vec2 { return b.scale }

// PressedScale 按下时的挤压缩放
func (b *TextureButton) PressedScale() types.Vec2 { return b.pressedScale }

// Modulate 绘制时乘上的颜色
func (b *TextureButton) Modulate() color.Color { return b.modulate }

// SetNormalTexture 设置默认纹理，同时使最小尺寸失效
func (b *TextureButton) SetNormalTexture(tex resource.Texture) {
	b.setTexture(&b.normal, tex)
	b.MinimumSizeChanged()
}

// SetPressedTexture 设置按下纹理
func (b *TextureButton) SetPressedTexture(tex resource.Texture) {
	b.setTexture(&b.pressed, tex)
}

// SetHoverTexture 设置悬停纹理
func (b *TextureButton) SetHoverTexture(tex resource.Texture) {
	b.setTexture(&b.hover, tex)
}

// SetDisabledTexture 设置禁用纹理
func (b *TextureButton) SetDisabledTexture(tex resource.Texture) {
	b.setTexture(&b.disabled, tex)
}

// SetFocusedTexture 设置焦点叠加纹理
func (b *TextureButton) SetFocusedTexture(tex resource.Texture) {
	b.setTexture(&b.focused, tex)
}

// setTexture 替换槽位中的纹理并维护 Changed 订阅
//
// 同一个纹理可能同时占用多个槽位，只有在没有其他槽位引用旧纹理时才断开订阅。
func (b *TextureButton) setTexture(slot *resource.Texture, tex resource.Texture) {
	if resource.IsNilTexture(tex) {
		tex = nil
	}
	old := *slot
	*slot = tex

	if old != nil && old != tex && !b.referencesTexture(old) {
		old.Changed().Disconnect(b)
	}
	if tex != nil && !tex.Changed().IsConnected(b) {
		tex.Changed().Connect(b, b.Update)
	}
	b.Update()
}

// referencesTexture 是否还有槽位引用 tex
func (b *TextureButton) referencesTexture(tex resource.Texture) bool {
	for _, t := range []resource.Texture{b.normal, b.pressed, b.hover, b.disabled, b.focused} {
		if t != nil && t == tex {
			return true
		}
	}
	return false
}

// SetClickMask 设置点击遮罩
// 遮罩尺寸参与最小尺寸计算，遮罩变更时同样使最小尺寸失效
func (b *TextureButton) SetClickMask(mask *resource.BitMap) {
	if b.clickMask != nil && b.clickMask != mask {
		b.clickMask.Changed().Disconnect(b)
	}
	b.clickMask = mask
	if mask != nil && !mask.Changed().IsConnected(b) {
		mask.Changed().Connect(b, b.onMaskChanged)
	}
	b.MinimumSizeChanged()
	b.Update()
}

func (b *TextureButton) onMaskChanged() {
	b.MinimumSizeChanged()
	b.Update()
}

// SetTextureScale 设置纹理缩放
func (b *TextureButton) SetTextureScale(s types.Vec2) {
	b.scale = s
	b.MinimumSizeChanged()
	b.Update()
}

// SetPressedScale 设置按下时的缩放
func (b *TextureButton) SetPressedScale(s types.Vec2) {
	b.pressedScale = s
	b.Update()
}

// SetModulate 设置颜色调制，nil 视为白色
func (b *TextureButton) SetModulate(c color.Color) {
	if c == nil {
		c = color.White
	}
	b.modulate = c
	b.Update()
}

// Release 断开所有纹理订阅，按钮销毁前调用
func (b *TextureButton) Release() {
	for _, t := range []resource.Texture{b.normal, b.pressed, b.hover, b.disabled, b.focused} {
		if t != nil {
			t.Changed().Disconnect(b)
		}
	}
	if b.clickMask != nil {
		b.clickMask.Changed().Disconnect(b)
	}
}

// MinimumSize 按 normal > pressed > hover > click_mask 取第一个可用资源的尺寸，乘以 |scale|
func (b *TextureButton) MinimumSize() types.Vec2 {
	var size types.Vec2
	switch {
	case b.normal != nil:
		size = b.normal.Size()
	case b.pressed != nil:
		size = b.pressed.Size()
	case b.hover != nil:
		size = b.hover.Size()
	case b.clickMask != nil:
		size = b.clickMask.Size()
	}
	return size.Mul(b.scale.Abs())
}

// HasPoint 命中测试
//
// 参数：
//   - p: 控件本地坐标
//
// 返回：
//   - bool: scale 任一分量为 0 时恒为 false；有遮罩时按 p/|scale| 查遮罩位，否则按控件矩形判断 p
func (b *TextureButton) HasPoint(p types.Vec2) bool {
	if b.scale.HasZeroAxis() {
		return false
	}
	if b.clickMask == nil {
		return b.Control.HasPoint(p)
	}

	// 只有遮罩查找使用纹理空间坐标
	mp := p.Div(b.scale.Abs())
	// 向下取整：[-1, 0) 内的负坐标不会落到第 0 位
	x := int(math.Floor(mp.X))
	y := int(math.Floor(mp.Y))
	if x < 0 || y < 0 || x >= b.clickMask.Width() || y >= b.clickMask.Height() {
		return false
	}
	return b.clickMask.GetBit(x, y)
}

// availableSlots 当前已赋值的纹理槽位
func (b *TextureButton) availableSlots() SlotSet {
	var s SlotSet
	if b.normal != nil {
		s = s.With(SlotNormal)
	}
	if b.pressed != nil {
		s = s.With(SlotPressed)
	}
	if b.hover != nil {
		s = s.With(SlotHover)
	}
	if b.disabled != nil {
		s = s.With(SlotDisabled)
	}
	if b.focused != nil {
		s = s.With(SlotFocused)
	}
	if b.clickMask != nil {
		s = s.With(SlotClickMask)
	}
	return s
}

// textureFor 槽位对应的纹理
func (b *TextureButton) textureFor(slot TextureSlot) resource.Texture {
	switch slot {
	case SlotNormal:
		return b.normal
	case SlotPressed:
		return b.pressed
	case SlotHover:
		return b.hover
	case SlotDisabled:
		return b.disabled
	case SlotFocused:
		return b.focused
	default:
		return nil
	}
}

// ActiveTexture 当前交互状态下要绘制的主纹理，没有时返回 (nil, SlotNone)
func (b *TextureButton) ActiveTexture() (resource.Texture, TextureSlot) {
	slot := ResolveDrawSlot(b.DrawMode(), b.availableSlots(), b.IsPressed())
	return b.textureFor(slot), slot
}

// RenderTransform 绘制变换
// 按下状态下内容按 pressed_scale 缩放，并平移半个尺寸差使缩放以中心为准
func (b *TextureButton) RenderTransform() ebiten.GeoM {
	var geo ebiten.GeoM
	if b.DrawMode() == DrawPressed {
		ps := b.pressedScale
		delta := ps.Sub(types.One()).Scale(0.5).Mul(b.Size())
		geo.Scale(ps.X, ps.Y)
		geo.Translate(-delta.X, -delta.Y)
	}
	geo.Concat(b.Transform())
	return geo
}

// Draw 绘制按钮：主纹理，然后在有焦点时叠加焦点纹理
func (b *TextureButton) Draw(c Canvas) {
	c.SetTransform(b.RenderTransform())

	if tex, _ := b.ActiveTexture(); tex != nil {
		c.DrawTextureRect(tex, types.Rect2{Size: tex.Size()}, b.modulate)
	}
	if b.HasFocus() && b.focused != nil {
		c.DrawTextureRect(b.focused, types.Rect2{Size: b.focused.Size()}, b.modulate)
	}
	b.ClearRedraw()
}
