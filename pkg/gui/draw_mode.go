// Package gui 实现基于纹理的按钮控件
//
// 控件本身不读取输入也不直接访问屏幕：交互状态由 BaseButton 的指针钩子驱动
// （见 systems.TextureButtonSystem），绘制通过 Canvas 接口完成。
package gui

// DrawMode 控件当前的交互绘制状态
type DrawMode int

const (
	// DrawNormal 默认状态
	DrawNormal DrawMode = iota
	// DrawPressed 按下
	DrawPressed
	// DrawHover 鼠标悬停
	DrawHover
	// DrawDisabled 禁用
	DrawDisabled
)

func (m DrawMode) String() string {
	switch m {
	case DrawNormal:
		return "normal"
	case DrawPressed:
		return "pressed"
	case DrawHover:
		return "hover"
	case DrawDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// TextureSlot 按钮上的纹理槽位
type TextureSlot int

const (
	// SlotNone 没有可绘制的纹理
	SlotNone TextureSlot = iota
	SlotNormal
	SlotPressed
	SlotHover
	SlotDisabled
	SlotFocused
	SlotClickMask

	slotCount
)

func (s TextureSlot) String() string {
	switch s {
	case SlotNormal:
		return "normal"
	case SlotPressed:
		return "pressed"
	case SlotHover:
		return "hover"
	case SlotDisabled:
		return "disabled"
	case SlotFocused:
		return "focused"
	case SlotClickMask:
		return "click_mask"
	default:
		return "none"
	}
}

// SlotSet 已赋值槽位的位集合
type SlotSet uint8

// Slots 由若干槽位构造集合
func Slots(slots ...TextureSlot) SlotSet {
	var s SlotSet
	for _, slot := range slots {
		s = s.With(slot)
	}
	return s
}

// Has 集合是否包含 slot
func (s SlotSet) Has(slot TextureSlot) bool {
	return slot > SlotNone && slot < slotCount && s&(1<<uint(slot)) != 0
}

// With 返回加入 slot 后的集合
func (s SlotSet) With(slot TextureSlot) SlotSet {
	if slot <= SlotNone || slot >= slotCount {
		return s
	}
	return s | 1<<uint(slot)
}

// Without 返回去掉 slot 后的集合
func (s SlotSet) Without(slot TextureSlot) SlotSet {
	if slot <= SlotNone || slot >= slotCount {
		return s
	}
	return s &^ (1 << uint(slot))
}

// drawFallbacks 每种绘制状态下按优先级尝试的槽位
// 悬停状态下的 pressed 只在按钮处于按下状态时参与（见 ResolveDrawSlot）
var drawFallbacks = [...][]TextureSlot{
	DrawNormal:   {SlotNormal},
	DrawPressed:  {SlotPressed, SlotHover, SlotNormal},
	DrawHover:    {SlotHover, SlotPressed, SlotNormal},
	DrawDisabled: {SlotDisabled, SlotNormal},
}

// ResolveDrawSlot 根据绘制状态和已赋值的槽位选出要绘制的主纹理
//
// 参数：
//   - mode: 当前绘制状态
//   - avail: 已赋值的纹理槽位
//   - pressed: 按钮当前是否处于按下状态（只影响 DrawHover）
//
// 返回：
//   - TextureSlot: 要绘制的槽位，没有可用纹理时为 SlotNone
func ResolveDrawSlot(mode DrawMode, avail SlotSet, pressed bool) TextureSlot {
	if mode < 0 || int(mode) >= len(drawFallbacks) {
		return SlotNone
	}
	if mode == DrawHover && !pressed {
		avail = avail.Without(SlotPressed)
	}
	for _, slot := range drawFallbacks[mode] {
		if avail.Has(slot) {
			return slot
		}
	}
	return SlotNone
}
