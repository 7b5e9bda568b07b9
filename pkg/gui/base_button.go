package gui

// BaseButton 按钮的交互状态机
//
// 状态由外部的指针事件驱动：
//
//	MouseEntered / MouseExited  悬停进入/离开
//	PointerMoved(inside)        按住时指针是否仍在按钮内
//	PressBegin / PressEnd       按下/松开
//
// 松开时指针仍在按钮内才算一次点击；toggle 模式下点击会翻转 pressed 状态。
type BaseButton struct {
	Control

	disabled       bool
	toggleMode     bool
	pressed        bool // toggle 模式下的按下状态
	hovering       bool
	pressAttempt   bool // 正在按住
	pressingInside bool // 按住期间指针在按钮内

	// OnPressed 一次完整点击后调用
	OnPressed func()
	// OnToggled toggle 模式下状态翻转后调用
	OnToggled func(pressed bool)
}

// DrawMode 由当前交互标记推导出的绘制状态
func (b *BaseButton) DrawMode() DrawMode {
	if b.disabled {
		return DrawDisabled
	}
	if !b.pressAttempt && b.hovering && !b.pressed {
		return DrawHover
	}

	pressing := b.pressed
	if b.pressAttempt {
		pressing = b.pressingInside
		if b.pressed {
			pressing = !pressing
		}
	}
	if pressing {
		return DrawPressed
	}
	return DrawNormal
}

// IsPressed toggle 模式下返回开关状态，否则返回是否正在按住
func (b *BaseButton) IsPressed() bool {
	if b.toggleMode {
		return b.pressed
	}
	return b.pressAttempt
}

// SetPressed 设置 toggle 状态，非 toggle 模式下忽略
func (b *BaseButton) SetPressed(pressed bool) {
	if !b.toggleMode || b.pressed == pressed {
		return
	}
	b.pressed = pressed
	b.Update()
}

// IsToggleMode 是否为 toggle 模式
func (b *BaseButton) IsToggleMode() bool {
	return b.toggleMode
}

// SetToggleMode 切换 toggle 模式，关闭时清除按下状态
func (b *BaseButton) SetToggleMode(on bool) {
	b.toggleMode = on
	if !on {
		b.pressed = false
	}
	b.Update()
}

// IsDisabled 是否禁用
func (b *BaseButton) IsDisabled() bool {
	return b.disabled
}

// SetDisabled 禁用/启用按钮，禁用时中断正在进行的按压
func (b *BaseButton) SetDisabled(disabled bool) {
	if b.disabled == disabled {
		return
	}
	b.disabled = disabled
	if disabled {
		b.pressAttempt = false
		b.pressingInside = false
	}
	b.Update()
}

// IsHovered 指针是否在按钮上
func (b *BaseButton) IsHovered() bool {
	return b.hovering
}

// MouseEntered 指针进入按钮
func (b *BaseButton) MouseEntered() {
	if b.hovering {
		return
	}
	b.hovering = true
	b.Update()
}

// MouseExited 指针离开按钮
func (b *BaseButton) MouseExited() {
	if !b.hovering {
		return
	}
	b.hovering = false
	b.Update()
}

// PointerMoved 按住期间更新"指针是否仍在按钮内"
func (b *BaseButton) PointerMoved(inside bool) {
	if !b.pressAttempt || b.pressingInside == inside {
		return
	}
	b.pressingInside = inside
	b.Update()
}

// PressBegin 在按钮上按下
func (b *BaseButton) PressBegin() {
	if b.disabled || b.pressAttempt {
		return
	}
	b.pressAttempt = true
	b.pressingInside = true
	b.Update()
}

// PressEnd 松开
//
// 参数：
//   - inside: 松开时指针是否在按钮内
func (b *BaseButton) PressEnd(inside bool) {
	if !b.pressAttempt {
		return
	}
	b.pressAttempt = false
	clicked := inside && b.pressingInside
	b.pressingInside = false
	b.Update()

	if !clicked {
		return
	}
	if b.toggleMode {
		b.pressed = !b.pressed
		if b.OnToggled != nil {
			b.OnToggled(b.pressed)
		}
	}
	if b.OnPressed != nil {
		b.OnPressed()
	}
}
