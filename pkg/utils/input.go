// Package utils 提供输入相关的通用工具
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 一帧内的指针状态（鼠标或触摸统一表示）
type PointerState struct {
	// X, Y 指针位置（屏幕坐标）
	X, Y int
	// Pressed 当前是否按住
	Pressed bool
	// JustPressed 本帧刚按下
	JustPressed bool
	// JustReleased 本帧刚松开
	JustReleased bool
	// IsTouch 是否来自触摸输入
	IsTouch bool
}

// PointerSource 每帧提供一次指针状态
type PointerSource interface {
	Pointer() PointerState
}

// PointerTracker 基于 Ebitengine 输入的 PointerSource
// 跟踪第一个触摸点；没有触摸时使用鼠标左键
//
// 触摸松开的那一帧 ebiten 已经拿不到触摸位置，因此记录上一帧的位置作为松开位置。
type PointerTracker struct {
	touchID    ebiten.TouchID
	tracking   bool
	lastX      int
	lastY      int
	touchIDBuf []ebiten.TouchID
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{touchID: -1}
}

// Pointer 读取本帧指针状态，每帧调用一次
func (p *PointerTracker) Pointer() PointerState {
	// 优先处理正在跟踪的触摸
	if p.tracking {
		if inpututil.IsTouchJustReleased(p.touchID) {
			p.tracking = false
			return PointerState{X: p.lastX, Y: p.lastY, JustReleased: true, IsTouch: true}
		}
		p.lastX, p.lastY = ebiten.TouchPosition(p.touchID)
		return PointerState{X: p.lastX, Y: p.lastY, Pressed: true, IsTouch: true}
	}

	p.touchIDBuf = inpututil.AppendJustPressedTouchIDs(p.touchIDBuf[:0])
	if len(p.touchIDBuf) > 0 {
		p.touchID = p.touchIDBuf[0]
		p.tracking = true
		p.lastX, p.lastY = ebiten.TouchPosition(p.touchID)
		return PointerState{X: p.lastX, Y: p.lastY, Pressed: true, JustPressed: true, IsTouch: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerState{
		X:            x,
		Y:            y,
		Pressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}
