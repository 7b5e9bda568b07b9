package components

import "github.com/decker502/texui/pkg/gui"

// TextureButtonComponent 纹理按钮组件
// 持有按钮控件本身，位置、尺寸和交互状态都在控件内部维护
type TextureButtonComponent struct {
	// Name 按钮名称（来自布局配置，用于查找和日志）
	Name string
	// Button 按钮控件
	Button *gui.TextureButton
	// ZOrder 绘制和命中测试的层级，数值大的在上层
	ZOrder int
	// Hidden 隐藏的按钮既不绘制也不响应输入
	Hidden bool
}
