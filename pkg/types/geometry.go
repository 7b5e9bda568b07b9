// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "math"

// Vec2 二维向量
// 同时用于坐标、尺寸和缩放系数
type Vec2 struct {
	X float64
	Y float64
}

// V 构造 Vec2 的简写
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// One 返回 (1, 1)，缩放的默认值
func One() Vec2 {
	return Vec2{X: 1, Y: 1}
}

// Add 分量相加
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub 分量相减
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul 分量相乘（尺寸 × 缩放）
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

// Div 分量相除，调用方负责保证除数分量非零
func (v Vec2) Div(o Vec2) Vec2 {
	return Vec2{X: v.X / o.X, Y: v.Y / o.Y}
}

// Scale 整体乘以标量
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Abs 分量取绝对值
func (v Vec2) Abs() Vec2 {
	return Vec2{X: math.Abs(v.X), Y: math.Abs(v.Y)}
}

// IsZero 两个分量都为 0
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// HasZeroAxis 任一分量为 0
func (v Vec2) HasZeroAxis() bool {
	return v.X == 0 || v.Y == 0
}

// Clamp 将两个分量限制在 [lo, hi] 区间
func (v Vec2) Clamp(lo, hi float64) Vec2 {
	return Vec2{X: clamp(v.X, lo, hi), Y: clamp(v.Y, lo, hi)}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Rect2 轴对齐矩形（左上角 + 尺寸）
type Rect2 struct {
	Pos  Vec2
	Size Vec2
}

// HasPoint 判断点是否落在矩形内（左上闭、右下开）
func (r Rect2) HasPoint(p Vec2) bool {
	return p.X >= r.Pos.X &&
		p.Y >= r.Pos.Y &&
		p.X < r.Pos.X+r.Size.X &&
		p.Y < r.Pos.Y+r.Size.Y
}

// End 返回右下角坐标
func (r Rect2) End() Vec2 {
	return r.Pos.Add(r.Size)
}
