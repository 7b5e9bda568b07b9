package resource

import (
	"image"

	"github.com/decker502/texui/pkg/signal"
	"github.com/decker502/texui/pkg/types"
)

// DefaultAlphaThreshold 从图片透明度生成遮罩时的默认阈值
const DefaultAlphaThreshold = 0.1

// BitMap 二值位图，用作按钮的点击遮罩
// 位按行优先存放在 uint64 字中
type BitMap struct {
	rid     RID
	width   int
	height  int
	bits    []uint64
	changed signal.Signal
}

// NewBitMap 创建 w×h 的全 0 位图，负尺寸按 0 处理
func NewBitMap(w, h int) *BitMap {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &BitMap{
		rid:    NewRID(),
		width:  w,
		height: h,
		bits:   make([]uint64, (w*h+63)/64),
	}
}

// NewBitMapFromImageAlpha 以图片的 alpha 通道生成遮罩
//
// 参数：
//   - img: 源图片（任意 image.Image）
//   - threshold: alpha 阈值（0~1），alpha 严格大于阈值的像素置 1；<= 0 时使用 DefaultAlphaThreshold
//
// 返回：
//   - *BitMap: 与图片同尺寸的遮罩
func NewBitMapFromImageAlpha(img image.Image, threshold float64) *BitMap {
	if threshold <= 0 {
		threshold = DefaultAlphaThreshold
	}
	b := img.Bounds()
	bm := NewBitMap(b.Dx(), b.Dy())
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			_, _, _, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if float64(a)/0xffff > threshold {
				bm.set(x, y, true)
			}
		}
	}
	return bm
}

// Width 宽度（像素）
func (bm *BitMap) Width() int {
	return bm.width
}

// Height 高度（像素）
func (bm *BitMap) Height() int {
	return bm.height
}

// Size 尺寸
func (bm *BitMap) Size() types.Vec2 {
	return types.V(float64(bm.width), float64(bm.height))
}

// GetBit 读取 (x, y) 位，越界返回 false
func (bm *BitMap) GetBit(x, y int) bool {
	if x < 0 || y < 0 || x >= bm.width || y >= bm.height {
		return false
	}
	i := y*bm.width + x
	return bm.bits[i/64]&(1<<(uint(i)%64)) != 0
}

// SetBit 写入 (x, y) 位并触发 Changed，越界或值未变化时忽略
func (bm *BitMap) SetBit(x, y int, v bool) {
	if x < 0 || y < 0 || x >= bm.width || y >= bm.height {
		return
	}
	if bm.GetBit(x, y) == v {
		return
	}
	bm.set(x, y, v)
	bm.changed.Emit()
}

// Replace 用 src 的尺寸和内容覆盖当前位图并触发 Changed
// RID 与已有订阅保持不变，持有者无需重新获取遮罩
func (bm *BitMap) Replace(src *BitMap) {
	if src == nil {
		return
	}
	bm.width = src.width
	bm.height = src.height
	bm.bits = append(bm.bits[:0:0], src.bits...)
	bm.changed.Emit()
}

func (bm *BitMap) set(x, y int, v bool) {
	i := y*bm.width + x
	mask := uint64(1) << (uint(i) % 64)
	if v {
		bm.bits[i/64] |= mask
	} else {
		bm.bits[i/64] &^= mask
	}
}

// TrueCount 置 1 的位数
func (bm *BitMap) TrueCount() int {
	n := 0
	for _, w := range bm.bits {
		for ; w != 0; w &= w - 1 {
			n++
		}
	}
	return n
}

// Changed 内容变化信号
func (bm *BitMap) Changed() *signal.Signal {
	return &bm.changed
}

// RID 资源实例标识
func (bm *BitMap) RID() RID {
	return bm.rid
}
