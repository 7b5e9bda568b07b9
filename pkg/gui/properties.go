package gui

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/decker502/texui/pkg/resource"
	"github.com/decker502/texui/pkg/types"
)

var (
	// ErrUnknownProperty 属性名不存在
	ErrUnknownProperty = errors.New("unknown property")
	// ErrPropertyType 属性值类型不匹配
	ErrPropertyType = errors.New("property type mismatch")
)

// 缩放属性的取值范围
const (
	MinScale = 0.01
	MaxScale = 1024
)

// PropertyKind 属性值的类型
type PropertyKind int

const (
	KindTexture PropertyKind = iota
	KindBitMap
	KindVec2
	KindColor
)

func (k PropertyKind) String() string {
	switch k {
	case KindTexture:
		return "Texture"
	case KindBitMap:
		return "BitMap"
	case KindVec2:
		return "Vector2"
	case KindColor:
		return "Color"
	default:
		return "unknown"
	}
}

// PropertyInfo 编辑器可见的属性描述
type PropertyInfo struct {
	Name string
	Kind PropertyKind
	// Hint 资源类型提示或数值范围，例如 "Texture"、"0.01,1024,0.01"
	Hint string
	Min  float64
	Max  float64
}

const scaleHint = "0.01,1024,0.01"

var textureButtonProperties = []PropertyInfo{
	{Name: "textures/normal", Kind: KindTexture, Hint: "Texture"},
	{Name: "textures/pressed", Kind: KindTexture, Hint: "Texture"},
	{Name: "textures/hover", Kind: KindTexture, Hint: "Texture"},
	{Name: "textures/disabled", Kind: KindTexture, Hint: "Texture"},
	{Name: "textures/focused", Kind: KindTexture, Hint: "Texture"},
	{Name: "textures/click_mask", Kind: KindBitMap, Hint: "BitMap"},
	{Name: "params/scale", Kind: KindVec2, Hint: scaleHint, Min: MinScale, Max: MaxScale},
	{Name: "params/modulate", Kind: KindColor},
	{Name: "params/pressed_scale", Kind: KindVec2, Hint: scaleHint, Min: MinScale, Max: MaxScale},
}

// PropertyList 按编辑器显示顺序返回所有属性
func (b *TextureButton) PropertyList() []PropertyInfo {
	out := make([]PropertyInfo, len(textureButtonProperties))
	copy(out, textureButtonProperties)
	return out
}

// SetProperty 按属性名设置值
//
// 参数：
//   - name: 属性路径，例如 "textures/normal"、"params/scale"
//   - value: 纹理属性接受 resource.Texture 或 nil；遮罩接受 *resource.BitMap 或 nil；
//     缩放接受 types.Vec2（超出范围时截断）；颜色接受 color.Color
//
// 返回：
//   - error: 属性不存在返回 ErrUnknownProperty，类型不匹配返回 ErrPropertyType
func (b *TextureButton) SetProperty(name string, value any) error {
	switch name {
	case "textures/normal", "textures/pressed", "textures/hover", "textures/disabled", "textures/focused":
		var tex resource.Texture
		if value != nil {
			t, ok := value.(resource.Texture)
			if !ok {
				return fmt.Errorf("%s expects Texture, got %T: %w", name, value, ErrPropertyType)
			}
			tex = t
		}
		switch name {
		case "textures/normal":
			b.SetNormalTexture(tex)
		case "textures/pressed":
			b.SetPressedTexture(tex)
		case "textures/hover":
			b.SetHoverTexture(tex)
		case "textures/disabled":
			b.SetDisabledTexture(tex)
		default:
			b.SetFocusedTexture(tex)
		}
		return nil

	case "textures/click_mask":
		if value == nil {
			b.SetClickMask(nil)
			return nil
		}
		mask, ok := value.(*resource.BitMap)
		if !ok {
			return fmt.Errorf("%s expects BitMap, got %T: %w", name, value, ErrPropertyType)
		}
		b.SetClickMask(mask)
		return nil

	case "params/scale", "params/pressed_scale":
		v, ok := value.(types.Vec2)
		if !ok {
			return fmt.Errorf("%s expects Vector2, got %T: %w", name, value, ErrPropertyType)
		}
		v = v.Clamp(MinScale, MaxScale)
		if name == "params/scale" {
			b.SetTextureScale(v)
		} else {
			b.SetPressedScale(v)
		}
		return nil

	case "params/modulate":
		c, ok := value.(color.Color)
		if !ok || c == nil {
			return fmt.Errorf("%s expects Color, got %T: %w", name, value, ErrPropertyType)
		}
		b.SetModulate(c)
		return nil
	}
	return fmt.Errorf("%q: %w", name, ErrUnknownProperty)
}

// GetProperty 按属性名读取值
func (b *TextureButton) GetProperty(name string) (any, error) {
	switch name {
	case "textures/normal":
		return b.normal, nil
	case "textures/pressed":
		return b.pressed, nil
	case "textures/hover":
		return b.hover, nil
	case "textures/disabled":
		return b.disabled, nil
	case "textures/focused":
		return b.focused, nil
	case "textures/click_mask":
		return b.clickMask, nil
	case "params/scale":
		return b.scale, nil
	case "params/modulate":
		return b.modulate, nil
	case "params/pressed_scale":
		return b.pressedScale, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownProperty)
}
