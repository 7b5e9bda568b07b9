package config

import (
	"errors"
	"fmt"
	"image/color"
	"path"
	"strconv"
	"strings"

	"github.com/decker502/texui/pkg/resource"
	"github.com/decker502/texui/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedLayoutFormat 布局文件扩展名既不是 YAML 也不是 TOML
var ErrUnsupportedLayoutFormat = errors.New("unsupported layout format")

// TextureButtonLayout 纹理按钮布局配置
// 同一份结构既可以写成 YAML 也可以写成 TOML，按文件扩展名选择解析器
type TextureButtonLayout struct {
	Version string         `yaml:"version" toml:"version"`
	Buttons []ButtonLayout `yaml:"buttons" toml:"buttons"`
}

// ButtonLayout 单个按钮的布局
type ButtonLayout struct {
	Name     string         `yaml:"name" toml:"name"`
	Position []float64      `yaml:"position" toml:"position"` // [x, y]
	Size     []float64      `yaml:"size" toml:"size"`         // [w, h]，省略时使用按钮的最小尺寸
	ZOrder   int            `yaml:"z" toml:"z"`
	Toggle   bool           `yaml:"toggle" toml:"toggle"`
	Disabled bool           `yaml:"disabled" toml:"disabled"`
	Textures ButtonTextures `yaml:"textures" toml:"textures"`

	Scale        []float64 `yaml:"scale" toml:"scale"`                 // 默认 [1, 1]
	PressedScale []float64 `yaml:"pressed_scale" toml:"pressed_scale"` // 默认 [1, 1]
	Modulate     string    `yaml:"modulate" toml:"modulate"`           // "#RRGGBB" 或 "#RRGGBBAA"，默认白色

	// 校验后的值
	position     types.Vec2
	size         types.Vec2
	scale        types.Vec2
	pressedScale types.Vec2
	modulate     color.Color
}

// ButtonTextures 各槽位的资源引用
// 值可以是 resources.yaml 中的资源 ID，也可以是直接路径（包含 "/" 或 "://"）
type ButtonTextures struct {
	Normal    string `yaml:"normal" toml:"normal"`
	Pressed   string `yaml:"pressed" toml:"pressed"`
	Hover     string `yaml:"hover" toml:"hover"`
	Disabled  string `yaml:"disabled" toml:"disabled"`
	Focused   string `yaml:"focused" toml:"focused"`
	ClickMask string `yaml:"click_mask" toml:"click_mask"`
	// MaskThreshold 从图片生成遮罩时的 alpha 阈值，0 表示默认值
	MaskThreshold float64 `yaml:"mask_threshold" toml:"mask_threshold"`
}

// PositionVec 按钮位置
func (b *ButtonLayout) PositionVec() types.Vec2 { return b.position }

// SizeVec 按钮尺寸，未配置时为 0
func (b *ButtonLayout) SizeVec() types.Vec2 { return b.size }

// ScaleVec 纹理缩放
func (b *ButtonLayout) ScaleVec() types.Vec2 { return b.scale }

// PressedScaleVec 按下缩放
func (b *ButtonLayout) PressedScaleVec() types.Vec2 { return b.pressedScale }

// ModulateColor 颜色调制
func (b *ButtonLayout) ModulateColor() color.Color { return b.modulate }

// LoadTextureButtonLayout 读取并解析布局文件
//
// 参数：
//   - files: 文件访问接口（支持 res:// 和 user://），nil 时使用默认实现
//   - filePath: 布局文件路径，扩展名 .yaml/.yml/.toml
//
// 返回：
//   - *TextureButtonLayout: 校验通过的布局
//   - error: 读取、解析或校验失败
func LoadTextureButtonLayout(files resource.FileAccess, filePath string) (*TextureButtonLayout, error) {
	if files == nil {
		files = resource.NewFiles(nil)
	}
	data, err := files.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read button layout %s: %w", filePath, err)
	}
	return ParseTextureButtonLayout(data, path.Ext(filePath))
}

// ParseTextureButtonLayout 解析布局数据
// format 为扩展名（".yaml"、".yml"、".toml"）或不带点的格式名
func ParseTextureButtonLayout(data []byte, format string) (*TextureButtonLayout, error) {
	var layout TextureButtonLayout

	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &layout); err != nil {
			return nil, fmt.Errorf("failed to parse button layout YAML: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &layout); err != nil {
			return nil, fmt.Errorf("failed to parse button layout TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedLayoutFormat)
	}

	if err := validateTextureButtonLayout(&layout); err != nil {
		return nil, fmt.Errorf("invalid button layout: %w", err)
	}
	return &layout, nil
}

// validateTextureButtonLayout 校验并填充解析后的值
func validateTextureButtonLayout(layout *TextureButtonLayout) error {
	seen := make(map[string]bool, len(layout.Buttons))

	for i := range layout.Buttons {
		b := &layout.Buttons[i]
		if b.Name == "" {
			return fmt.Errorf("button #%d: name cannot be empty", i)
		}
		if seen[b.Name] {
			return fmt.Errorf("duplicate button name %q", b.Name)
		}
		seen[b.Name] = true

		var err error
		if b.position, err = vec2(b.Position, types.Vec2{}); err != nil {
			return fmt.Errorf("button %q position: %w", b.Name, err)
		}
		if b.size, err = vec2(b.Size, types.Vec2{}); err != nil {
			return fmt.Errorf("button %q size: %w", b.Name, err)
		}
		if b.size.X < 0 || b.size.Y < 0 {
			return fmt.Errorf("button %q size cannot be negative", b.Name)
		}
		if b.scale, err = vec2(b.Scale, types.One()); err != nil {
			return fmt.Errorf("button %q scale: %w", b.Name, err)
		}
		if b.pressedScale, err = vec2(b.PressedScale, types.One()); err != nil {
			return fmt.Errorf("button %q pressed_scale: %w", b.Name, err)
		}
		if b.modulate, err = ParseColor(b.Modulate); err != nil {
			return fmt.Errorf("button %q modulate: %w", b.Name, err)
		}
		if th := b.Textures.MaskThreshold; th < 0 || th >= 1 {
			return fmt.Errorf("button %q mask_threshold must be in [0,1), got %v", b.Name, th)
		}
	}
	return nil
}

// vec2 把 [x, y] 数组转换为向量，空数组返回默认值
func vec2(v []float64, def types.Vec2) (types.Vec2, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 2:
		return types.V(v[0], v[1]), nil
	default:
		return types.Vec2{}, fmt.Errorf("expected 2 components, got %d", len(v))
	}
}

// ParseColor 解析 "#RRGGBB" / "#RRGGBBAA" 颜色，空字符串返回白色
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.White, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
