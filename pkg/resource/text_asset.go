package resource

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrFileCantRead 文件无法读取或为空（两者不区分）
	ErrFileCantRead = errors.New("cannot read file")
	// ErrFileUnrecognized 文件内容不是合法的 UTF-8
	ErrFileUnrecognized = errors.New("unrecognized file format")
)

// TextAsset 纯文本资源
// 一次性把整个文件读入内存并按 UTF-8 解码，结果保存在 Value() 中
type TextAsset struct {
	files FileAccess
	value string
}

// NewTextAsset 创建空的文本资源
//
// 参数：
//   - files: 文件读取接口，nil 时使用不带用户存储的 Files（仅 res:// 和本地路径）
func NewTextAsset(files FileAccess) *TextAsset {
	if files == nil {
		files = NewFiles(nil)
	}
	return &TextAsset{files: files}
}

// Load 同步读取并解码整个文件
//
// 返回：
//   - error: 读取失败或文件为空时匹配 ErrFileCantRead，此时原有内容保持不变；
//     内容不是合法 UTF-8 时匹配 ErrFileUnrecognized
func (ta *TextAsset) Load(path string) error {
	data := GetFileAsBytes(ta.files, path)
	if len(data) == 0 {
		return fmt.Errorf("failed to load text asset %s: %w", path, ErrFileCantRead)
	}

	text, err := decodeUTF8(data)
	if err != nil {
		return fmt.Errorf("failed to decode text asset %s: %w", path, ErrFileUnrecognized)
	}

	ta.value = text
	return nil
}

// Value 当前文本，从未成功加载时为空串
func (ta *TextAsset) Value() string {
	return ta.value
}

// decodeUTF8 校验 UTF-8 并去掉开头的 BOM
func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("invalid utf-8 sequence")
	}
	decoded, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
