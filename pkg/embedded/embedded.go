// Package embedded 提供内置资源（res:// 路径）的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包只保存一个 fs.FS，并对路径做统一的规范化处理，
// 测试中可以用 fstest.MapFS 代替 embed.FS。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotInitialized Init 之前访问内置资源
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var dataFS fs.FS

// Init 设置内置资源文件系统
// 必须在 main() 开始时、任何 res:// 资源加载之前调用；传入 nil 等同于重置
func Init(fsys fs.FS) {
	dataFS = fsys
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return dataFS != nil
}

// normalize 标准化路径：统一正斜杠、去掉 "./" 与开头的 "/"
func normalize(p string) (string, error) {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	p = path.Clean(p)
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("invalid embedded path: %s", p)
	}
	return p, nil
}

// Open 打开内置文件
func Open(name string) (fs.File, error) {
	if dataFS == nil {
		return nil, ErrNotInitialized
	}
	p, err := normalize(name)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(p)
}

// ReadFile 读取内置文件全部内容
func ReadFile(name string) ([]byte, error) {
	if dataFS == nil {
		return nil, ErrNotInitialized
	}
	p, err := normalize(name)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// Exists 检查文件是否存在于内置资源中
func Exists(name string) bool {
	file, err := Open(name)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 在内置资源中匹配文件
func Glob(pattern string) ([]string, error) {
	if dataFS == nil {
		return nil, ErrNotInitialized
	}
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	return fs.Glob(dataFS, pattern)
}
