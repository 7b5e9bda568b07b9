package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/decker502/texui/pkg/embedded"
	"github.com/quasilyte/gdata/v2"
)

// 路径前缀
const (
	// SchemeRes 内置只读资源（pkg/embedded）
	SchemeRes = "res://"
	// SchemeUser 用户数据（gdata 跨平台存储）
	SchemeUser = "user://"
)

var (
	// ErrUserDataUnavailable 没有可用的 gdata 存储（降级模式）
	ErrUserDataUnavailable = errors.New("user data storage unavailable")
	// ErrInvalidUserPath user:// 路径不是 "user://<object>/<property>" 形式
	ErrInvalidUserPath = errors.New("invalid user path")
)

// FileAccess 整文件读取接口
type FileAccess interface {
	ReadFile(path string) ([]byte, error)
}

// GetFileAsBytes 读取整个文件，任何失败都返回 nil
// 调用方无法区分"文件不存在"和"文件为空"
func GetFileAsBytes(fa FileAccess, path string) []byte {
	data, err := fa.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}

// Files 按路径前缀分发的默认 FileAccess 实现
//
//   - res://a/b.txt   -> embedded.ReadFile("a/b.txt")
//   - user://obj/prop -> gdata object "obj" 的属性 "prop"
//   - 其它路径        -> 本地文件系统
type Files struct {
	userData *gdata.Manager // 可为 nil（降级模式，user:// 不可用）
}

// NewFiles 创建 Files
//
// 参数：
//   - userData: gdata 存储管理器，可为 nil
func NewFiles(userData *gdata.Manager) *Files {
	return &Files{userData: userData}
}

// ReadFile 读取整个文件
func (f *Files) ReadFile(path string) ([]byte, error) {
	switch {
	case strings.HasPrefix(path, SchemeRes):
		return embedded.ReadFile(strings.TrimPrefix(path, SchemeRes))
	case strings.HasPrefix(path, SchemeUser):
		object, prop, err := splitUserPath(path)
		if err != nil {
			return nil, err
		}
		if f.userData == nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, ErrUserDataUnavailable)
		}
		if !f.userData.ObjectPropExists(object, prop) {
			return nil, fmt.Errorf("failed to read %s: %w", path, fs.ErrNotExist)
		}
		return f.userData.LoadObjectProp(object, prop)
	default:
		return os.ReadFile(path)
	}
}

// WriteUserFile 把数据写入 user:// 路径
func (f *Files) WriteUserFile(path string, data []byte) error {
	if !strings.HasPrefix(path, SchemeUser) {
		return fmt.Errorf("%w: %s (must start with %s)", ErrInvalidUserPath, path, SchemeUser)
	}
	object, prop, err := splitUserPath(path)
	if err != nil {
		return err
	}
	if f.userData == nil {
		return fmt.Errorf("failed to write %s: %w", path, ErrUserDataUnavailable)
	}
	if err := f.userData.SaveObjectProp(object, prop, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// splitUserPath 把 "user://notes/welcome" 拆成 ("notes", "welcome")
func splitUserPath(path string) (object, prop string, err error) {
	parts := strings.Split(strings.TrimPrefix(path, SchemeUser), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %s (want %s<object>/<property>)", ErrInvalidUserPath, path, SchemeUser)
	}
	return parts[0], parts[1], nil
}
