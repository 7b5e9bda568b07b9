package resource

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/decker502/texui/pkg/embedded"
)

// writeTestFile 在临时目录中写入测试文件并返回路径
func writeTestFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

func TestTextAsset_NewIsEmpty(t *testing.T) {
	ta := NewTextAsset(nil)
	if ta.Value() != "" {
		t.Errorf("Value() = %q, want empty string", ta.Value())
	}
}

func TestTextAsset_LoadValid(t *testing.T) {
	content := "点击收集掉落的阳光！\nline two\n"
	path := writeTestFile(t, "valid.txt", []byte(content))

	ta := NewTextAsset(nil)
	if err := ta.Load(path); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if ta.Value() != content {
		t.Errorf("Value() = %q, want %q", ta.Value(), content)
	}
}

func TestTextAsset_LoadMissingKeepsValue(t *testing.T) {
	path := writeTestFile(t, "first.txt", []byte("first"))

	ta := NewTextAsset(nil)
	if err := ta.Load(path); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	err := ta.Load(filepath.Join(t.TempDir(), "does_not_exist.txt"))
	if !errors.Is(err, ErrFileCantRead) {
		t.Fatalf("Load(missing) error = %v, want ErrFileCantRead", err)
	}
	if ta.Value() != "first" {
		t.Errorf("Value() after failed load = %q, want %q", ta.Value(), "first")
	}
}

func TestTextAsset_LoadEmptyFile(t *testing.T) {
	path := writeTestFile(t, "empty.txt", nil)

	ta := NewTextAsset(nil)
	err := ta.Load(path)
	if !errors.Is(err, ErrFileCantRead) {
		t.Errorf("Load(empty) error = %v, want ErrFileCantRead (same as missing file)", err)
	}
}

func TestTextAsset_LoadInvalidUTF8(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"lone continuation byte", []byte{'a', 0x80, 'b'}},
		{"truncated sequence", []byte{0xE4, 0xB8}},
		{"invalid lead byte", []byte{0xFF, 0xFE, 'x'}},
		{"overlong encoding", []byte{0xC0, 0xAF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestFile(t, "bad.txt", tt.data)
			ta := NewTextAsset(nil)
			err := ta.Load(path)
			if !errors.Is(err, ErrFileUnrecognized) {
				t.Errorf("Load() error = %v, want ErrFileUnrecognized", err)
			}
			if errors.Is(err, ErrFileCantRead) {
				t.Error("decode failure must not be reported as ErrFileCantRead")
			}
		})
	}
}

func TestTextAsset_StripsBOM(t *testing.T) {
	path := writeTestFile(t, "bom.txt", append([]byte{0xEF, 0xBB, 0xBF}, "hello"...))

	ta := NewTextAsset(nil)
	if err := ta.Load(path); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if ta.Value() != "hello" {
		t.Errorf("Value() = %q, want %q", ta.Value(), "hello")
	}
}

func TestTextAsset_LoadFromEmbedded(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/strings/intro.txt": {Data: []byte("欢迎")},
	})
	t.Cleanup(func() { embedded.Init(nil) })

	ta := NewTextAsset(nil)
	if err := ta.Load("res://data/strings/intro.txt"); err != nil {
		t.Fatalf("Load(res://) error: %v", err)
	}
	if ta.Value() != "欢迎" {
		t.Errorf("Value() = %q, want %q", ta.Value(), "欢迎")
	}

	if err := ta.Load("res://data/strings/missing.txt"); !errors.Is(err, ErrFileCantRead) {
		t.Errorf("Load(missing res://) error = %v, want ErrFileCantRead", err)
	}
}

// stubFiles 固定返回内容的 FileAccess
type stubFiles map[string][]byte

func (s stubFiles) ReadFile(path string) ([]byte, error) {
	data, ok := s[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func TestTextAsset_CustomFileAccess(t *testing.T) {
	ta := NewTextAsset(stubFiles{"mem:a": []byte("from memory")})
	if err := ta.Load("mem:a"); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if ta.Value() != "from memory" {
		t.Errorf("Value() = %q, want %q", ta.Value(), "from memory")
	}
}
